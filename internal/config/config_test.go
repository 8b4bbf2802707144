package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := Default()
	if c.Table != "schema_migrations" {
		t.Fatal("default table mismatch")
	}
	if c.Dir != "./migrations" {
		t.Fatal("default dir mismatch")
	}
	if c.Production() {
		t.Fatal("default environment must not be production")
	}
}

func TestLoadYAMLAndMergeEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(p, []byte("dsn: u:p@tcp(h:3306)/db\ndir: ./migs\nmigrations_table: t\nenvironment: production\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	cfg, err := LoadYAML(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Dir != "./migs" || cfg.Table != "t" || !cfg.Production() {
		t.Fatal("yaml load mismatch")
	}

	t.Setenv("MIGRATIONS_DIR", "./x")
	t.Setenv("MIGRATIONS_TABLE", "y")
	t.Setenv("APP_ENV", "staging")
	cfg = MergeEnv(cfg)
	if cfg.Dir != "./x" || cfg.Table != "y" || cfg.Production() {
		t.Fatal("env merge mismatch")
	}
}
