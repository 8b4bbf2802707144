package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DSN         string `yaml:"dsn"`
	Dir         string `yaml:"dir"`
	Table       string `yaml:"migrations_table"`
	Environment string `yaml:"environment"`
	JSON        bool   `yaml:"json"`
	DryRun      bool   `yaml:"dry_run"`
}

func Default() *Config {
	return &Config{
		Dir:         "./migrations",
		Table:       "schema_migrations",
		Environment: "development",
	}
}

func LoadYAML(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func MergeEnv(cfg *Config) *Config {
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		cfg.Dir = v
	}
	if v := os.Getenv("MIGRATIONS_TABLE"); v != "" {
		cfg.Table = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Environment = v
	}
	return cfg
}

// Production reports whether this deployment requires encrypted database
// transport.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}
