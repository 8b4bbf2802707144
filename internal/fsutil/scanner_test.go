package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestScanDirFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_add_col.sql", "001_init.sql", "README.md", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("-- x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive.sql"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Name != "001_init.sql" || files[1].Name != "002_add_col.sql" {
		t.Fatalf("unexpected order: %#v", files)
	}
	if files[0].Path != filepath.Join(dir, "001_init.sql") {
		t.Fatalf("unexpected path: %s", files[0].Path)
	}
}

func TestScanDirMissing(t *testing.T) {
	_, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrDirUnreadable) {
		t.Fatalf("expected ErrDirUnreadable, got %v", err)
	}
}

func TestScanFS(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_b.sql":   {Data: []byte("-- b")},
		"migrations/001_a.sql":   {Data: []byte("-- a")},
		"migrations/ignore.json": {Data: []byte("{}")},
	}
	files, err := ScanFS(fsys, "migrations")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(files) != 2 || files[0].Name != "001_a.sql" || files[1].Name != "002_b.sql" {
		t.Fatalf("unexpected files: %#v", files)
	}
	if files[0].Path != "migrations/001_a.sql" {
		t.Fatalf("unexpected path: %s", files[0].Path)
	}
}
