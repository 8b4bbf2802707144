package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDirUnreadable marks a missing or unreadable migrations directory.
// Directory read failures propagate rather than degrading to "no scripts";
// a broken mount must not look like an empty migration set.
var ErrDirUnreadable = errors.New("migrations directory unreadable")

// File is one discovered migration script location. Name is the migration
// identity and sort key.
type File struct {
	Name string
	Path string
}

// ScanDir lists the .sql files of a local directory, sorted ascending by
// filename.
func ScanDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirUnreadable, dir, err)
	}
	return collect(entries, func(name string) string { return filepath.Join(dir, name) }), nil
}

// ScanFS lists the .sql files under a root dir of an fs.FS (embedded usage).
func ScanFS(fsys fs.FS, root string) ([]File, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirUnreadable, root, err)
	}
	return collect(entries, func(name string) string { return path.Join(root, name) }), nil
}

func collect(entries []fs.DirEntry, full func(name string) string) []File {
	out := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		out = append(out, File{Name: e.Name(), Path: full(e.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
