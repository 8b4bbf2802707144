package migrator

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/mirajehossain/sqlmigrate/internal/fsutil"
)

// Source locates migration scripts. A nil FS means the local disk.
type Source struct {
	FS  fs.FS
	Dir string
}

// Plan is the computed state of one run: every discovered script, the
// ledger's applied filenames, and the pending scripts in apply order.
type Plan struct {
	All     []Script
	Applied []string
	Pending []Script
}

// BuildPlan discovers scripts and diffs them against the ledger. Pending
// preserves the lexicographic order of discovery. A read failure on either
// side propagates; a partial plan is never returned.
func BuildPlan(ctx context.Context, src Source, st *Storage) (*Plan, error) {
	var files []fsutil.File
	var err error
	if src.FS != nil {
		files, err = fsutil.ScanFS(src.FS, src.Dir)
	} else {
		files, err = fsutil.ScanDir(src.Dir)
	}
	if err != nil {
		return nil, err
	}

	all := make([]Script, 0, len(files))
	for _, f := range files {
		var b []byte
		if src.FS != nil {
			b, err = fs.ReadFile(src.FS, f.Path)
		} else {
			b, err = os.ReadFile(f.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", f.Name, err)
		}
		all = append(all, Script{Filename: f.Name, Path: f.Path, SQL: b})
	}

	applied, err := st.ListApplied(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(applied))
	for _, name := range applied {
		seen[name] = struct{}{}
	}
	pending := make([]Script, 0, len(all))
	for _, sc := range all {
		if _, ok := seen[sc.Filename]; !ok {
			pending = append(pending, sc)
		}
	}
	return &Plan{All: all, Applied: applied, Pending: pending}, nil
}
