package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mirajehossain/sqlmigrate/internal/db"
)

var (
	// ErrStatementFailed marks a SQL statement that the database rejected:
	// syntax errors, constraint violations, lost connectivity.
	ErrStatementFailed = errors.New("statement execution failed")
	// ErrTransaction marks a begin or commit that itself failed.
	ErrTransaction = errors.New("transaction control failed")
)

// Runner applies pending migration scripts, one transaction per script.
type Runner struct {
	DB      *sql.DB
	Storage *Storage
}

func NewRunner(database *sql.DB, table string) *Runner {
	return &Runner{
		DB:      database,
		Storage: &Storage{DB: database, Table: table},
	}
}

// Ensure creates the ledger table if absent.
func (r *Runner) Ensure(ctx context.Context) error {
	return db.EnsureLedger(ctx, r.DB, r.Storage.Table)
}

// ApplyPending applies each pending script in order and returns the
// filenames that were applied. The first failure aborts the whole run:
// scripts before it stay applied and recorded, the failing script leaves
// no statement effects and no ledger entry, and later scripts are not
// attempted. With dryRun set nothing is executed or recorded.
func (r *Runner) ApplyPending(ctx context.Context, pending []Script, dryRun bool, progress func(stage string, sc Script, err error)) ([]string, error) {
	applied := make([]string, 0, len(pending))
	for _, sc := range pending {
		if progress != nil {
			progress("start", sc, nil)
		}
		if dryRun {
			if progress != nil {
				progress("success", sc, nil)
			}
			applied = append(applied, sc.Filename)
			continue
		}
		if err := r.applyOne(ctx, sc); err != nil {
			if progress != nil {
				progress("error", sc, err)
			}
			return applied, err
		}
		if progress != nil {
			progress("success", sc, nil)
		}
		applied = append(applied, sc.Filename)
	}
	return applied, nil
}

// applyOne runs a single script as one unit of work. The *sql.Tx pins one
// connection for the duration, and every exit path releases it via commit
// or rollback.
func (r *Runner) applyOne(ctx context.Context, sc Script) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin for %s: %v", ErrTransaction, sc.Filename, err)
	}
	for _, stmt := range SplitStatements(string(sc.SQL)) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: %s: %v", ErrStatementFailed, sc.Filename, err)
		}
	}
	if err := r.Storage.RecordApplied(ctx, tx, sc.Filename); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record %s: %w", sc.Filename, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %v", ErrTransaction, sc.Filename, err)
	}
	return nil
}
