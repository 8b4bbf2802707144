package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicateEntry is returned when the ledger's uniqueness constraint
// rejects an insert. Under a single invoking process this cannot happen;
// under a concurrent-invocation race the loser fails with it rather than
// silently skipping the script.
var ErrDuplicateEntry = errors.New("duplicate ledger entry")

// Execer is the minimal statement-execution capability the ledger needs.
// Implemented by *sql.DB, *sql.Tx, and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Storage reads and writes the ledger table.
type Storage struct {
	DB    *sql.DB
	Table string
}

// ListApplied returns every recorded filename, sorted for determinism.
func (s *Storage) ListApplied(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf(`SELECT filename FROM %s ORDER BY filename`, s.Table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (s *Storage) IsApplied(ctx context.Context, filename string) (bool, error) {
	row := s.DB.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE filename = ?`, s.Table), filename)
	var n int64
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// History returns full ledger rows sorted by filename.
func (s *Storage) History(ctx context.Context) ([]Row, error) {
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf(`SELECT id, filename, applied_at FROM %s ORDER BY filename`, s.Table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.Filename, &r.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecordApplied inserts the ledger row for filename. It runs against the
// given Execer so the insert can join the script's own transaction.
func (s *Storage) RecordApplied(ctx context.Context, ex Execer, filename string) error {
	_, err := ex.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (filename) VALUES (?)`, s.Table), filename)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, filename)
		}
		return err
	}
	return nil
}
