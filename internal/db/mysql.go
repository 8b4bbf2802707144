package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenMySQL opens a pooled connection to the target database. parseTime is
// always forced on. When secure is set, TLS is required on the connection
// unless the DSN already pins an explicit tls mode; insecure transport is
// only permitted for non-production deployments.
func OpenMySQL(dsn string, secure bool) (*sql.DB, error) {
	db, err := sql.Open("mysql", buildDSN(dsn, secure))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func buildDSN(dsn string, secure bool) string {
	if !strings.Contains(strings.ToLower(dsn), "parsetime=") {
		dsn = appendParam(dsn, "parseTime=true")
	}
	if secure && !strings.Contains(strings.ToLower(dsn), "tls=") {
		dsn = appendParam(dsn, "tls=true")
	}
	return dsn
}

func appendParam(dsn, kv string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + kv
	}
	return dsn + "?" + kv
}

// EnsureLedger idempotently creates the ledger table that records applied
// migration filenames. Safe to call on every startup.
func EnsureLedger(ctx context.Context, db *sql.DB, table string) error {
	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id BIGINT PRIMARY KEY AUTO_INCREMENT,
  filename VARCHAR(255) NOT NULL,
  applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE KEY uniq_filename (filename)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
`, table)
	_, err := db.ExecContext(ctx, ddl)
	return err
}
