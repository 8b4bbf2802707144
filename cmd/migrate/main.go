package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mirajehossain/sqlmigrate/internal/config"
	"github.com/mirajehossain/sqlmigrate/internal/db"
	"github.com/mirajehossain/sqlmigrate/internal/logger"
	"github.com/mirajehossain/sqlmigrate/internal/migrator"
)

const (
	exitOK        = 0
	exitFail      = 1
	exitUsage     = 2
	exitPlanError = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	// "run" is the default when no operation word is given
	cmd := "run"
	rest := os.Args[1:]
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		cmd, rest = rest[0], rest[1:]
	}
	switch cmd {
	case "help":
		usage()
		return exitOK
	case "run", "status", "create":
	default:
		usage()
		return exitUsage
	}

	var createName string
	if cmd == "create" {
		if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
			fmt.Fprintln(os.Stderr, "create requires a <name>")
			return exitUsage
		}
		createName, rest = rest[0], rest[1:]
	}

	global := flag.NewFlagSet(cmd, flag.ContinueOnError)
	dsn := global.String("dsn", "", "Database DSN (or DB_DSN)")
	dir := global.String("dir", "", "Migrations directory (or MIGRATIONS_DIR; default ./migrations)")
	table := global.String("table", "", "Ledger table name (or MIGRATIONS_TABLE; default schema_migrations)")
	conf := global.String("config", "", "Optional YAML config path")
	env := global.String("env", "", "Deployment environment (or APP_ENV); production requires TLS")
	jsonOut := global.Bool("json", false, "JSON logs")
	dryRun := global.Bool("dry-run", false, "Plan only; do not execute")
	verbose := global.Bool("verbose", false, "Per-migration logs")
	if err := global.Parse(rest); err != nil {
		return exitUsage
	}

	cfg, err := config.LoadYAML(*conf)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return exitUsage
	}
	cfg = config.MergeEnv(cfg)
	if *dsn != "" {
		cfg.DSN = *dsn
	}
	if *dir != "" {
		cfg.Dir = *dir
	}
	if *table != "" {
		cfg.Table = *table
	}
	if *env != "" {
		cfg.Environment = *env
	}
	cfg.JSON = cfg.JSON || *jsonOut
	cfg.DryRun = cfg.DryRun || *dryRun

	log := logger.New(cfg.JSON)

	if cmd == "create" {
		path, err := createScript(cfg.Dir, createName)
		if err != nil {
			log.Error("create failed", map[string]any{"error": err.Error()})
			return exitFail
		}
		log.Info("created migration", map[string]any{"path": path})
		return exitOK
	}

	if cfg.DSN == "" {
		fmt.Fprintln(os.Stderr, "--dsn or DB_DSN is required")
		return exitUsage
	}
	database, err := db.OpenMySQL(cfg.DSN, cfg.Production())
	if err != nil {
		log.Error("db open failed", map[string]any{"error": err.Error()})
		return exitFail
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := migrator.NewRunner(database, cfg.Table)
	if err := runner.Ensure(ctx); err != nil {
		log.Error("ensure ledger failed", map[string]any{"error": err.Error()})
		return exitFail
	}

	plan, err := migrator.BuildPlan(ctx, migrator.Source{Dir: cfg.Dir}, runner.Storage)
	if err != nil {
		log.Error("plan failed", map[string]any{"error": err.Error()})
		return exitPlanError
	}

	switch cmd {
	case "status":
		if *verbose {
			rows, err := runner.Storage.History(ctx)
			if err != nil {
				log.Error("history read failed", map[string]any{"error": err.Error()})
				return exitFail
			}
			for _, row := range rows {
				log.Info("status.applied", map[string]any{
					"filename":   row.Filename,
					"applied_at": row.AppliedAt.UTC().Format(time.RFC3339),
				})
			}
		}
		printStatus(migrator.StatusOf(plan), log)
		return exitOK
	case "run":
		if len(plan.Pending) == 0 {
			log.Info("no pending migrations", nil)
			return exitOK
		}
		progress := func(stage string, sc migrator.Script, err error) {
			if !*verbose {
				return
			}
			fields := map[string]any{"filename": sc.Filename}
			if err != nil {
				fields["error"] = err.Error()
			}
			switch stage {
			case "start":
				log.Info("migrate.start", fields)
			case "success":
				log.Info("migrate.success", fields)
			case "error":
				log.Error("migrate.error", fields)
			}
		}
		applied, err := runner.ApplyPending(ctx, plan.Pending, cfg.DryRun, progress)
		if err != nil {
			log.Error("run failed", map[string]any{"applied": len(applied), "error": err.Error()})
			return exitFail
		}
		log.Info("run complete", map[string]any{"applied": len(applied), "dry_run": cfg.DryRun})
		return exitOK
	}
	return exitOK
}

func usage() {
	fmt.Println(`sqlmigrate - apply SQL schema migrations exactly once, in order

USAGE:
  migrate [command] [args] [--flags]

COMMANDS:
  run              Apply all pending migrations (default)
  status           Show total/applied/pending counts and the pending list
  create <name>    Scaffold yyyyMMddHHmmss_name.sql in the migrations dir
  help             Show this message

GLOBAL FLAGS:
  --dsn <dsn>      Database DSN (or DB_DSN)
  --dir <path>     Migrations directory (default ./migrations)
  --table <name>   Ledger table (default schema_migrations)
  --config <path>  Optional YAML config path
  --env <name>     Deployment environment; production requires TLS
  --json           JSON logs
  --dry-run        Plan only; don't execute SQL
  --verbose        Per-migration logs

EXAMPLES:
  migrate run --dsn "$DSN" --dir ./migrations
  migrate status --dsn "$DSN" --dir ./migrations --json
  migrate create add_user_table --dir ./migrations`)
}

func printStatus(rep migrator.Report, log *logger.Logger) {
	if log.JSONEnabled() {
		_ = json.NewEncoder(os.Stdout).Encode(rep)
		return
	}
	fmt.Printf("total: %d  applied: %d  pending: %d\n", rep.Total, rep.Applied, rep.Pending)
	for _, f := range rep.PendingFiles {
		fmt.Printf("pending  %s\n", f)
	}
}

func createScript(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	ts := time.Now().UTC().Format("20060102150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", ts, sanitize(name)))
	if err := os.WriteFile(path, []byte("-- write your migration here\n"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func sanitize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
