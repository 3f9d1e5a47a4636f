package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// MigrationTableName is the goose version table.
const MigrationTableName = "schema_migrations"

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration commands accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
	MigrateReset  = "reset"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	log *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level. Unlike goose's default it does not exit, so the
// caller decides how to fail.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

// Migrate runs a goose command against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&slogGooseLogger{log: log.With(slog.String("component", "migrations"))})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, db, migrationsDir)
	case MigrateDown:
		err = goose.DownContext(ctx, db, migrationsDir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, migrationsDir)
	case MigrateReset:
		err = goose.ResetContext(ctx, db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %s (expected up, down, status or reset)", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}
