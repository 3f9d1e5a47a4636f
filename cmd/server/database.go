package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"

	"github.com/fittrack/fittrack-api/internal/config"
	"github.com/fittrack/fittrack-api/internal/platform/postgres"
	"github.com/fittrack/fittrack-api/internal/store"
)

// setupAppDatabase establishes a connection to the database and configures connection pools.
// Returns the database connection if successful, or an error if the connection fails.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns)
	return db, nil
}

// stores groups the persistence dependencies of the services.
type stores struct {
	users       store.UserStore
	programs    store.ProgramStore
	exercises   store.ExerciseStore
	links       store.ProgramExerciseStore
	completions store.CompletionStore
	tx          store.TxRunner
}

// postgresStores builds the Postgres-backed stores on db.
func postgresStores(db *sqlx.DB) stores {
	return stores{
		users:       postgres.NewPostgresUserStore(db),
		programs:    postgres.NewPostgresProgramStore(db),
		exercises:   postgres.NewPostgresExerciseStore(db),
		links:       postgres.NewPostgresProgramExerciseStore(db),
		completions: postgres.NewPostgresCompletionStore(db),
		tx:          store.NewSQLTxRunner(db),
	}
}
