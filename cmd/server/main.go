// Package main implements the entry point for the fittrack API server, which
// manages training programs, exercises and users' completed workouts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/fittrack/fittrack-api/internal/config"
	"github.com/fittrack/fittrack-api/internal/platform/logger"
	"github.com/fittrack/fittrack-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"Run database migrations: up, down, status or reset")
	seed := flag.Bool("seed", false, "Insert the sample users, programs and exercises")
	flag.Parse()

	if err := run(*migrateCmd, *seed); err != nil {
		slog.Error("fatal error", "error", err)
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(migrateCmd string, seed bool) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer logger.Flush(2 * time.Second)

	ctx := context.Background()

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	if migrateCmd != "" {
		log.Info("executing migrations", "command", migrateCmd)
		return postgres.Migrate(ctx, db.DB, migrateCmd, log)
	}

	app, err := newApplication(cfg, log, postgresStores(db))
	if err != nil {
		return err
	}
	app.metrics.RegisterDB(db.DB)

	if seed {
		return seedDatabase(ctx, app)
	}

	return app.Run(ctx)
}

// loadAppConfig loads .env (when present) into the environment and then the
// application configuration.
func loadAppConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	return cfg, nil
}
