package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fittrack/fittrack-api/internal/api/middleware"
	"github.com/fittrack/fittrack-api/internal/config"
	"github.com/fittrack/fittrack-api/internal/i18n"
	"github.com/fittrack/fittrack-api/internal/platform/logger"
	"github.com/fittrack/fittrack-api/internal/platform/metrics"
	"github.com/fittrack/fittrack-api/internal/service"
	"github.com/fittrack/fittrack-api/internal/service/auth"
)

// rateLimitCleanupInterval is how often idle rate-limit buckets are dropped.
const rateLimitCleanupInterval = time.Minute

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	stores stores

	bundle      *i18n.Bundle
	metrics     *metrics.Metrics
	errorLog    *logger.ErrorLog
	rateLimiter *middleware.RateLimiter

	jwtService auth.JWTService
	hasher     auth.PasswordHasher

	userService       service.UserService
	programService    service.ProgramService
	exerciseService   service.ExerciseService
	completionService service.CompletionService
}

// newApplication creates a new application instance with all dependencies initialized.
// The stores are created by the caller so tests can run the full router on
// in-memory stores.
func newApplication(cfg *config.Config, log *slog.Logger, st stores) (*application, error) {
	app := &application{
		config:      cfg,
		logger:      log,
		stores:      st,
		metrics:     metrics.New(),
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimit),
	}

	var err error
	app.bundle, err = i18n.NewBundle(cfg.I18n.DefaultLocale, cfg.I18n.SupportedLocales)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	app.errorLog, err = logger.OpenErrorLog(cfg.Server.ErrorLogPath)
	if err != nil {
		return nil, err
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	verifier := auth.NewBcryptVerifier()

	app.userService = service.NewUserService(st.users, st.completions, app.hasher, verifier, log)
	app.programService = service.NewProgramService(st.programs, st.links, log)
	app.exerciseService = service.NewExerciseService(
		st.exercises,
		st.programs,
		st.links,
		st.completions,
		st.tx,
		log,
	)
	app.completionService = service.NewCompletionService(st.completions, st.exercises, log)

	log.Info("application initialized successfully",
		"locales", app.bundle.Locales(),
		"error_log", cfg.Server.ErrorLogPath != "")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go app.rateLimiter.Run(ctx, rateLimitCleanupInterval)

	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources. The database
// is closed by the caller that opened it.
func (app *application) cleanup() {
	if err := app.errorLog.Close(); err != nil {
		app.logger.Error("error closing error log", "error", err)
	}
	app.logger.Info("application shutdown completed")
}
