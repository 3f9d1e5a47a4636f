package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"

	"github.com/fittrack/fittrack-api/internal/config"
)

type contextKey struct{}

var loggerKey = contextKey{}

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger with the
// appropriate log level and sets it as the default logger for the application.
//
// When cfg.SentryDSN is set, records at warn and above are also sent to Sentry;
// errors become Sentry issues. Call Flush before exiting so buffered events are
// delivered.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return setup(cfg, os.Stdout)
}

func setup(cfg config.ServerConfig, out io.Writer) (*slog.Logger, error) {
	level := ParseLevel(cfg.LogLevel)

	var handler slog.Handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			EnableLogs:  true,
		}); err != nil {
			// Keep logging to stdout; Sentry is an optional destination.
			slog.New(handler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		} else {
			sentryHandler := sentryslog.Option{
				EventLevel: []slog.Level{slog.LevelError},
				LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
			}.NewSentryHandler(context.Background())
			handler = newMultiHandler(handler, sentryHandler)
		}
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, nil
}

// ParseLevel maps a configured level name to a slog.Level, case-insensitively.
// Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Flush waits up to timeout for buffered Sentry events. It is a no-op when
// Sentry was never initialized.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when none is set.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return fallback
}
