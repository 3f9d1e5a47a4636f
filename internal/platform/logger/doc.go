// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. When a Sentry DSN is configured, warn and error records
// are additionally forwarded to Sentry. The ErrorLog type is the durable sink for
// server-side failures.
package logger
