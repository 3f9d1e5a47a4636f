package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fittrack/fittrack-api/internal/platform/logger"
	"github.com/fittrack/fittrack-api/internal/redact"
)

// Envelope types.
const (
	TypeSuccess = "SUCCESS"
	TypeError   = "ERROR"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"-"` // Not serialized to JSON, used for logging
	TraceID string `json:"traceId,omitempty"`
}

// MessageResponse is the envelope of an action that returns no resource.
type MessageResponse struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithMessage writes a SUCCESS envelope carrying the translation of key.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, status int, key string) {
	RespondWithJSON(w, r, status, MessageResponse{
		Message: T(r.Context(), key),
		Type:    TypeSuccess,
	})
}

// RespondWithError writes a JSON error response with the given status code and
// an already localized message. It also sets the TraceID from the request
// context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	logger.FromContextOrDefault(r.Context(), slog.Default()).Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Message: message,
		Type:    TypeError,
		Code:    status,
		TraceID: traceID,
	})
}

// RespondWithErrorAndLog writes a JSON error response and also logs the detailed error.
// Only userMessage reaches the client; err is redacted and logged.
//
// Log level strategy:
// - 5xx errors: ERROR, and err is recorded for the error-log middleware
// - 429 Too Many Requests: WARN
// - other 4xx: DEBUG, or WARN with WithElevatedLogLevel()
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
		RecordError(r.Context(), err)
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		logLevel = slog.LevelWarn
	}

	logger.FromContextOrDefault(r.Context(), slog.Default()).
		LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Message: userMessage,
		Type:    TypeError,
		Code:    status,
		TraceID: traceID,
	})
}
