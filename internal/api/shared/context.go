package shared

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/i18n"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	identityKey      ContextKey = "identity"
	localizerKey     ContextKey = "localizer"
	errorRecorderKey ContextKey = "errorRecorder"
)

// SetTraceID adds a freshly generated trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, generateTraceID())
}

// WithTraceID adds the given trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns a 32-character hex string.
func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Identity is the authenticated caller. It is built from the stored user, not
// from token claims.
type Identity struct {
	ID    int64
	Email string
	Role  domain.Role
}

// IsAdmin reports whether the caller has the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// IdentityFromUser builds the Identity of user.
func IdentityFromUser(user *domain.User) Identity {
	return Identity{ID: user.ID, Email: user.Email, Role: user.Role}
}

// WithIdentity stores the caller's identity in the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the caller's identity, if the request was
// authenticated.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// WithLocale stores the request's localizer in the context.
func WithLocale(ctx context.Context, localizer *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey, localizer)
}

// LocalizerFromContext returns the request's localizer. It is nil when no
// locale middleware ran; a nil Localizer returns keys untranslated.
func LocalizerFromContext(ctx context.Context) *i18n.Localizer {
	localizer, _ := ctx.Value(localizerKey).(*i18n.Localizer)
	return localizer
}

// T translates key in the request's locale.
func T(ctx context.Context, key string, args ...any) string {
	return LocalizerFromContext(ctx).T(key, args...)
}

// ErrorRecorder holds the error behind a 5xx response so the error-log
// middleware can persist it after the handler returns.
type ErrorRecorder struct {
	mu  sync.Mutex
	err error
}

// Err returns the recorded error, if any.
func (r *ErrorRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// WithErrorRecorder attaches a new ErrorRecorder to the context.
func WithErrorRecorder(ctx context.Context) (context.Context, *ErrorRecorder) {
	recorder := &ErrorRecorder{}
	return context.WithValue(ctx, errorRecorderKey, recorder), recorder
}

// RecordError stores err on the context's ErrorRecorder. The first error wins.
func RecordError(ctx context.Context, err error) {
	recorder, ok := ctx.Value(errorRecorderKey).(*ErrorRecorder)
	if !ok || err == nil {
		return
	}
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.err == nil {
		recorder.err = err
	}
}
