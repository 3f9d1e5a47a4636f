package api

import (
	"errors"
	"net/http"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/service"
	"github.com/fittrack/fittrack-api/internal/service/auth"
	"github.com/fittrack/fittrack-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError

	// A duplicate association is reported as a bad request, not a conflict.
	case errors.Is(err, store.ErrAssociationExists):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, auth.ErrPasswordTooLong):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDependency):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// messageKeys is checked in order; specific errors precede the taxonomy
// errors they wrap.
var messageKeys = []struct {
	err error
	key string
}{
	{shared.ErrMalformedBody, "validation.malformedBody"},
	{domain.ErrInvalidPage, "validation.invalidPage"},
	{domain.ErrValidation, "validation.failed"},
	{auth.ErrPasswordTooLong, "validation.failed"},

	{service.ErrInvalidCredentials, "auth.invalidCredentials"},
	{auth.ErrExpiredToken, "auth.tokenExpired"},
	{auth.ErrInvalidToken, "auth.unauthorized"},
	{auth.ErrMissingToken, "auth.unauthorized"},
	{domain.ErrUnauthenticated, "auth.unauthorized"},
	{domain.ErrForbidden, "auth.insufficientPermissions"},

	{store.ErrUserNotFound, "user.notFound"},
	{store.ErrProgramNotFound, "program.notFound"},
	{store.ErrExerciseNotFound, "exercise.notFound"},
	{store.ErrAssociationNotFound, "association.notFound"},
	{store.ErrCompletionNotFound, "completion.notFound"},
	{domain.ErrNotFound, "error.notFound"},

	{store.ErrEmailExists, "auth.emailExists"},
	{store.ErrNicknameExists, "auth.nicknameExists"},
	{store.ErrExerciseNameExists, "exercise.nameExists"},
	{store.ErrAssociationExists, "association.exists"},
	{domain.ErrConflict, "error.conflict"},

	{service.ErrExerciseHasCompletions, "exercise.hasCompletions"},
	{store.ErrExerciseReferenced, "exercise.hasCompletions"},
	{service.ErrAssociationHasCompletions, "association.hasCompletions"},
	{service.ErrProgramHasExercises, "program.hasExercises"},
	{domain.ErrDependency, "error.dependency"},
}

// MessageKeyForError returns the translation key describing err to a client.
// Unknown errors get the generic internal error key.
func MessageKeyForError(err error) string {
	if err == nil {
		return "error.internal"
	}
	for _, m := range messageKeys {
		if errors.Is(err, m.err) {
			return m.key
		}
	}
	return "error.internal"
}

// MessageOverride replaces the translation key for one error in a single
// HandleAPIError call.
type MessageOverride struct {
	Err error
	Key string
}

// HandleAPIError maps err to a status and a localized message and writes the
// error envelope. The raw error is only logged, redacted.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrides ...MessageOverride) {
	status := MapErrorToStatusCode(err)

	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		message := validationErr.Localize(shared.LocalizerFromContext(r.Context()))
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	key := MessageKeyForError(err)
	if status == http.StatusInternalServerError {
		key = "error.internal"
	}
	for _, o := range overrides {
		if errors.Is(err, o.Err) {
			key = o.Key
			break
		}
	}

	var opts []shared.ResponseOption
	if errors.Is(err, service.ErrInvalidCredentials) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, shared.T(r.Context(), key), err, opts...)
}
