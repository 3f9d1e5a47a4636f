package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/service/auth"
	"github.com/fittrack/fittrack-api/internal/store"
)

// UserGetter loads the user a token was issued to.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      UserGetter
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users UserGetter) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate validates the bearer token, loads the active user it was issued
// to and stores that user's identity in the request context. The role comes
// from the stored user, so a role change applies to tokens issued before it.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				shared.T(r.Context(), "auth.unauthorized"), auth.ErrMissingToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					shared.T(r.Context(), "auth.tokenExpired"), err)
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					shared.T(r.Context(), "auth.unauthorized"), err, shared.WithElevatedLogLevel())
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					shared.T(r.Context(), "error.internal"), err)
			}
			return
		}

		user, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Deleted after the token was issued.
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					shared.T(r.Context(), "auth.unauthorized"), err)
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				shared.T(r.Context(), "error.internal"), err)
			return
		}

		ctx := shared.WithIdentity(r.Context(), shared.IdentityFromUser(user))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated callers whose role is not one of roles.
// It must run after Authenticate.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := shared.IdentityFromContext(r.Context())
			if !ok {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
					shared.T(r.Context(), "auth.unauthorized"), auth.ErrMissingToken)
				return
			}
			if !slices.Contains(roles, identity.Role) {
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden,
					shared.T(r.Context(), "auth.insufficientPermissions"), domain.ErrForbidden,
					shared.WithElevatedLogLevel())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
