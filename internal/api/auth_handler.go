package api

import (
	"log/slog"
	"net/http"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/platform/logger"
	"github.com/fittrack/fittrack-api/internal/redact"
	"github.com/fittrack/fittrack-api/internal/service"
	"github.com/fittrack/fittrack-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	users      service.UserService
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users service.UserService, jwtService auth.JWTService, logger *slog.Logger) *AuthHandler {
	if users == nil || jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("auth handler dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     shared.SanitizeOptional(req.Name),
		Surname:  shared.SanitizeOptional(req.Surname),
		NickName: shared.SanitizeOptional(req.NickName),
		Age:      req.Age.IntPtr(),
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("email", redact.String(user.Email)))
	shared.RespondWithJSON(w, r, http.StatusCreated, newAuthResponse(user, token, expiresAt))
}

// Login handles the /auth/login endpoint. Unknown emails and wrong passwords
// get the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("user logged in", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, newAuthResponse(user, token, expiresAt))
}
