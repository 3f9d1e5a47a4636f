package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/platform/logger"
	"github.com/fittrack/fittrack-api/internal/service"
	"github.com/fittrack/fittrack-api/internal/store"
)

// userConflictMessages name the field that clashes when an admin edits or
// restores an account; registration keeps the auth.* wording.
var userConflictMessages = []MessageOverride{
	{Err: store.ErrEmailExists, Key: "user.emailExists"},
	{Err: store.ErrNicknameExists, Key: "user.nicknameExists"},
}

// UserHandler handles user administration HTTP requests.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("user service cannot be nil for UserHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /users. Admins get full accounts with their
// completion records; everyone else gets only ids and nicknames.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}
	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	page, err := h.users.ListUsers(r.Context(), params, identity.IsAdmin())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if identity.IsAdmin() {
		respondWithList(w, r, params.Page, mapPage(page, func(l *service.UserListing) AdminUserView {
			return AdminUserView{User: l.User, CompletedExercises: l.Completions}
		}))
		return
	}
	respondWithList(w, r, params.Page, mapPage(page, func(l *service.UserListing) PublicUserView {
		return PublicUserView{ID: l.User.ID, NickName: l.User.NickName}
	}))
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateUser handles PATCH /users/{id}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	update := service.UserUpdate{
		Name:     shared.SanitizeOptional(req.Name),
		Surname:  shared.SanitizeOptional(req.Surname),
		NickName: shared.SanitizeOptional(req.NickName),
		Age:      req.Age.IntPtr(),
		Password: req.Password,
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		update.Email = &email
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.users.UpdateUser(r.Context(), id, update)
	if err != nil {
		HandleAPIError(w, r, err, userConflictMessages...)
		return
	}

	if update.Role != nil {
		log.Info("user role set", slog.Int64("user_id", id), slog.String("role", string(*update.Role)))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}. The account is soft-deleted.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "user.deleted")
}

// RestoreUser handles POST /users/{id}/restore.
func (h *UserHandler) RestoreUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	user, err := h.users.RestoreUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, userConflictMessages...)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}
