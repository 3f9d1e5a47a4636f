package api

import (
	"log/slog"
	"net/http"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/platform/logger"
	"github.com/fittrack/fittrack-api/internal/service"
)

// ProfileHandler serves the /user routes, which act on the caller's own
// account. Every operation is scoped to the authenticated identity.
type ProfileHandler struct {
	users       service.UserService
	completions service.CompletionService
	logger      *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(
	users service.UserService,
	completions service.CompletionService,
	logger *slog.Logger,
) *ProfileHandler {
	if users == nil || completions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("profile handler dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{
		users:       users,
		completions: completions,
		logger:      logger.With(slog.String("component", "profile_handler")),
	}
}

// GetProfile handles GET /user.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), identity.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// CompleteExercise handles POST /user/complete-exercise.
func (h *ProfileHandler) CompleteExercise(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}

	var req CompleteExerciseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	completion, err := h.completions.CompleteExercise(r.Context(), identity.ID, service.CompleteExerciseInput{
		ExerciseID:  req.ExerciseID,
		Duration:    req.Duration,
		CompletedAt: req.CompletedAt,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("completion recorded",
		slog.Int64("user_id", identity.ID),
		slog.Int64("completion_id", completion.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, completion)
}

// ListCompletions handles GET /user/completed-exercises, newest first.
func (h *ProfileHandler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}
	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	page, err := h.completions.ListCompletions(r.Context(), identity.ID, params.Page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondWithList(w, r, params.Page, page)
}

// DeleteCompletion handles DELETE /user/completed-exercises/{id}. Records of
// other users are reported as not found.
func (h *ProfileHandler) DeleteCompletion(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentity(w, r)
	if !ok {
		return
	}
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.completions.DeleteCompletion(r.Context(), identity.ID, id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "completion.deleted")
}
