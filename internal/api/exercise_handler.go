package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/platform/logger"
	"github.com/fittrack/fittrack-api/internal/service"
)

// ExerciseHandler handles exercise and program-link HTTP requests.
type ExerciseHandler struct {
	exercises service.ExerciseService
	logger    *slog.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exercises service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	if exercises == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("exercise service cannot be nil for ExerciseHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExerciseHandler{
		exercises: exercises,
		logger:    logger.With(slog.String("component", "exercise_handler")),
	}
}

// ListExercises handles GET /exercises. A programID filter naming a program
// that does not exist yields an empty list.
func (h *ExerciseHandler) ListExercises(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var programID int64
	if raw := strings.TrimSpace(r.URL.Query().Get("programID")); raw != "" {
		programID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || programID <= 0 {
			HandleAPIError(w, r, shared.InvalidParam("programID"))
			return
		}
	}

	page, err := h.exercises.ListExercises(r.Context(), service.ExerciseListParams{
		ListParams: params,
		ProgramID:  programID,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondWithList(w, r, params.Page, page)
}

// GetExercise handles GET /exercises/{id}.
func (h *ExerciseHandler) GetExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	exercise, err := h.exercises.GetExercise(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, exercise)
}

// ListExercisePrograms handles GET /exercises/{id}/programs.
func (h *ExerciseHandler) ListExercisePrograms(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	programs, err := h.exercises.ListExercisePrograms(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if programs == nil {
		programs = []domain.ProgramSummary{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, programs)
}

// CreateExercise handles POST /exercises.
func (h *ExerciseHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateExerciseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	exercise, err := h.exercises.CreateExercise(r.Context(), service.CreateExerciseInput{
		Name:       shared.SanitizeText(req.Name),
		Difficulty: domain.Difficulty(req.Difficulty),
		ProgramID:  req.ProgramID,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("exercise created", slog.Int64("exercise_id", exercise.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, exercise)
}

// UpdateExercise handles PATCH /exercises/{id}.
func (h *ExerciseHandler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdateExerciseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	patch := domain.ExercisePatch{Name: shared.SanitizeOptional(req.Name)}
	if req.Difficulty != nil {
		difficulty := domain.Difficulty(*req.Difficulty)
		patch.Difficulty = &difficulty
	}

	exercise, err := h.exercises.UpdateExercise(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, exercise)
}

// DeleteExercise handles DELETE /exercises/{id}.
func (h *ExerciseHandler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.exercises.DeleteExercise(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("exercise deleted", slog.Int64("exercise_id", id))
	shared.RespondWithMessage(w, r, http.StatusOK, "exercise.deleted")
}

// AssignToProgram handles POST /exercises/assign-to-program.
func (h *ExerciseHandler) AssignToProgram(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AssociationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.exercises.AssignToProgram(r.Context(), req.ExerciseID, req.ProgramID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("exercise assigned to program",
		slog.Int64("exercise_id", req.ExerciseID),
		slog.Int64("program_id", req.ProgramID))
	shared.RespondWithMessage(w, r, http.StatusCreated, "association.created")
}

// RemoveFromProgram handles POST /exercises/remove-from-program.
func (h *ExerciseHandler) RemoveFromProgram(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AssociationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.exercises.RemoveFromProgram(r.Context(), req.ExerciseID, req.ProgramID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("exercise removed from program",
		slog.Int64("exercise_id", req.ExerciseID),
		slog.Int64("program_id", req.ProgramID))
	shared.RespondWithMessage(w, r, http.StatusOK, "association.removed")
}
