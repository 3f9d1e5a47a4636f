package api

import (
	"log/slog"
	"net/http"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/platform/logger"
	"github.com/fittrack/fittrack-api/internal/service"
)

// ProgramHandler handles program-related HTTP requests.
type ProgramHandler struct {
	programs  service.ProgramService
	exercises service.ExerciseService
	logger    *slog.Logger
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(
	programs service.ProgramService,
	exercises service.ExerciseService,
	logger *slog.Logger,
) *ProgramHandler {
	if programs == nil || exercises == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("program handler dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgramHandler{
		programs:  programs,
		exercises: exercises,
		logger:    logger.With(slog.String("component", "program_handler")),
	}
}

// ListPrograms handles GET /programs.
func (h *ProgramHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	page, err := h.programs.ListPrograms(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondWithList(w, r, params.Page, page)
}

// GetProgram handles GET /programs/{id}.
func (h *ProgramHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	program, err := h.programs.GetProgram(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, program)
}

// ListProgramExercises handles GET /programs/{id}/exercises.
func (h *ProgramHandler) ListProgramExercises(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}
	params, err := parseListParams(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	page, err := h.exercises.ListProgramExercises(r.Context(), id, params)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	respondWithList(w, r, params.Page, page)
}

// CreateProgram handles POST /programs.
func (h *ProgramHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateProgramRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	program, err := h.programs.CreateProgram(r.Context(),
		shared.SanitizeText(req.Name), shared.SanitizeOptional(req.Description))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("program created", slog.Int64("program_id", program.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, program)
}

// UpdateProgram handles PATCH /programs/{id}.
func (h *ProgramHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdateProgramRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	program, err := h.programs.UpdateProgram(r.Context(), id, domain.ProgramPatch{
		Name:        shared.SanitizeOptional(req.Name),
		Description: shared.SanitizeOptional(req.Description),
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, program)
}

// DeleteProgram handles DELETE /programs/{id}.
func (h *ProgramHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.programs.DeleteProgram(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("program deleted", slog.Int64("program_id", id))
	shared.RespondWithMessage(w, r, http.StatusOK, "program.deleted")
}
