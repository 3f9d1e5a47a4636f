package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

func TestProgramHandler_ListPrograms(t *testing.T) {
	svc := newServices(t)
	svc.program(t, "Beginner Strength")
	svc.program(t, "Cardio Blast")
	svc.program(t, "Advanced Strength")
	handler := NewProgramHandler(svc.programs, svc.exercises, testLogger)

	t.Run("bare array without pagination", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ListPrograms(rec, request(t, http.MethodGet, "/programs", nil, nil, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody[[]domain.Program](t, rec), 3)
	})

	t.Run("search and page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ListPrograms(rec, request(t, http.MethodGet, "/programs?search=strength&page=1&limit=1", nil, nil, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		page := decodeBody[domain.Page[domain.Program]](t, rec)
		assert.Equal(t, 2, page.TotalItems)
		assert.Equal(t, 2, page.TotalPages)
		assert.True(t, page.HasNextPage)
		require.Len(t, page.Items, 1)
	})

	t.Run("empty result is still a success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ListPrograms(rec, request(t, http.MethodGet, "/programs?search=yoga", nil, nil, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("invalid page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ListPrograms(rec, request(t, http.MethodGet, "/programs?page=0", nil, nil, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProgramHandler_ListProgramsStoreFailure(t *testing.T) {
	svc := newServices(t)
	svc.stores.Programs.ListFn = func(ctx context.Context, filter store.ProgramFilter) ([]*domain.Program, error) {
		return nil, errors.New("connection reset by peer")
	}
	handler := NewProgramHandler(svc.programs, svc.exercises, testLogger)

	rec := httptest.NewRecorder()
	handler.ListPrograms(rec, request(t, http.MethodGet, "/programs", nil, nil, nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestProgramHandler_GetProgram(t *testing.T) {
	svc := newServices(t)
	program := svc.program(t, "Cardio Blast")
	handler := NewProgramHandler(svc.programs, svc.exercises, testLogger)

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{"existing", "1", http.StatusOK},
		{"missing", "99", http.StatusNotFound},
		{"not a number", "abc", http.StatusBadRequest},
		{"zero", "0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.GetProgram(rec, request(t, http.MethodGet, "/programs/"+tt.id, nil, nil, map[string]string{"id": tt.id}))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, program.Name, decodeBody[domain.Program](t, rec).Name)
			}
		})
	}
}

func TestProgramHandler_ListProgramExercises(t *testing.T) {
	svc := newServices(t)
	program := svc.program(t, "Beginner Strength")
	svc.exercise(t, "Push-ups", &program.ID)
	svc.exercise(t, "Squats", &program.ID)
	svc.exercise(t, "Burpees", nil)
	handler := NewProgramHandler(svc.programs, svc.exercises, testLogger)

	rec := httptest.NewRecorder()
	handler.ListProgramExercises(rec, request(t, http.MethodGet, "/programs/1/exercises", nil, nil, map[string]string{"id": "1"}))
	require.Equal(t, http.StatusOK, rec.Code)
	exercises := decodeBody[[]domain.Exercise](t, rec)
	require.Len(t, exercises, 2)
	assert.Equal(t, "Push-ups", exercises[0].Name)

	rec = httptest.NewRecorder()
	handler.ListProgramExercises(rec, request(t, http.MethodGet, "/programs/9/exercises", nil, nil, map[string]string{"id": "9"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProgramHandler_CreateProgram(t *testing.T) {
	svc := newServices(t)
	handler := NewProgramHandler(svc.programs, svc.exercises, testLogger)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantName   string
	}{
		{
			name:       "valid",
			body:       map[string]any{"name": "Mobility", "description": "Daily stretching"},
			wantStatus: http.StatusCreated,
			wantName:   "Mobility",
		},
		{
			name:       "markup is stripped",
			body:       map[string]any{"name": "<b>Core</b>"},
			wantStatus: http.StatusCreated,
			wantName:   "Core",
		},
		{
			name:       "missing name",
			body:       map[string]any{"description": "no name"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.CreateProgram(rec, request(t, http.MethodPost, "/programs", tt.body, nil, nil))
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantName != "" {
				created := decodeBody[domain.Program](t, rec)
				assert.Equal(t, tt.wantName, created.Name)
				assert.NotZero(t, created.ID)
			}
		})
	}
}

func TestProgramHandler_UpdateProgram(t *testing.T) {
	svc := newServices(t)
	svc.program(t, "Mobility")
	handler := NewProgramHandler(svc.programs, svc.exercises, testLogger)

	rec := httptest.NewRecorder()
	handler.UpdateProgram(rec, request(t, http.MethodPatch, "/programs/1",
		map[string]any{"description": "Stretch every morning"}, nil, map[string]string{"id": "1"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[domain.Program](t, rec)
	assert.Equal(t, "Mobility", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Stretch every morning", *updated.Description)

	rec = httptest.NewRecorder()
	handler.UpdateProgram(rec, request(t, http.MethodPatch, "/programs/5",
		map[string]any{"name": "Other"}, nil, map[string]string{"id": "5"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProgramHandler_DeleteProgram(t *testing.T) {
	svc := newServices(t)
	empty := svc.program(t, "Empty")
	busy := svc.program(t, "Busy")
	svc.exercise(t, "Lunges", &busy.ID)
	handler := NewProgramHandler(svc.programs, svc.exercises, testLogger)

	rec := httptest.NewRecorder()
	handler.DeleteProgram(rec, request(t, http.MethodDelete, "/programs/2", nil, nil, map[string]string{"id": "2"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "program with exercises")

	rec = httptest.NewRecorder()
	handler.DeleteProgram(rec, request(t, http.MethodDelete, "/programs/1", nil, nil, map[string]string{"id": "1"}))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[shared.MessageResponse](t, rec)
	assert.Equal(t, "Program deleted", resp.Message)
	assert.Equal(t, shared.TypeSuccess, resp.Type)

	_, err := svc.programs.GetProgram(context.Background(), empty.ID)
	assert.ErrorIs(t, err, store.ErrProgramNotFound)
}
