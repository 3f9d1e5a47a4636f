package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

// ProgramService provides program operations.
type ProgramService interface {
	ListPrograms(ctx context.Context, params ListParams) (*domain.Page[*domain.Program], error)
	GetProgram(ctx context.Context, id int64) (*domain.Program, error)
	CreateProgram(ctx context.Context, name string, description *string) (*domain.Program, error)
	UpdateProgram(ctx context.Context, id int64, patch domain.ProgramPatch) (*domain.Program, error)
	// DeleteProgram returns ErrProgramHasExercises while exercises are linked.
	DeleteProgram(ctx context.Context, id int64) error
}

// ProgramServiceImpl implements ProgramService.
type ProgramServiceImpl struct {
	programs store.ProgramStore
	links    store.ProgramExerciseStore
	logger   *slog.Logger
}

var _ ProgramService = (*ProgramServiceImpl)(nil)

// NewProgramService creates a ProgramService.
func NewProgramService(
	programs store.ProgramStore,
	links store.ProgramExerciseStore,
	logger *slog.Logger,
) *ProgramServiceImpl {
	if programs == nil || links == nil {
		panic("program service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgramServiceImpl{
		programs: programs,
		links:    links,
		logger:   logger.With("component", "program_service"),
	}
}

// ListPrograms implements ProgramService.ListPrograms
func (s *ProgramServiceImpl) ListPrograms(ctx context.Context, params ListParams) (*domain.Page[*domain.Program], error) {
	filter := store.ProgramFilter{Search: params.Search}
	page, err := paginate(ctx, params,
		func(ctx context.Context) (int, error) {
			return s.programs.Count(ctx, filter)
		},
		func(ctx context.Context, opts store.ListOptions) ([]*domain.Program, error) {
			f := filter
			f.ListOptions = opts
			return s.programs.List(ctx, f)
		})
	if err != nil {
		return nil, NewServiceError("program", "list", err)
	}
	return page, nil
}

// GetProgram implements ProgramService.GetProgram
func (s *ProgramServiceImpl) GetProgram(ctx context.Context, id int64) (*domain.Program, error) {
	program, err := s.programs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve program: %w", err)
	}
	return program, nil
}

// CreateProgram implements ProgramService.CreateProgram
func (s *ProgramServiceImpl) CreateProgram(ctx context.Context, name string, description *string) (*domain.Program, error) {
	program, err := domain.NewProgram(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.programs.Create(ctx, program); err != nil {
		s.logger.Error("failed to save program", "error", err)
		return nil, NewServiceError("program", "create", err)
	}
	s.logger.Info("program created", "program_id", program.ID)
	return program, nil
}

// UpdateProgram implements ProgramService.UpdateProgram
func (s *ProgramServiceImpl) UpdateProgram(
	ctx context.Context,
	id int64,
	patch domain.ProgramPatch,
) (*domain.Program, error) {
	program, err := s.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(program)
	if err := s.programs.Update(ctx, program); err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, NewServiceError("program", "update", err)
	}
	return program, nil
}

// DeleteProgram implements ProgramService.DeleteProgram
func (s *ProgramServiceImpl) DeleteProgram(ctx context.Context, id int64) error {
	if _, err := s.GetProgram(ctx, id); err != nil {
		return err
	}

	linked, err := s.links.CountActiveByProgram(ctx, id)
	if err != nil {
		return NewServiceError("program", "delete", err)
	}
	if linked > 0 {
		s.logger.Debug("program delete blocked by exercises", "program_id", id, "exercises", linked)
		return ErrProgramHasExercises
	}

	if err := s.programs.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrProgramNotFound) {
			return err
		}
		return NewServiceError("program", "delete", err)
	}
	s.logger.Info("program deleted", "program_id", id)
	return nil
}
