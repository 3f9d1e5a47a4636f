package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

// ExerciseListParams narrows an exercise listing. A zero ProgramID lists
// every exercise.
type ExerciseListParams struct {
	ListParams
	ProgramID int64
}

// CreateExerciseInput carries a new exercise and the optional program to link
// it to.
type CreateExerciseInput struct {
	Name       string
	Difficulty domain.Difficulty
	ProgramID  *int64
}

// ExerciseService provides exercise and program-link operations.
type ExerciseService interface {
	// ListExercises lists exercises, each with the programs it is linked to.
	ListExercises(ctx context.Context, params ExerciseListParams) (*domain.Page[*domain.Exercise], error)

	// ListProgramExercises lists the exercises of an existing program.
	ListProgramExercises(ctx context.Context, programID int64, params ListParams) (*domain.Page[*domain.Exercise], error)

	// GetExercise retrieves an exercise with its programs.
	GetExercise(ctx context.Context, id int64) (*domain.Exercise, error)

	// ListExercisePrograms returns the programs an existing exercise belongs to.
	ListExercisePrograms(ctx context.Context, id int64) ([]domain.ProgramSummary, error)

	// CreateExercise creates an exercise and, when ProgramID is set, links it
	// to that program in the same transaction.
	CreateExercise(ctx context.Context, input CreateExerciseInput) (*domain.Exercise, error)

	// UpdateExercise applies a partial update; name uniqueness is only
	// re-checked when the name changes.
	UpdateExercise(ctx context.Context, id int64, patch domain.ExercisePatch) (*domain.Exercise, error)

	// DeleteExercise deletes an exercise without completion records.
	DeleteExercise(ctx context.Context, id int64) error

	// AssignToProgram links an exercise to a program.
	AssignToProgram(ctx context.Context, exerciseID, programID int64) (*domain.ProgramExercise, error)

	// RemoveFromProgram soft-deletes the active link unless the exercise has
	// completion history.
	RemoveFromProgram(ctx context.Context, exerciseID, programID int64) error
}

// ExerciseServiceImpl implements ExerciseService.
type ExerciseServiceImpl struct {
	exercises   store.ExerciseStore
	programs    store.ProgramStore
	links       store.ProgramExerciseStore
	completions store.CompletionStore
	tx          store.TxRunner
	logger      *slog.Logger
}

var _ ExerciseService = (*ExerciseServiceImpl)(nil)

// NewExerciseService creates an ExerciseService.
func NewExerciseService(
	exercises store.ExerciseStore,
	programs store.ProgramStore,
	links store.ProgramExerciseStore,
	completions store.CompletionStore,
	tx store.TxRunner,
	logger *slog.Logger,
) *ExerciseServiceImpl {
	if exercises == nil || programs == nil || links == nil || completions == nil || tx == nil {
		panic("exercise service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExerciseServiceImpl{
		exercises:   exercises,
		programs:    programs,
		links:       links,
		completions: completions,
		tx:          tx,
		logger:      logger.With("component", "exercise_service"),
	}
}

// ListExercises implements ExerciseService.ListExercises
func (s *ExerciseServiceImpl) ListExercises(
	ctx context.Context,
	params ExerciseListParams,
) (*domain.Page[*domain.Exercise], error) {
	filter := store.ExerciseFilter{ProgramID: params.ProgramID, Search: params.Search}
	page, err := paginate(ctx, params.ListParams,
		func(ctx context.Context) (int, error) {
			return s.exercises.Count(ctx, filter)
		},
		func(ctx context.Context, opts store.ListOptions) ([]*domain.Exercise, error) {
			f := filter
			f.ListOptions = opts
			return s.exercises.List(ctx, f)
		})
	if err != nil {
		return nil, NewServiceError("exercise", "list", err)
	}
	if err := s.attachPrograms(ctx, page.Items...); err != nil {
		return nil, NewServiceError("exercise", "list", err)
	}
	return page, nil
}

// ListProgramExercises implements ExerciseService.ListProgramExercises
func (s *ExerciseServiceImpl) ListProgramExercises(
	ctx context.Context,
	programID int64,
	params ListParams,
) (*domain.Page[*domain.Exercise], error) {
	if _, err := s.programs.GetByID(ctx, programID); err != nil {
		return nil, fmt.Errorf("failed to retrieve program: %w", err)
	}
	return s.ListExercises(ctx, ExerciseListParams{ListParams: params, ProgramID: programID})
}

// GetExercise implements ExerciseService.GetExercise
func (s *ExerciseServiceImpl) GetExercise(ctx context.Context, id int64) (*domain.Exercise, error) {
	exercise, err := s.exercises.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve exercise: %w", err)
	}
	if err := s.attachPrograms(ctx, exercise); err != nil {
		return nil, NewServiceError("exercise", "get", err)
	}
	return exercise, nil
}

// ListExercisePrograms implements ExerciseService.ListExercisePrograms
func (s *ExerciseServiceImpl) ListExercisePrograms(ctx context.Context, id int64) ([]domain.ProgramSummary, error) {
	exercise, err := s.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	return exercise.Programs, nil
}

// CreateExercise implements ExerciseService.CreateExercise
func (s *ExerciseServiceImpl) CreateExercise(
	ctx context.Context,
	input CreateExerciseInput,
) (*domain.Exercise, error) {
	exercise, err := domain.NewExercise(input.Name, input.Difficulty)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, exercise.Name, 0); err != nil {
		return nil, err
	}

	var program *domain.Program
	if input.ProgramID != nil {
		program, err = s.programs.GetByID(ctx, *input.ProgramID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve program: %w", err)
		}
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx store.DBTX) error {
		if err := s.exercises.WithTx(tx).Create(ctx, exercise); err != nil {
			return err
		}
		if program == nil {
			return nil
		}
		link, err := domain.NewProgramExercise(program.ID, exercise.ID)
		if err != nil {
			return err
		}
		return s.links.WithTx(tx).Create(ctx, link)
	})
	if err != nil {
		if store.IsDuplicateError(err) || store.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.Error("failed to create exercise", "error", err)
		return nil, NewServiceError("exercise", "create", err)
	}

	if program != nil {
		exercise.Programs = []domain.ProgramSummary{{ID: program.ID, Name: program.Name}}
	}
	s.logger.Info("exercise created", "exercise_id", exercise.ID, "program_id", input.ProgramID)
	return exercise, nil
}

// UpdateExercise implements ExerciseService.UpdateExercise
func (s *ExerciseServiceImpl) UpdateExercise(
	ctx context.Context,
	id int64,
	patch domain.ExercisePatch,
) (*domain.Exercise, error) {
	exercise, err := s.exercises.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve exercise for update: %w", err)
	}

	before := exercise.Name
	patch.Apply(exercise)
	if exercise.Name != before {
		if err := s.checkNameFree(ctx, exercise.Name, id); err != nil {
			return nil, err
		}
	}

	if err := s.exercises.Update(ctx, exercise); err != nil {
		if store.IsDuplicateError(err) || store.IsNotFoundError(err) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, NewServiceError("exercise", "update", err)
	}
	if err := s.attachPrograms(ctx, exercise); err != nil {
		return nil, NewServiceError("exercise", "update", err)
	}
	return exercise, nil
}

// DeleteExercise implements ExerciseService.DeleteExercise
func (s *ExerciseServiceImpl) DeleteExercise(ctx context.Context, id int64) error {
	if _, err := s.exercises.GetByID(ctx, id); err != nil {
		return fmt.Errorf("failed to retrieve exercise for delete: %w", err)
	}

	referenced, err := s.completions.ExistsForExercise(ctx, id)
	if err != nil {
		return NewServiceError("exercise", "delete", err)
	}
	if referenced {
		return ErrExerciseHasCompletions
	}

	if err := s.exercises.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrExerciseReferenced):
			// A completion was recorded between the check and the delete.
			return ErrExerciseHasCompletions
		case errors.Is(err, store.ErrExerciseNotFound):
			return err
		}
		return NewServiceError("exercise", "delete", err)
	}
	s.logger.Info("exercise deleted", "exercise_id", id)
	return nil
}

// AssignToProgram implements ExerciseService.AssignToProgram
func (s *ExerciseServiceImpl) AssignToProgram(
	ctx context.Context,
	exerciseID, programID int64,
) (*domain.ProgramExercise, error) {
	if err := s.checkPair(ctx, exerciseID, programID); err != nil {
		return nil, err
	}

	_, err := s.links.GetActive(ctx, programID, exerciseID)
	switch {
	case err == nil:
		return nil, store.ErrAssociationExists
	case !errors.Is(err, store.ErrAssociationNotFound):
		return nil, NewServiceError("exercise", "assign", err)
	}

	link, err := domain.NewProgramExercise(programID, exerciseID)
	if err != nil {
		return nil, err
	}
	if err := s.links.Create(ctx, link); err != nil {
		if errors.Is(err, store.ErrAssociationExists) {
			return nil, err
		}
		return nil, NewServiceError("exercise", "assign", err)
	}
	s.logger.Info("exercise assigned to program", "exercise_id", exerciseID, "program_id", programID)
	return link, nil
}

// RemoveFromProgram implements ExerciseService.RemoveFromProgram
func (s *ExerciseServiceImpl) RemoveFromProgram(ctx context.Context, exerciseID, programID int64) error {
	if err := s.checkPair(ctx, exerciseID, programID); err != nil {
		return err
	}

	link, err := s.links.GetActive(ctx, programID, exerciseID)
	if err != nil {
		if errors.Is(err, store.ErrAssociationNotFound) {
			return err
		}
		return NewServiceError("exercise", "remove", err)
	}

	history, err := s.completions.ExistsForExercise(ctx, exerciseID)
	if err != nil {
		return NewServiceError("exercise", "remove", err)
	}
	if history {
		return ErrAssociationHasCompletions
	}

	if err := s.links.SoftDelete(ctx, link.ID); err != nil {
		if errors.Is(err, store.ErrAssociationNotFound) {
			return err
		}
		return NewServiceError("exercise", "remove", err)
	}
	s.logger.Info("exercise removed from program", "exercise_id", exerciseID, "program_id", programID)
	return nil
}

func (s *ExerciseServiceImpl) checkPair(ctx context.Context, exerciseID, programID int64) error {
	if _, err := s.exercises.GetByID(ctx, exerciseID); err != nil {
		return fmt.Errorf("failed to retrieve exercise: %w", err)
	}
	if _, err := s.programs.GetByID(ctx, programID); err != nil {
		return fmt.Errorf("failed to retrieve program: %w", err)
	}
	return nil
}

func (s *ExerciseServiceImpl) checkNameFree(ctx context.Context, name string, excludeID int64) error {
	taken, err := s.exercises.NameTaken(ctx, name, excludeID)
	if err != nil {
		return NewServiceError("exercise", "check name", err)
	}
	if taken {
		return store.ErrExerciseNameExists
	}
	return nil
}

// attachPrograms loads the active programs of every exercise in one query.
func (s *ExerciseServiceImpl) attachPrograms(ctx context.Context, exercises ...*domain.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	ids := make([]int64, len(exercises))
	for i, e := range exercises {
		ids[i] = e.ID
	}
	byExercise, err := s.links.ProgramsForExercises(ctx, ids)
	if err != nil {
		return err
	}
	for _, e := range exercises {
		e.Programs = byExercise[e.ID]
		if e.Programs == nil {
			e.Programs = []domain.ProgramSummary{}
		}
	}
	return nil
}
