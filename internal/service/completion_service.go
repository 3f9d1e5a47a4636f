package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

// CompleteExerciseInput records one performed exercise. A nil CompletedAt
// means now.
type CompleteExerciseInput struct {
	ExerciseID  int64
	Duration    int
	CompletedAt *time.Time
}

// CompletionService manages a user's own completion records. Every operation
// is scoped to the calling user's id.
type CompletionService interface {
	CompleteExercise(ctx context.Context, userID int64, input CompleteExerciseInput) (*domain.CompletedExercise, error)
	ListCompletions(ctx context.Context, userID int64, page domain.PageRequest) (*domain.Page[*domain.CompletedExercise], error)
	// DeleteCompletion returns ErrCompletionNotFound for a record of another user.
	DeleteCompletion(ctx context.Context, userID, id int64) error
}

// CompletionServiceImpl implements CompletionService.
type CompletionServiceImpl struct {
	completions store.CompletionStore
	exercises   store.ExerciseStore
	logger      *slog.Logger
}

var _ CompletionService = (*CompletionServiceImpl)(nil)

// NewCompletionService creates a CompletionService.
func NewCompletionService(
	completions store.CompletionStore,
	exercises store.ExerciseStore,
	logger *slog.Logger,
) *CompletionServiceImpl {
	if completions == nil || exercises == nil {
		panic("completion service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CompletionServiceImpl{
		completions: completions,
		exercises:   exercises,
		logger:      logger.With("component", "completion_service"),
	}
}

// CompleteExercise implements CompletionService.CompleteExercise
func (s *CompletionServiceImpl) CompleteExercise(
	ctx context.Context,
	userID int64,
	input CompleteExerciseInput,
) (*domain.CompletedExercise, error) {
	exercise, err := s.exercises.GetByID(ctx, input.ExerciseID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve exercise: %w", err)
	}

	var completedAt time.Time
	if input.CompletedAt != nil {
		completedAt = *input.CompletedAt
	}
	completion, err := domain.NewCompletedExercise(userID, exercise.ID, input.Duration, completedAt)
	if err != nil {
		return nil, err
	}

	if err := s.completions.Create(ctx, completion); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to save completion", "error", err, "user_id", userID)
		return nil, NewServiceError("completion", "create", err)
	}

	completion.Exercise = &domain.ExerciseSummary{
		ID:         exercise.ID,
		Name:       exercise.Name,
		Difficulty: exercise.Difficulty,
	}
	s.logger.Info("exercise completed",
		"user_id", userID,
		"exercise_id", exercise.ID,
		"completion_id", completion.ID)
	return completion, nil
}

// ListCompletions implements CompletionService.ListCompletions
func (s *CompletionServiceImpl) ListCompletions(
	ctx context.Context,
	userID int64,
	page domain.PageRequest,
) (*domain.Page[*domain.CompletedExercise], error) {
	result, err := paginate(ctx, ListParams{Page: page},
		func(ctx context.Context) (int, error) {
			return s.completions.CountByUser(ctx, userID)
		},
		func(ctx context.Context, opts store.ListOptions) ([]*domain.CompletedExercise, error) {
			return s.completions.ListByUser(ctx, userID, opts)
		})
	if err != nil {
		return nil, NewServiceError("completion", "list", err)
	}
	return result, nil
}

// DeleteCompletion implements CompletionService.DeleteCompletion
func (s *CompletionServiceImpl) DeleteCompletion(ctx context.Context, userID, id int64) error {
	if err := s.completions.DeleteForUser(ctx, id, userID); err != nil {
		if errors.Is(err, store.ErrCompletionNotFound) {
			s.logger.Debug("completion not found for user", "user_id", userID, "completion_id", id)
			return err
		}
		return NewServiceError("completion", "delete", err)
	}
	s.logger.Info("completion deleted", "user_id", userID, "completion_id", id)
	return nil
}
