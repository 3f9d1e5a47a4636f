package store

import (
	"context"

	"github.com/fittrack/fittrack-api/internal/domain"
)

// ExerciseStore defines the interface for exercise persistence.
type ExerciseStore interface {
	// Create returns ErrExerciseNameExists when the name is taken.
	Create(ctx context.Context, exercise *domain.Exercise) error

	// GetByID returns ErrExerciseNotFound when no exercise has the id.
	// Programs is left empty.
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)

	// NameTaken reports whether an exercise other than excludeID uses name.
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)

	Update(ctx context.Context, exercise *domain.Exercise) error

	// Delete removes the exercise and its program links. Returns
	// ErrExerciseReferenced when completion records still point at it.
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, filter ExerciseFilter) ([]*domain.Exercise, error)
	Count(ctx context.Context, filter ExerciseFilter) (int, error)

	// WithTx returns an ExerciseStore that runs its queries on tx.
	WithTx(tx DBTX) ExerciseStore
}
