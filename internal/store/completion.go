package store

import (
	"context"

	"github.com/fittrack/fittrack-api/internal/domain"
)

// CompletionStore persists completed-exercise records. Every read and delete
// that serves a user is scoped by that user's id.
type CompletionStore interface {
	Create(ctx context.Context, completion *domain.CompletedExercise) error

	// ListByUser returns the user's records, newest completed_at first, each
	// with its exercise summary.
	ListByUser(ctx context.Context, userID int64, opts ListOptions) ([]*domain.CompletedExercise, error)

	CountByUser(ctx context.Context, userID int64) (int, error)

	// ListByUsers groups the records of several users by user id.
	ListByUsers(ctx context.Context, userIDs []int64) (map[int64][]*domain.CompletedExercise, error)

	// DeleteForUser deletes the record only when it belongs to userID, and
	// returns ErrCompletionNotFound otherwise.
	DeleteForUser(ctx context.Context, id, userID int64) error

	// ExistsForExercise reports whether any record references the exercise.
	ExistsForExercise(ctx context.Context, exerciseID int64) (bool, error)
}
