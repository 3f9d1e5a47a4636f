package domain

import "time"

// CompletedExercise records that a user performed an exercise. Records are
// immutable; only their owner may delete them.
type CompletedExercise struct {
	ID          int64            `json:"id" db:"id"`
	UserID      int64            `json:"userID" db:"user_id"`
	ExerciseID  int64            `json:"exerciseID" db:"exercise_id"`
	CompletedAt time.Time        `json:"completedAt" db:"completed_at"`
	Duration    int              `json:"duration" db:"duration"` // seconds
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
	Exercise    *ExerciseSummary `json:"exercise,omitempty" db:"-"`
}

// NewCompletedExercise creates a completion record. A zero completedAt means now.
func NewCompletedExercise(userID, exerciseID int64, duration int, completedAt time.Time) (*CompletedExercise, error) {
	if userID <= 0 || exerciseID <= 0 {
		return nil, ErrInvalidID
	}
	if duration < 1 {
		return nil, ErrInvalidDuration
	}
	now := time.Now().UTC()
	if completedAt.IsZero() {
		completedAt = now
	}
	return &CompletedExercise{
		UserID:      userID,
		ExerciseID:  exerciseID,
		CompletedAt: completedAt.UTC(),
		Duration:    duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
