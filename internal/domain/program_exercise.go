package domain

import "time"

// ProgramExercise links an exercise to a program. Links are soft-deleted; a
// pair may have at most one link with a nil DeletedAt.
type ProgramExercise struct {
	ID         int64      `json:"id" db:"id"`
	ProgramID  int64      `json:"programID" db:"program_id"`
	ExerciseID int64      `json:"exerciseID" db:"exercise_id"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt  *time.Time `json:"-" db:"deleted_at"`
}

// NewProgramExercise creates a link between programID and exerciseID.
func NewProgramExercise(programID, exerciseID int64) (*ProgramExercise, error) {
	if programID <= 0 || exerciseID <= 0 {
		return nil, ErrInvalidID
	}
	now := time.Now().UTC()
	return &ProgramExercise{
		ProgramID:  programID,
		ExerciseID: exerciseID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
