package store

import (
	"context"

	"github.com/fittrack/fittrack-api/internal/domain"
)

// ProgramExerciseStore persists the links between programs and exercises.
type ProgramExerciseStore interface {
	Create(ctx context.Context, link *domain.ProgramExercise) error

	// GetActive returns the active link for the pair, or ErrAssociationNotFound.
	GetActive(ctx context.Context, programID, exerciseID int64) (*domain.ProgramExercise, error)

	// SoftDelete marks an active link deleted.
	SoftDelete(ctx context.Context, id int64) error

	// CountActiveByProgram counts active links of a program.
	CountActiveByProgram(ctx context.Context, programID int64) (int, error)

	// ProgramsForExercises maps each exercise id to the programs it is actively
	// linked to, ordered by program id. Ids without links are absent.
	ProgramsForExercises(ctx context.Context, exerciseIDs []int64) (map[int64][]domain.ProgramSummary, error)

	// WithTx returns a ProgramExerciseStore that runs its queries on tx.
	WithTx(tx DBTX) ProgramExerciseStore
}
