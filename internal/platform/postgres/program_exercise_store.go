package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

const programExerciseColumns = `id, program_id, exercise_id, created_at, updated_at, deleted_at`

// PostgresProgramExerciseStore implements store.ProgramExerciseStore.
type PostgresProgramExerciseStore struct {
	db store.DBTX
}

// NewPostgresProgramExerciseStore creates a PostgresProgramExerciseStore on db.
func NewPostgresProgramExerciseStore(db store.DBTX) *PostgresProgramExerciseStore {
	return &PostgresProgramExerciseStore{db: db}
}

var _ store.ProgramExerciseStore = (*PostgresProgramExerciseStore)(nil)

// WithTx implements store.ProgramExerciseStore.WithTx
func (s *PostgresProgramExerciseStore) WithTx(tx store.DBTX) store.ProgramExerciseStore {
	return &PostgresProgramExerciseStore{db: tx}
}

// Create implements store.ProgramExerciseStore.Create. A concurrent duplicate
// is caught by the partial unique index and returned as ErrAssociationExists.
func (s *PostgresProgramExerciseStore) Create(ctx context.Context, link *domain.ProgramExercise) error {
	query := `
		INSERT INTO program_exercises (program_id, exercise_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := s.db.QueryRowxContext(ctx, query,
		link.ProgramID, link.ExerciseID, link.CreatedAt, link.UpdatedAt,
	).Scan(&link.ID)
	return MapError(err)
}

// GetActive implements store.ProgramExerciseStore.GetActive
func (s *PostgresProgramExerciseStore) GetActive(
	ctx context.Context,
	programID, exerciseID int64,
) (*domain.ProgramExercise, error) {
	var link domain.ProgramExercise
	query := `SELECT ` + programExerciseColumns + ` FROM program_exercises
		WHERE program_id = $1 AND exercise_id = $2 AND deleted_at IS NULL`
	if err := s.db.GetContext(ctx, &link, query, programID, exerciseID); err != nil {
		return nil, mapNotFound(err, store.ErrAssociationNotFound)
	}
	return &link, nil
}

// SoftDelete implements store.ProgramExerciseStore.SoftDelete
func (s *PostgresProgramExerciseStore) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE program_exercises SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrAssociationNotFound)
}

// CountActiveByProgram implements store.ProgramExerciseStore.CountActiveByProgram
func (s *PostgresProgramExerciseStore) CountActiveByProgram(ctx context.Context, programID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM program_exercises WHERE program_id = $1 AND deleted_at IS NULL`
	if err := s.db.GetContext(ctx, &count, query, programID); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

type exerciseProgramRow struct {
	ExerciseID int64  `db:"exercise_id"`
	ID         int64  `db:"id"`
	Name       string `db:"name"`
}

// ProgramsForExercises implements store.ProgramExerciseStore.ProgramsForExercises
func (s *PostgresProgramExerciseStore) ProgramsForExercises(
	ctx context.Context,
	exerciseIDs []int64,
) (map[int64][]domain.ProgramSummary, error) {
	result := make(map[int64][]domain.ProgramSummary, len(exerciseIDs))
	if len(exerciseIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
		SELECT pe.exercise_id, p.id, p.name
		FROM program_exercises pe
		JOIN programs p ON p.id = pe.program_id
		WHERE pe.deleted_at IS NULL AND pe.exercise_id IN (?)
		ORDER BY pe.exercise_id, p.id`, exerciseIDs)
	if err != nil {
		return nil, err
	}

	var rows []exerciseProgramRow
	if err := s.db.SelectContext(ctx, &rows, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, MapError(err)
	}
	for _, row := range rows {
		result[row.ExerciseID] = append(result[row.ExerciseID], domain.ProgramSummary{ID: row.ID, Name: row.Name})
	}
	return result, nil
}
