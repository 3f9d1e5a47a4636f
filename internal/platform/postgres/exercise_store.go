package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

const exerciseColumns = `e.id, e.name, e.difficulty, e.created_at, e.updated_at`

// PostgresExerciseStore implements store.ExerciseStore.
type PostgresExerciseStore struct {
	db store.DBTX
}

// NewPostgresExerciseStore creates a PostgresExerciseStore on db.
func NewPostgresExerciseStore(db store.DBTX) *PostgresExerciseStore {
	return &PostgresExerciseStore{db: db}
}

var _ store.ExerciseStore = (*PostgresExerciseStore)(nil)

// WithTx implements store.ExerciseStore.WithTx
func (s *PostgresExerciseStore) WithTx(tx store.DBTX) store.ExerciseStore {
	return &PostgresExerciseStore{db: tx}
}

// Create implements store.ExerciseStore.Create
func (s *PostgresExerciseStore) Create(ctx context.Context, exercise *domain.Exercise) error {
	if err := exercise.Validate(); err != nil {
		return store.NewStoreError("exercise", "create", "invalid exercise", fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}
	query := `
		INSERT INTO exercises (name, difficulty, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := s.db.QueryRowxContext(ctx, query,
		exercise.Name, string(exercise.Difficulty), exercise.CreatedAt, exercise.UpdatedAt,
	).Scan(&exercise.ID)
	return MapError(err)
}

// GetByID implements store.ExerciseStore.GetByID
func (s *PostgresExerciseStore) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var exercise domain.Exercise
	query := `SELECT ` + exerciseColumns + ` FROM exercises e WHERE e.id = $1`
	if err := s.db.GetContext(ctx, &exercise, query, id); err != nil {
		return nil, mapNotFound(err, store.ErrExerciseNotFound)
	}
	return &exercise, nil
}

// NameTaken implements store.ExerciseStore.NameTaken
func (s *PostgresExerciseStore) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var taken bool
	query := `SELECT EXISTS (SELECT 1 FROM exercises WHERE name = $1 AND id <> $2)`
	if err := s.db.GetContext(ctx, &taken, query, name, excludeID); err != nil {
		return false, MapError(err)
	}
	return taken, nil
}

// Update implements store.ExerciseStore.Update
func (s *PostgresExerciseStore) Update(ctx context.Context, exercise *domain.Exercise) error {
	if err := exercise.Validate(); err != nil {
		return store.NewStoreError("exercise", "update", "invalid exercise", fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}
	exercise.UpdatedAt = time.Now().UTC()
	query := `UPDATE exercises SET name = $1, difficulty = $2, updated_at = $3 WHERE id = $4`
	result, err := s.db.ExecContext(ctx, query,
		exercise.Name, string(exercise.Difficulty), exercise.UpdatedAt, exercise.ID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrExerciseNotFound)
}

// Delete implements store.ExerciseStore.Delete. Program links cascade; the
// RESTRICT foreign key from completed_exercises surfaces as ErrExerciseReferenced.
func (s *PostgresExerciseStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrExerciseNotFound)
}

// List implements store.ExerciseStore.List
func (s *PostgresExerciseStore) List(ctx context.Context, filter store.ExerciseFilter) ([]*domain.Exercise, error) {
	var args queryArgs
	where := exerciseWhere(filter, &args)
	query := `SELECT ` + exerciseColumns + ` FROM exercises e` + where +
		` ORDER BY e.id` + pageClause(filter.ListOptions, &args)

	exercises := []*domain.Exercise{}
	if err := s.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, MapError(err)
	}
	return exercises, nil
}

// Count implements store.ExerciseStore.Count
func (s *PostgresExerciseStore) Count(ctx context.Context, filter store.ExerciseFilter) (int, error) {
	var args queryArgs
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM exercises e`+exerciseWhere(filter, &args), args...); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

func exerciseWhere(filter store.ExerciseFilter, args *queryArgs) string {
	var conditions []string
	if filter.ProgramID > 0 {
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM program_exercises pe
			WHERE pe.exercise_id = e.id AND pe.program_id = `+args.add(filter.ProgramID)+` AND pe.deleted_at IS NULL)`)
	}
	if filter.Search != "" {
		conditions = append(conditions, "e.name ILIKE "+args.add(likePattern(filter.Search)))
	}
	return whereClause(conditions)
}
