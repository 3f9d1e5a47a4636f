package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

const completionSelect = `
	SELECT c.id, c.user_id, c.exercise_id, c.completed_at, c.duration, c.created_at, c.updated_at,
	       e.name AS exercise_name, e.difficulty AS exercise_difficulty
	FROM completed_exercises c
	JOIN exercises e ON e.id = c.exercise_id`

// PostgresCompletionStore implements store.CompletionStore.
type PostgresCompletionStore struct {
	db store.DBTX
}

// NewPostgresCompletionStore creates a PostgresCompletionStore on db.
func NewPostgresCompletionStore(db store.DBTX) *PostgresCompletionStore {
	return &PostgresCompletionStore{db: db}
}

var _ store.CompletionStore = (*PostgresCompletionStore)(nil)

type completionRow struct {
	domain.CompletedExercise
	ExerciseName       string            `db:"exercise_name"`
	ExerciseDifficulty domain.Difficulty `db:"exercise_difficulty"`
}

func (r *completionRow) toDomain() *domain.CompletedExercise {
	c := r.CompletedExercise
	c.Exercise = &domain.ExerciseSummary{
		ID:         c.ExerciseID,
		Name:       r.ExerciseName,
		Difficulty: r.ExerciseDifficulty,
	}
	return &c
}

// Create implements store.CompletionStore.Create. An exercise deleted in the
// meantime is reported as ErrExerciseNotFound.
func (s *PostgresCompletionStore) Create(ctx context.Context, completion *domain.CompletedExercise) error {
	query := `
		INSERT INTO completed_exercises (user_id, exercise_id, completed_at, duration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := s.db.QueryRowxContext(ctx, query,
		completion.UserID,
		completion.ExerciseID,
		completion.CompletedAt,
		completion.Duration,
		completion.CreatedAt,
		completion.UpdatedAt,
	).Scan(&completion.ID)
	if IsForeignKeyViolation(err) {
		return store.ErrExerciseNotFound
	}
	return MapError(err)
}

// ListByUser implements store.CompletionStore.ListByUser
func (s *PostgresCompletionStore) ListByUser(
	ctx context.Context,
	userID int64,
	opts store.ListOptions,
) ([]*domain.CompletedExercise, error) {
	args := queryArgs{}
	query := completionSelect + ` WHERE c.user_id = ` + args.add(userID) +
		` ORDER BY c.completed_at DESC, c.id DESC` + pageClause(opts, &args)

	var rows []completionRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, MapError(err)
	}
	completions := make([]*domain.CompletedExercise, 0, len(rows))
	for i := range rows {
		completions = append(completions, rows[i].toDomain())
	}
	return completions, nil
}

// CountByUser implements store.CompletionStore.CountByUser
func (s *PostgresCompletionStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM completed_exercises WHERE user_id = $1`, userID); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// ListByUsers implements store.CompletionStore.ListByUsers
func (s *PostgresCompletionStore) ListByUsers(
	ctx context.Context,
	userIDs []int64,
) (map[int64][]*domain.CompletedExercise, error) {
	result := make(map[int64][]*domain.CompletedExercise, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(completionSelect+` WHERE c.user_id IN (?) ORDER BY c.user_id, c.completed_at DESC, c.id DESC`, userIDs)
	if err != nil {
		return nil, err
	}

	var rows []completionRow
	if err := s.db.SelectContext(ctx, &rows, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		return nil, MapError(err)
	}
	for i := range rows {
		c := rows[i].toDomain()
		result[c.UserID] = append(result[c.UserID], c)
	}
	return result, nil
}

// DeleteForUser implements store.CompletionStore.DeleteForUser
func (s *PostgresCompletionStore) DeleteForUser(ctx context.Context, id, userID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM completed_exercises WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrCompletionNotFound)
}

// ExistsForExercise implements store.CompletionStore.ExistsForExercise
func (s *PostgresCompletionStore) ExistsForExercise(ctx context.Context, exerciseID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM completed_exercises WHERE exercise_id = $1)`
	if err := s.db.GetContext(ctx, &exists, query, exerciseID); err != nil {
		return false, MapError(err)
	}
	return exists, nil
}
