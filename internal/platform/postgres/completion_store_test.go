package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

var completionRowColumns = []string{
	"id", "user_id", "exercise_id", "completed_at", "duration", "created_at", "updated_at",
	"exercise_name", "exercise_difficulty",
}

func TestCompletionStoreCreateMissingExercise(t *testing.T) {
	db, mock := newMock(t)
	c, err := domain.NewCompletedExercise(1, 99, 30, fixedTime)
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO completed_exercises").
		WithArgs(int64(1), int64(99), fixedTime, 30, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(foreignKeyViolationCode, constraintCompletionExercise))

	assert.ErrorIs(t, NewPostgresCompletionStore(db).Create(context.Background(), c), store.ErrExerciseNotFound)
}

func TestCompletionStoreListByUser(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("WHERE c.user_id = \\$1 ORDER BY c.completed_at DESC, c.id DESC LIMIT \\$2$").
		WithArgs(int64(3), 5).
		WillReturnRows(sqlmock.NewRows(completionRowColumns).
			AddRow(8, 3, 1, fixedTime, 45, fixedTime, fixedTime, "Push-ups", "easy"))

	got, err := NewPostgresCompletionStore(db).ListByUser(context.Background(), 3, store.ListOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(8), got[0].ID)
	assert.Equal(t, 45, got[0].Duration)
	require.NotNil(t, got[0].Exercise)
	assert.Equal(t, domain.ExerciseSummary{ID: 1, Name: "Push-ups", Difficulty: domain.DifficultyEasy}, *got[0].Exercise)
}

func TestCompletionStoreListByUsersGroups(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("WHERE c.user_id IN \\(\\$1, \\$2\\)").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(completionRowColumns).
			AddRow(1, 1, 5, fixedTime, 10, fixedTime, fixedTime, "Squats", "medium").
			AddRow(2, 2, 5, fixedTime, 20, fixedTime, fixedTime, "Squats", "medium").
			AddRow(3, 2, 6, fixedTime, 30, fixedTime, fixedTime, "Burpees", "hard"))

	got, err := NewPostgresCompletionStore(db).ListByUsers(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, got[1], 1)
	assert.Len(t, got[2], 2)
	assert.Equal(t, "Burpees", got[2][1].Exercise.Name)
}

// Deleting someone else's record touches no rows and looks exactly like a
// missing record.
func TestCompletionStoreDeleteForUserScopesByOwner(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("DELETE FROM completed_exercises WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(int64(8), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewPostgresCompletionStore(db).DeleteForUser(context.Background(), 8, 4)
	assert.ErrorIs(t, err, store.ErrCompletionNotFound)
}

func TestCompletionStoreExistsForExercise(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := NewPostgresCompletionStore(db).ExistsForExercise(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, exists)
}
