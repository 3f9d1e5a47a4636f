package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"email index", pgError(uniqueViolationCode, constraintUserEmail), store.ErrEmailExists},
		{"nickname index", pgError(uniqueViolationCode, constraintUserNickName), store.ErrNicknameExists},
		{"exercise name", pgError(uniqueViolationCode, constraintExerciseName), store.ErrExerciseNameExists},
		{"active pair", pgError(uniqueViolationCode, constraintProgramExercise), store.ErrAssociationExists},
		{"completion restrict", pgError(foreignKeyViolationCode, constraintCompletionExercise), store.ErrExerciseReferenced},
		{"other unique", pgError(uniqueViolationCode, "something_key"), store.ErrDuplicate},
		{"other fk", pgError(foreignKeyViolationCode, "x_fkey"), store.ErrInvalidEntity},
		{"check", pgError(checkViolationCode, "users_age_check"), store.ErrInvalidEntity},
		{"not null", pgError(notNullViolationCode, ""), store.ErrInvalidEntity},
		{"wrapped", fmt.Errorf("exec: %w", pgError(uniqueViolationCode, constraintUserEmail)), store.ErrEmailExists},
		{"unknown", plain, plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tt.err), tt.want)
		})
	}

	assert.NoError(t, MapError(nil))
	assert.ErrorIs(t, MapError(pgError(uniqueViolationCode, constraintUserEmail)), domain.ErrConflict)
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	unique := fmt.Errorf("insert: %w", pgError(uniqueViolationCode, "something_key"))
	fk := pgError(foreignKeyViolationCode, "x_fkey")

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.True(t, store.IsDuplicateError(MapError(unique)))
	assert.False(t, store.IsDuplicateError(MapError(fk)))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrUserNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrUserNotFound), store.ErrUserNotFound)
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(sqlmock.NewErrorResult(errors.New("driver")), nil))
	assert.Error(t, CheckRowsAffected(nil, nil))
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `%push%`, likePattern("push"))
	assert.Equal(t, `%100\%\_a%`, likePattern("100%_a"))
}
