package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fittrack/fittrack-api/internal/domain"
)

func TestEntityErrorsWrapTaxonomy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want error
	}{
		{ErrUserNotFound, domain.ErrNotFound},
		{ErrProgramNotFound, domain.ErrNotFound},
		{ErrExerciseNotFound, domain.ErrNotFound},
		{ErrAssociationNotFound, domain.ErrNotFound},
		{ErrCompletionNotFound, domain.ErrNotFound},
		{ErrEmailExists, domain.ErrConflict},
		{ErrNicknameExists, domain.ErrConflict},
		{ErrExerciseNameExists, domain.ErrConflict},
		{ErrExerciseReferenced, domain.ErrDependency},
		{ErrInvalidEntity, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()
			wrapped := fmt.Errorf("service: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.want)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}
}

func TestIsNotFoundAndDuplicate(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(fmt.Errorf("x: %w", ErrExerciseNotFound)))
	assert.False(t, IsNotFoundError(ErrEmailExists))
	assert.False(t, IsNotFoundError(nil))
	assert.True(t, IsDuplicateError(ErrNicknameExists))
	assert.False(t, IsDuplicateError(errors.New("other")))
	assert.False(t, errors.Is(ErrEmailExists, ErrNicknameExists))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("exercise", "create", "failed to insert", cause)
	assert.Equal(t, "create operation on exercise failed: failed to insert: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list operation on user failed: timeout", NewStoreError("user", "list", "timeout", nil).Error())
}
