package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/service"
	"github.com/fittrack/fittrack-api/internal/store"
)

func TestCompletionService(t *testing.T) {
	ctx := context.Background()

	t.Run("complete attaches the exercise summary", func(t *testing.T) {
		f := newFixture(t)
		user := f.user(t, "john@example.com", domain.RoleUser)
		exercise := f.exercise(t, "Push-ups")
		at := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)

		completion, err := f.completions.CompleteExercise(ctx, user.ID, service.CompleteExerciseInput{
			ExerciseID:  exercise.ID,
			Duration:    90,
			CompletedAt: &at,
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, completion.UserID)
		assert.True(t, completion.CompletedAt.Equal(at))
		require.NotNil(t, completion.Exercise)
		assert.Equal(t, "Push-ups", completion.Exercise.Name)
	})

	t.Run("unknown exercise", func(t *testing.T) {
		f := newFixture(t)
		user := f.user(t, "john@example.com", domain.RoleUser)

		_, err := f.completions.CompleteExercise(ctx, user.ID, service.CompleteExerciseInput{ExerciseID: 77, Duration: 10})
		assert.ErrorIs(t, err, store.ErrExerciseNotFound)
	})

	t.Run("non-positive duration", func(t *testing.T) {
		f := newFixture(t)
		user := f.user(t, "john@example.com", domain.RoleUser)
		exercise := f.exercise(t, "Plank")

		_, err := f.completions.CompleteExercise(ctx, user.ID, service.CompleteExerciseInput{ExerciseID: exercise.ID})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("list is newest first and scoped to the user", func(t *testing.T) {
		f := newFixture(t)
		john := f.user(t, "john@example.com", domain.RoleUser)
		jane := f.user(t, "jane@example.com", domain.RoleUser)
		exercise := f.exercise(t, "Squats")
		base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		for i := range 3 {
			at := base.Add(time.Duration(i) * time.Hour)
			_, err := f.completions.CompleteExercise(ctx, john.ID, service.CompleteExerciseInput{
				ExerciseID: exercise.ID, Duration: 30, CompletedAt: &at,
			})
			require.NoError(t, err)
		}
		_, err := f.completions.CompleteExercise(ctx, jane.ID, service.CompleteExerciseInput{ExerciseID: exercise.ID, Duration: 30})
		require.NoError(t, err)

		page, err := f.completions.ListCompletions(ctx, john.ID, domain.PageRequest{})
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		assert.True(t, page.Items[0].CompletedAt.After(page.Items[2].CompletedAt))

		page, err = f.completions.ListCompletions(ctx, john.ID, domain.PageRequest{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 3, page.TotalItems)
		assert.True(t, page.HasNextPage)
	})

	t.Run("another user's record is not found", func(t *testing.T) {
		f := newFixture(t)
		owner := f.user(t, "owner@example.com", domain.RoleUser)
		other := f.user(t, "other@example.com", domain.RoleUser)
		exercise := f.exercise(t, "Lunges")
		completion, err := f.completions.CompleteExercise(ctx, owner.ID, service.CompleteExerciseInput{ExerciseID: exercise.ID, Duration: 45})
		require.NoError(t, err)

		err = f.completions.DeleteCompletion(ctx, other.ID, completion.ID)
		assert.ErrorIs(t, err, store.ErrCompletionNotFound)
		assert.Equal(t, 1, f.stores.Completions.Count())

		require.NoError(t, f.completions.DeleteCompletion(ctx, owner.ID, completion.ID))
		assert.Zero(t, f.stores.Completions.Count())
	})
}
