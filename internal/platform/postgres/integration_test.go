//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/platform/postgres"
	"github.com/fittrack/fittrack-api/internal/store"
	"github.com/fittrack/fittrack-api/internal/testdb"
)

func newUser(t *testing.T, tx *sqlx.Tx, email, nickName string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "$2a$04$integrationtesthash", domain.RoleUser)
	require.NoError(t, err)
	user.NickName = &nickName
	require.NoError(t, postgres.NewPostgresUserStore(tx).Create(context.Background(), user))
	return user
}

func newExercise(t *testing.T, tx *sqlx.Tx, name string) *domain.Exercise {
	t.Helper()
	exercise, err := domain.NewExercise(name, domain.DifficultyMedium)
	require.NoError(t, err)
	require.NoError(t, postgres.NewPostgresExerciseStore(tx).Create(context.Background(), exercise))
	return exercise
}

func TestUserUniquenessIgnoresDeletedUsers(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		users := postgres.NewPostgresUserStore(tx)
		first := newUser(t, tx, "reuse@example.com", "reuse")

		require.NoError(t, users.Delete(ctx, first.ID))
		_, err := users.GetByID(ctx, first.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		second := newUser(t, tx, "REUSE@example.com", "reuse")
		assert.NotEqual(t, first.ID, second.ID)

		taken, err := users.EmailTaken(ctx, "reuse@EXAMPLE.com", 0)
		require.NoError(t, err)
		assert.True(t, taken)
	})

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		newUser(t, tx, "dup@example.com", "dup-one")
		user, err := domain.NewUser("Dup@Example.com", "$2a$04$integrationtesthash", domain.RoleUser)
		require.NoError(t, err)

		err = postgres.NewPostgresUserStore(tx).Create(ctx, user)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestExerciseWithCompletionsCannotBeDeleted(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		user := newUser(t, tx, "athlete@example.com", "athlete")
		exercise := newExercise(t, tx, "Integration Deadlift")
		completions := postgres.NewPostgresCompletionStore(tx)

		completion, err := domain.NewCompletedExercise(user.ID, exercise.ID, 120, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		require.NoError(t, completions.Create(ctx, completion))

		exists, err := completions.ExistsForExercise(ctx, exercise.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		listed, err := completions.ListByUser(ctx, user.ID, store.ListOptions{})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		require.NotNil(t, listed[0].Exercise)
		assert.Equal(t, "Integration Deadlift", listed[0].Exercise.Name)

		err = postgres.NewPostgresExerciseStore(tx).Delete(ctx, exercise.ID)
		assert.ErrorIs(t, err, store.ErrExerciseReferenced)
	})
}

func TestProgramLinksCascadeAndReassign(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		programs := postgres.NewPostgresProgramStore(tx)
		links := postgres.NewPostgresProgramExerciseStore(tx)

		program, err := domain.NewProgram("Integration Strength", nil)
		require.NoError(t, err)
		require.NoError(t, programs.Create(ctx, program))
		exercise := newExercise(t, tx, "Integration Squat")

		link, err := domain.NewProgramExercise(program.ID, exercise.ID)
		require.NoError(t, err)
		require.NoError(t, links.Create(ctx, link))

		byExercise, err := links.ProgramsForExercises(ctx, []int64{exercise.ID})
		require.NoError(t, err)
		assert.Equal(t, []domain.ProgramSummary{{ID: program.ID, Name: "Integration Strength"}}, byExercise[exercise.ID])

		// A removed link does not block assigning the pair again.
		require.NoError(t, links.SoftDelete(ctx, link.ID))
		again, err := domain.NewProgramExercise(program.ID, exercise.ID)
		require.NoError(t, err)
		require.NoError(t, links.Create(ctx, again))

		require.NoError(t, programs.Delete(ctx, program.ID))
		_, err = links.GetActive(ctx, program.ID, exercise.ID)
		assert.ErrorIs(t, err, store.ErrAssociationNotFound)
	})

	testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
		programs := postgres.NewPostgresProgramStore(tx)
		links := postgres.NewPostgresProgramExerciseStore(tx)

		program, err := domain.NewProgram("Integration Cardio", nil)
		require.NoError(t, err)
		require.NoError(t, programs.Create(ctx, program))
		exercise := newExercise(t, tx, "Integration Rowing")

		first, err := domain.NewProgramExercise(program.ID, exercise.ID)
		require.NoError(t, err)
		require.NoError(t, links.Create(ctx, first))

		second, err := domain.NewProgramExercise(program.ID, exercise.ID)
		require.NoError(t, err)
		assert.ErrorIs(t, links.Create(ctx, second), store.ErrAssociationExists)
	})
}

func TestMigrateStatus(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, postgres.Migrate(context.Background(), db.DB, postgres.MigrateStatus, nil))
}
