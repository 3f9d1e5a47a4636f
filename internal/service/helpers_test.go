package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/mocks"
	"github.com/fittrack/fittrack-api/internal/service"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fixture struct {
	stores      *mocks.Stores
	hasher      *mocks.MockPasswordHasher
	users       *service.UserServiceImpl
	programs    *service.ProgramServiceImpl
	exercises   *service.ExerciseServiceImpl
	completions *service.CompletionServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := mocks.NewStores()
	hasher := &mocks.MockPasswordHasher{}
	return &fixture{
		stores: stores,
		hasher: hasher,
		users: service.NewUserService(stores.Users, stores.Completions, hasher,
			&mocks.MockPasswordVerifier{MatchMockHash: true}, testLogger),
		programs: service.NewProgramService(stores.Programs, stores.Links, testLogger),
		exercises: service.NewExerciseService(stores.Exercises, stores.Programs, stores.Links,
			stores.Completions, stores.Tx, testLogger),
		completions: service.NewCompletionService(stores.Completions, stores.Exercises, testLogger),
	}
}

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func (f *fixture) program(t *testing.T, name string) *domain.Program {
	t.Helper()
	p, err := domain.NewProgram(name, nil)
	require.NoError(t, err)
	require.NoError(t, f.stores.Programs.Create(t.Context(), p))
	return p
}

func (f *fixture) exercise(t *testing.T, name string) *domain.Exercise {
	t.Helper()
	e, err := domain.NewExercise(name, domain.DifficultyMedium)
	require.NoError(t, err)
	require.NoError(t, f.stores.Exercises.Create(t.Context(), e))
	return e
}

func (f *fixture) user(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := domain.NewUser(email, mocks.MockHashPrefix+"Passw0rd!", role)
	require.NoError(t, err)
	require.NoError(t, f.stores.Users.Create(t.Context(), u))
	return u
}
