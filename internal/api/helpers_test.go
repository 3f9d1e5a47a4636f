package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/i18n"
	"github.com/fittrack/fittrack-api/internal/mocks"
	"github.com/fittrack/fittrack-api/internal/service"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// services is the real service layer over wired in-memory stores.
type services struct {
	stores      *mocks.Stores
	users       *service.UserServiceImpl
	programs    *service.ProgramServiceImpl
	exercises   *service.ExerciseServiceImpl
	completions *service.CompletionServiceImpl
}

func newServices(t *testing.T) *services {
	t.Helper()
	st := mocks.NewStores()
	return &services{
		stores: st,
		users: service.NewUserService(st.Users, st.Completions,
			&mocks.MockPasswordHasher{}, &mocks.MockPasswordVerifier{MatchMockHash: true}, testLogger),
		programs:    service.NewProgramService(st.Programs, st.Links, testLogger),
		exercises:   service.NewExerciseService(st.Exercises, st.Programs, st.Links, st.Completions, st.Tx, testLogger),
		completions: service.NewCompletionService(st.Completions, st.Exercises, testLogger),
	}
}

func (s *services) program(t *testing.T, name string) *domain.Program {
	t.Helper()
	p, err := s.programs.CreateProgram(context.Background(), name, nil)
	require.NoError(t, err)
	return p
}

func (s *services) exercise(t *testing.T, name string, programID *int64) *domain.Exercise {
	t.Helper()
	e, err := s.exercises.CreateExercise(context.Background(), service.CreateExerciseInput{
		Name:       name,
		Difficulty: domain.DifficultyEasy,
		ProgramID:  programID,
	})
	require.NoError(t, err)
	return e
}

func (s *services) user(t *testing.T, email, nickName string, role domain.Role) *domain.User {
	t.Helper()
	ctx := context.Background()
	u, err := s.users.Register(ctx, service.RegisterInput{Email: email, Password: "Passw0rd!", NickName: &nickName})
	require.NoError(t, err)
	if role != domain.RoleUser {
		u, err = s.users.UpdateUser(ctx, u.ID, service.UserUpdate{Role: &role})
		require.NoError(t, err)
	}
	return u
}

var testBundle = func() *i18n.Bundle {
	bundle, err := i18n.NewBundle("en", []string{"en", "sk"})
	if err != nil {
		panic(err)
	}
	return bundle
}()

// request builds a request with an English localizer, the optional caller
// identity and the given path parameters.
func request(t *testing.T, method, target string, body any, caller *domain.User, params map[string]string) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	r := httptest.NewRequest(method, target, reader)
	ctx := shared.WithLocale(r.Context(), testBundle.LocalizerFor("en"))
	if caller != nil {
		ctx = shared.WithIdentity(ctx, shared.IdentityFromUser(caller))
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for name, value := range params {
			rctx.URLParams.Add(name, value)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
