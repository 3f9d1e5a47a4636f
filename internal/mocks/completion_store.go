package mocks

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

// MockCompletionStore implements store.CompletionStore for testing. Unset
// function fields fall back to an in-memory implementation; Exercises, when
// set, enforces the exercise foreign key and supplies exercise summaries.
type MockCompletionStore struct {
	CreateFn            func(ctx context.Context, completion *domain.CompletedExercise) error
	ExistsForExerciseFn func(ctx context.Context, exerciseID int64) (bool, error)
	DeleteForUserFn     func(ctx context.Context, id, userID int64) error

	Exercises *MockExerciseStore

	mu          sync.Mutex
	completions []*domain.CompletedExercise
	nextID      int64
}

var _ store.CompletionStore = (*MockCompletionStore)(nil)

// NewMockCompletionStore creates an empty MockCompletionStore.
func NewMockCompletionStore() *MockCompletionStore {
	return &MockCompletionStore{}
}

// Create implements store.CompletionStore
func (m *MockCompletionStore) Create(ctx context.Context, completion *domain.CompletedExercise) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, completion)
	}
	if m.Exercises != nil && m.Exercises.summary(completion.ExerciseID) == nil {
		return store.ErrExerciseNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	completion.ID = m.nextID
	c := *completion
	c.Exercise = nil
	m.completions = append(m.completions, &c)
	return nil
}

// owned returns copies of the user's records, newest completion first.
func (m *MockCompletionStore) owned(userID int64) []*domain.CompletedExercise {
	m.mu.Lock()
	var result []*domain.CompletedExercise
	for _, c := range m.completions {
		if c.UserID == userID {
			cp := *c
			result = append(result, &cp)
		}
	}
	m.mu.Unlock()

	slices.SortFunc(result, func(a, b *domain.CompletedExercise) int {
		if byTime := b.CompletedAt.Compare(a.CompletedAt); byTime != 0 {
			return byTime
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if m.Exercises != nil {
		for _, c := range result {
			c.Exercise = m.Exercises.summary(c.ExerciseID)
		}
	}
	return result
}

// ListByUser implements store.CompletionStore
func (m *MockCompletionStore) ListByUser(
	ctx context.Context,
	userID int64,
	opts store.ListOptions,
) ([]*domain.CompletedExercise, error) {
	return window(m.owned(userID), opts), nil
}

// CountByUser implements store.CompletionStore
func (m *MockCompletionStore) CountByUser(ctx context.Context, userID int64) (int, error) {
	return len(m.owned(userID)), nil
}

// ListByUsers implements store.CompletionStore
func (m *MockCompletionStore) ListByUsers(
	ctx context.Context,
	userIDs []int64,
) (map[int64][]*domain.CompletedExercise, error) {
	result := make(map[int64][]*domain.CompletedExercise, len(userIDs))
	for _, id := range userIDs {
		if owned := m.owned(id); len(owned) > 0 {
			result[id] = owned
		}
	}
	return result, nil
}

// DeleteForUser implements store.CompletionStore
func (m *MockCompletionStore) DeleteForUser(ctx context.Context, id, userID int64) error {
	if m.DeleteForUserFn != nil {
		return m.DeleteForUserFn(ctx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.completions {
		if c.ID == id && c.UserID == userID {
			m.completions = slices.Delete(m.completions, i, i+1)
			return nil
		}
	}
	return store.ErrCompletionNotFound
}

// ExistsForExercise implements store.CompletionStore
func (m *MockCompletionStore) ExistsForExercise(ctx context.Context, exerciseID int64) (bool, error) {
	if m.ExistsForExerciseFn != nil {
		return m.ExistsForExerciseFn(ctx, exerciseID)
	}
	return m.referencesExercise(exerciseID), nil
}

// Count returns the number of stored records.
func (m *MockCompletionStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.completions)
}

func (m *MockCompletionStore) referencesExercise(exerciseID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.completions {
		if c.ExerciseID == exerciseID {
			return true
		}
	}
	return false
}
