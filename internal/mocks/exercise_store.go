package mocks

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

// MockExerciseStore implements store.ExerciseStore for testing. Unset function
// fields fall back to an in-memory implementation. Links and Completions, when
// set, provide the program filter, the delete cascade and the completion
// foreign key.
type MockExerciseStore struct {
	CreateFn  func(ctx context.Context, exercise *domain.Exercise) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Exercise, error)
	DeleteFn  func(ctx context.Context, id int64) error
	ListFn    func(ctx context.Context, filter store.ExerciseFilter) ([]*domain.Exercise, error)

	Links       *MockProgramExerciseStore
	Completions *MockCompletionStore

	// WithTxCalls counts WithTx calls.
	WithTxCalls int

	mu        sync.Mutex
	exercises map[int64]*domain.Exercise
	nextID    int64
}

var _ store.ExerciseStore = (*MockExerciseStore)(nil)

// NewMockExerciseStore creates an empty MockExerciseStore.
func NewMockExerciseStore() *MockExerciseStore {
	return &MockExerciseStore{exercises: make(map[int64]*domain.Exercise)}
}

func copyExercise(e *domain.Exercise) *domain.Exercise {
	c := *e
	c.Programs = nil
	return &c
}

// WithTx implements store.ExerciseStore. The mock has no transactions and
// returns itself.
func (m *MockExerciseStore) WithTx(tx store.DBTX) store.ExerciseStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}

func (m *MockExerciseStore) nameUsed(name string, excludeID int64) bool {
	for _, e := range m.exercises {
		if e.ID != excludeID && e.Name == name {
			return true
		}
	}
	return false
}

// Create implements store.ExerciseStore
func (m *MockExerciseStore) Create(ctx context.Context, exercise *domain.Exercise) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, exercise)
	}
	if err := exercise.Validate(); err != nil {
		return store.NewStoreError("exercise", "create", "invalid exercise", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.exercises == nil {
		m.exercises = make(map[int64]*domain.Exercise)
	}
	if m.nameUsed(exercise.Name, 0) {
		return store.ErrExerciseNameExists
	}
	m.nextID++
	exercise.ID = m.nextID
	m.exercises[exercise.ID] = copyExercise(exercise)
	return nil
}

// GetByID implements store.ExerciseStore
func (m *MockExerciseStore) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exercises[id]
	if !ok {
		return nil, store.ErrExerciseNotFound
	}
	return copyExercise(e), nil
}

// NameTaken implements store.ExerciseStore
func (m *MockExerciseStore) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nameUsed(name, excludeID), nil
}

// Update implements store.ExerciseStore
func (m *MockExerciseStore) Update(ctx context.Context, exercise *domain.Exercise) error {
	if err := exercise.Validate(); err != nil {
		return store.NewStoreError("exercise", "update", "invalid exercise", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.exercises[exercise.ID]; !ok {
		return store.ErrExerciseNotFound
	}
	if m.nameUsed(exercise.Name, exercise.ID) {
		return store.ErrExerciseNameExists
	}
	exercise.UpdatedAt = time.Now().UTC()
	m.exercises[exercise.ID] = copyExercise(exercise)
	return nil
}

// Delete implements store.ExerciseStore
func (m *MockExerciseStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.Completions != nil && m.Completions.referencesExercise(id) {
		return store.ErrExerciseReferenced
	}

	m.mu.Lock()
	_, ok := m.exercises[id]
	delete(m.exercises, id)
	m.mu.Unlock()

	if !ok {
		return store.ErrExerciseNotFound
	}
	if m.Links != nil {
		m.Links.removeWhere(func(l *domain.ProgramExercise) bool { return l.ExerciseID == id })
	}
	return nil
}

func (m *MockExerciseStore) matching(filter store.ExerciseFilter) []*domain.Exercise {
	var inProgram map[int64]bool
	if filter.ProgramID > 0 {
		inProgram = map[int64]bool{}
		if m.Links != nil {
			for _, id := range m.Links.activeExercises(filter.ProgramID) {
				inProgram[id] = true
			}
		}
	}

	term := strings.ToLower(filter.Search)
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Exercise
	for _, e := range m.exercises {
		if inProgram != nil && !inProgram[e.ID] {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(e.Name), term) {
			continue
		}
		result = append(result, copyExercise(e))
	}
	slices.SortFunc(result, func(a, b *domain.Exercise) int { return cmp.Compare(a.ID, b.ID) })
	return result
}

// List implements store.ExerciseStore
func (m *MockExerciseStore) List(ctx context.Context, filter store.ExerciseFilter) ([]*domain.Exercise, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return window(m.matching(filter), filter.ListOptions), nil
}

// Count implements store.ExerciseStore
func (m *MockExerciseStore) Count(ctx context.Context, filter store.ExerciseFilter) (int, error) {
	return len(m.matching(filter)), nil
}

func (m *MockExerciseStore) summary(id int64) *domain.ExerciseSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exercises[id]
	if !ok {
		return nil
	}
	return &domain.ExerciseSummary{ID: e.ID, Name: e.Name, Difficulty: e.Difficulty}
}
