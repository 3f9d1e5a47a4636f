package mocks

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

// MockProgramExerciseStore implements store.ProgramExerciseStore for testing.
// Unset function fields fall back to an in-memory implementation; Programs,
// when set, supplies program names for ProgramsForExercises.
type MockProgramExerciseStore struct {
	CreateFn     func(ctx context.Context, link *domain.ProgramExercise) error
	GetActiveFn  func(ctx context.Context, programID, exerciseID int64) (*domain.ProgramExercise, error)
	SoftDeleteFn func(ctx context.Context, id int64) error

	Programs *MockProgramStore

	// WithTxCalls counts WithTx calls.
	WithTxCalls int

	mu     sync.Mutex
	links  []*domain.ProgramExercise
	nextID int64
}

var _ store.ProgramExerciseStore = (*MockProgramExerciseStore)(nil)

// NewMockProgramExerciseStore creates an empty MockProgramExerciseStore.
func NewMockProgramExerciseStore() *MockProgramExerciseStore {
	return &MockProgramExerciseStore{}
}

// WithTx implements store.ProgramExerciseStore and returns the mock itself.
func (m *MockProgramExerciseStore) WithTx(tx store.DBTX) store.ProgramExerciseStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}

func (m *MockProgramExerciseStore) active(programID, exerciseID int64) *domain.ProgramExercise {
	for _, l := range m.links {
		if l.DeletedAt == nil && l.ProgramID == programID && l.ExerciseID == exerciseID {
			return l
		}
	}
	return nil
}

// Create implements store.ProgramExerciseStore
func (m *MockProgramExerciseStore) Create(ctx context.Context, link *domain.ProgramExercise) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, link)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active(link.ProgramID, link.ExerciseID) != nil {
		return store.ErrAssociationExists
	}
	m.nextID++
	link.ID = m.nextID
	c := *link
	m.links = append(m.links, &c)
	return nil
}

// GetActive implements store.ProgramExerciseStore
func (m *MockProgramExerciseStore) GetActive(
	ctx context.Context,
	programID, exerciseID int64,
) (*domain.ProgramExercise, error) {
	if m.GetActiveFn != nil {
		return m.GetActiveFn(ctx, programID, exerciseID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.active(programID, exerciseID)
	if l == nil {
		return nil, store.ErrAssociationNotFound
	}
	c := *l
	return &c, nil
}

// SoftDelete implements store.ProgramExerciseStore
func (m *MockProgramExerciseStore) SoftDelete(ctx context.Context, id int64) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.links {
		if l.ID == id && l.DeletedAt == nil {
			now := time.Now().UTC()
			l.DeletedAt = &now
			l.UpdatedAt = now
			return nil
		}
	}
	return store.ErrAssociationNotFound
}

// CountActiveByProgram implements store.ProgramExerciseStore
func (m *MockProgramExerciseStore) CountActiveByProgram(ctx context.Context, programID int64) (int, error) {
	return len(m.activeExercises(programID)), nil
}

// ProgramsForExercises implements store.ProgramExerciseStore
func (m *MockProgramExerciseStore) ProgramsForExercises(
	ctx context.Context,
	exerciseIDs []int64,
) (map[int64][]domain.ProgramSummary, error) {
	m.mu.Lock()
	var pairs []domain.ProgramExercise
	for _, l := range m.links {
		if l.DeletedAt == nil && slices.Contains(exerciseIDs, l.ExerciseID) {
			pairs = append(pairs, *l)
		}
	}
	m.mu.Unlock()

	slices.SortFunc(pairs, func(a, b domain.ProgramExercise) int { return cmp.Compare(a.ProgramID, b.ProgramID) })
	result := make(map[int64][]domain.ProgramSummary, len(exerciseIDs))
	for _, l := range pairs {
		summary := domain.ProgramSummary{ID: l.ProgramID}
		if m.Programs != nil {
			summary.Name, _ = m.Programs.name(l.ProgramID)
		}
		result[l.ExerciseID] = append(result[l.ExerciseID], summary)
	}
	return result, nil
}

// Links returns a copy of every stored link, deleted ones included.
func (m *MockProgramExerciseStore) Links() []domain.ProgramExercise {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]domain.ProgramExercise, len(m.links))
	for i, l := range m.links {
		result[i] = *l
	}
	return result
}

func (m *MockProgramExerciseStore) activeExercises(programID int64) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for _, l := range m.links {
		if l.DeletedAt == nil && l.ProgramID == programID {
			ids = append(ids, l.ExerciseID)
		}
	}
	return ids
}

func (m *MockProgramExerciseStore) removeWhere(match func(*domain.ProgramExercise) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = slices.DeleteFunc(m.links, match)
}
