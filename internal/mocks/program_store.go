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

// MockProgramStore implements store.ProgramStore for testing. Unset function
// fields fall back to an in-memory implementation; when Links is set, deleting
// a program removes its links like the database cascade does.
type MockProgramStore struct {
	CreateFn  func(ctx context.Context, program *domain.Program) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Program, error)
	DeleteFn  func(ctx context.Context, id int64) error
	ListFn    func(ctx context.Context, filter store.ProgramFilter) ([]*domain.Program, error)

	Links *MockProgramExerciseStore

	mu       sync.Mutex
	programs map[int64]*domain.Program
	nextID   int64
}

var _ store.ProgramStore = (*MockProgramStore)(nil)

// NewMockProgramStore creates an empty MockProgramStore.
func NewMockProgramStore() *MockProgramStore {
	return &MockProgramStore{programs: make(map[int64]*domain.Program)}
}

// Create implements store.ProgramStore
func (m *MockProgramStore) Create(ctx context.Context, program *domain.Program) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, program)
	}
	if err := program.Validate(); err != nil {
		return store.NewStoreError("program", "create", "invalid program", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.programs == nil {
		m.programs = make(map[int64]*domain.Program)
	}
	m.nextID++
	program.ID = m.nextID
	c := *program
	m.programs[program.ID] = &c
	return nil
}

// GetByID implements store.ProgramStore
func (m *MockProgramStore) GetByID(ctx context.Context, id int64) (*domain.Program, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.programs[id]
	if !ok {
		return nil, store.ErrProgramNotFound
	}
	c := *p
	return &c, nil
}

// Update implements store.ProgramStore
func (m *MockProgramStore) Update(ctx context.Context, program *domain.Program) error {
	if err := program.Validate(); err != nil {
		return store.NewStoreError("program", "update", "invalid program", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.programs[program.ID]; !ok {
		return store.ErrProgramNotFound
	}
	program.UpdatedAt = time.Now().UTC()
	c := *program
	m.programs[program.ID] = &c
	return nil
}

// Delete implements store.ProgramStore
func (m *MockProgramStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	_, ok := m.programs[id]
	delete(m.programs, id)
	m.mu.Unlock()

	if !ok {
		return store.ErrProgramNotFound
	}
	if m.Links != nil {
		m.Links.removeWhere(func(l *domain.ProgramExercise) bool { return l.ProgramID == id })
	}
	return nil
}

func (m *MockProgramStore) matching(filter store.ProgramFilter) []*domain.Program {
	term := strings.ToLower(filter.Search)
	var result []*domain.Program
	for _, p := range m.programs {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		c := *p
		result = append(result, &c)
	}
	slices.SortFunc(result, func(a, b *domain.Program) int { return cmp.Compare(a.ID, b.ID) })
	return result
}

// List implements store.ProgramStore
func (m *MockProgramStore) List(ctx context.Context, filter store.ProgramFilter) ([]*domain.Program, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return window(m.matching(filter), filter.ListOptions), nil
}

// Count implements store.ProgramStore
func (m *MockProgramStore) Count(ctx context.Context, filter store.ProgramFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matching(filter)), nil
}

func (m *MockProgramStore) name(id int64) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.programs[id]
	if !ok {
		return "", false
	}
	return p.Name, true
}
