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

// MockUserStore implements store.UserStore for testing. Unset function fields
// fall back to an in-memory implementation that honours soft deletes and the
// uniqueness of email and nickname among active users.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	EmailTakenFn    func(ctx context.Context, email string, excludeID int64) (bool, error)
	NicknameTakenFn func(ctx context.Context, nickName string, excludeID int64) (bool, error)
	UpdateFn        func(ctx context.Context, user *domain.User) error
	DeleteFn        func(ctx context.Context, id int64) error
	ListFn          func(ctx context.Context, filter store.UserFilter) ([]*domain.User, error)

	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[int64]*domain.User)}
}

func (m *MockUserStore) init() {
	if m.users == nil {
		m.users = make(map[int64]*domain.User)
	}
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (m *MockUserStore) conflict(u *domain.User) error {
	for _, other := range m.users {
		if other.ID == u.ID || other.IsDeleted() {
			continue
		}
		if strings.EqualFold(other.Email, u.Email) {
			return store.ErrEmailExists
		}
		if u.NickName != nil && other.NickName != nil && *u.NickName == *other.NickName {
			return store.ErrNicknameExists
		}
	}
	return nil
}

// Create implements store.UserStore
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()

	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "invalid user", err)
	}
	if err := m.conflict(user); err != nil {
		return err
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = copyUser(user)
	return nil
}

// Seed stores users as they are, keeping their ids. It is a test helper.
func (m *MockUserStore) Seed(users ...*domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, u := range users {
		if u.ID == 0 {
			m.nextID++
			u.ID = m.nextID
		}
		m.nextID = max(m.nextID, u.ID)
		m.users[u.ID] = copyUser(u)
	}
}

// GetByID implements store.UserStore
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok || u.IsDeleted() {
		return nil, store.ErrUserNotFound
	}
	return copyUser(u), nil
}

// GetByIDIncludingDeleted implements store.UserStore
func (m *MockUserStore) GetByIDIncludingDeleted(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return copyUser(u), nil
}

// GetByEmail implements store.UserStore
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if !u.IsDeleted() && strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// EmailTaken implements store.UserStore
func (m *MockUserStore) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	if m.EmailTakenFn != nil {
		return m.EmailTakenFn(ctx, email, excludeID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID != excludeID && !u.IsDeleted() && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// NicknameTaken implements store.UserStore
func (m *MockUserStore) NicknameTaken(ctx context.Context, nickName string, excludeID int64) (bool, error) {
	if m.NicknameTakenFn != nil {
		return m.NicknameTakenFn(ctx, nickName, excludeID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID != excludeID && !u.IsDeleted() && u.NickName != nil && *u.NickName == nickName {
			return true, nil
		}
	}
	return false, nil
}

// Update implements store.UserStore
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID]
	if !ok || existing.IsDeleted() {
		return store.ErrUserNotFound
	}
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "update", "invalid user", err)
	}
	if err := m.conflict(user); err != nil {
		return err
	}
	user.UpdatedAt = time.Now().UTC()
	m.users[user.ID] = copyUser(user)
	return nil
}

// Delete implements store.UserStore
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok || u.IsDeleted() {
		return store.ErrUserNotFound
	}
	now := time.Now().UTC()
	u.DeletedAt = &now
	u.UpdatedAt = now
	return nil
}

// Restore implements store.UserStore
func (m *MockUserStore) Restore(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok || !u.IsDeleted() {
		return store.ErrUserNotFound
	}
	if err := m.conflict(u); err != nil {
		return err
	}
	u.DeletedAt = nil
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockUserStore) matching(filter store.UserFilter) []*domain.User {
	term := strings.ToLower(filter.Search)
	var result []*domain.User
	for _, u := range m.users {
		if u.IsDeleted() {
			continue
		}
		if term != "" && !userMatches(u, term, filter.NickNameOnly) {
			continue
		}
		result = append(result, copyUser(u))
	}
	slices.SortFunc(result, func(a, b *domain.User) int { return cmp.Compare(a.ID, b.ID) })
	return result
}

func userMatches(u *domain.User, term string, nickNameOnly bool) bool {
	fields := []*string{u.Name, u.Surname, u.NickName, &u.Email}
	if nickNameOnly {
		fields = []*string{u.NickName}
	}
	for _, f := range fields {
		if f != nil && strings.Contains(strings.ToLower(*f), term) {
			return true
		}
	}
	return false
}

// List implements store.UserStore
func (m *MockUserStore) List(ctx context.Context, filter store.UserFilter) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return window(m.matching(filter), filter.ListOptions), nil
}

// Count implements store.UserStore
func (m *MockUserStore) Count(ctx context.Context, filter store.UserFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matching(filter)), nil
}

// window applies ListOptions to an ordered slice.
func window[T any](items []T, opts store.ListOptions) []T {
	if items == nil {
		items = []T{}
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(items) {
			return []T{}
		}
		items = items[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}
