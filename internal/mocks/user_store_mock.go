package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

// TestifyMockUserStore is a mock of store.UserStore interface for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

func userResult(args mock.Arguments) (*domain.User, error) {
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of store.UserStore.Create
func (m *TestifyMockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *TestifyMockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}

// GetByIDIncludingDeleted is a mock implementation of store.UserStore.GetByIDIncludingDeleted
func (m *TestifyMockUserStore) GetByIDIncludingDeleted(ctx context.Context, id int64) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *TestifyMockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return userResult(m.Called(ctx, email))
}

// EmailTaken is a mock implementation of store.UserStore.EmailTaken
func (m *TestifyMockUserStore) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

// NicknameTaken is a mock implementation of store.UserStore.NicknameTaken
func (m *TestifyMockUserStore) NicknameTaken(ctx context.Context, nickName string, excludeID int64) (bool, error) {
	args := m.Called(ctx, nickName, excludeID)
	return args.Bool(0), args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *TestifyMockUserStore) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *TestifyMockUserStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// Restore is a mock implementation of store.UserStore.Restore
func (m *TestifyMockUserStore) Restore(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// List is a mock implementation of store.UserStore.List
func (m *TestifyMockUserStore) List(ctx context.Context, filter store.UserFilter) ([]*domain.User, error) {
	args := m.Called(ctx, filter)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// Count is a mock implementation of store.UserStore.Count
func (m *TestifyMockUserStore) Count(ctx context.Context, filter store.UserFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
