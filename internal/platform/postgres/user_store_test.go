package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

var userRowColumns = []string{
	"id", "name", "surname", "nick_name", "email", "age", "role", "password", "created_at", "updated_at", "deleted_at",
}

func TestUserStoreCreate(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db)

	user, err := domain.NewUser("jane@example.com", "$2a$10$hash", domain.RoleUser)
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(nil, nil, nil, "jane@example.com", nil, "user", "$2a$10$hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	require.NoError(t, s.Create(context.Background(), user))
	assert.Equal(t, int64(42), user.ID)
}

func TestUserStoreCreateUniqueViolations(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{constraintUserEmail, store.ErrEmailExists},
		{constraintUserNickName, store.ErrNicknameExists},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			db, mock := newMock(t)
			s := NewPostgresUserStore(db)
			user, err := domain.NewUser("jane@example.com", "hash", "")
			require.NoError(t, err)

			mock.ExpectQuery("INSERT INTO users").WillReturnError(pgError(uniqueViolationCode, tt.constraint))

			assert.ErrorIs(t, s.Create(context.Background(), user), tt.want)
		})
	}
}

func TestUserStoreCreateRejectsInvalidUser(t *testing.T) {
	db, _ := newMock(t)
	s := NewPostgresUserStore(db)

	err := s.Create(context.Background(), &domain.User{Email: "x@y.z", Role: domain.RoleUser})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrEmptyHashedPassword)
	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "user", storeErr.Entity)
	assert.Equal(t, "create", storeErr.Operation)
}

func TestUserStoreGetByID(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db)

	mock.ExpectQuery("FROM users WHERE id = \\$1 AND deleted_at IS NULL").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(7, "Jane", nil, "jd", "jane@example.com", 30, "admin", "hash", fixedTime, fixedTime, nil))

	user, err := s.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "Jane", *user.Name)
	assert.Nil(t, user.Surname)
	assert.Equal(t, "jd", *user.NickName)
	assert.Equal(t, 30, *user.Age)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, "hash", user.HashedPassword)
	assert.Nil(t, user.DeletedAt)
}

func TestUserStoreGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db)

	mock.ExpectQuery("FROM users").WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := s.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreEmailTaken(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("jane@example.com", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := s.EmailTaken(context.Background(), "jane@example.com", 3)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserStoreUpdateMissingUser(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db)

	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), &domain.User{ID: 5, Email: "a@b.co", HashedPassword: "h", Role: domain.RoleUser})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreSoftDeleteAndRestore(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db)

	mock.ExpectExec("UPDATE users SET deleted_at = \\$1").
		WithArgs(sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET deleted_at = NULL").
		WithArgs(sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET deleted_at = NULL").
		WithArgs(sqlmock.AnyArg(), int64(6)).
		WillReturnError(pgError(uniqueViolationCode, constraintUserEmail))

	require.NoError(t, s.Delete(context.Background(), 5))
	require.NoError(t, s.Restore(context.Background(), 5))
	assert.ErrorIs(t, s.Restore(context.Background(), 6), store.ErrEmailExists)
}

func TestUserStoreListWithSearchAndPage(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db)

	mock.ExpectQuery("FROM users WHERE deleted_at IS NULL AND \\(name ILIKE \\$1 .* ORDER BY id LIMIT \\$2 OFFSET \\$3").
		WithArgs("%jan%", 10, 10).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(11, nil, nil, "jan", "jan@example.com", nil, "user", "h", fixedTime, fixedTime, nil))

	users, err := s.List(context.Background(), store.UserFilter{
		Search:      "jan",
		ListOptions: store.ListOptions{Limit: 10, Offset: 10},
	})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "jan@example.com", users[0].Email)
}

func TestUserStoreListNickNameOnly(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db)

	mock.ExpectQuery("FROM users WHERE deleted_at IS NULL AND nick_name ILIKE \\$1 ORDER BY id$").
		WithArgs("%jan@example.com%").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	users, err := s.List(context.Background(), store.UserFilter{Search: "jan@example.com", NickNameOnly: true})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserStoreCount(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE deleted_at IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := s.Count(context.Background(), store.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
