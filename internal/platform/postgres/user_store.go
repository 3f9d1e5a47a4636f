package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

const userColumns = `id, name, surname, nick_name, email, age, role, password, created_at, updated_at, deleted_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db store.DBTX
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
func NewPostgresUserStore(db store.DBTX) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "invalid user", fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	query := `
		INSERT INTO users (name, surname, nick_name, email, age, role, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := s.db.QueryRowxContext(ctx, query,
		user.Name,
		user.Surname,
		user.NickName,
		user.Email,
		user.Age,
		string(user.Role),
		user.HashedPassword,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, mapNotFound(err, store.ErrUserNotFound)
	}
	return &user, nil
}

// GetByIDIncludingDeleted implements store.UserStore.GetByIDIncludingDeleted
func (s *PostgresUserStore) GetByIDIncludingDeleted(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, mapNotFound(err, store.ErrUserNotFound)
	}
	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`
	if err := s.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, mapNotFound(err, store.ErrUserNotFound)
	}
	return &user, nil
}

// EmailTaken implements store.UserStore.EmailTaken
func (s *PostgresUserStore) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var taken bool
	query := `SELECT EXISTS (
		SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND id <> $2 AND deleted_at IS NULL)`
	if err := s.db.GetContext(ctx, &taken, query, email, excludeID); err != nil {
		return false, MapError(err)
	}
	return taken, nil
}

// NicknameTaken implements store.UserStore.NicknameTaken
func (s *PostgresUserStore) NicknameTaken(ctx context.Context, nickName string, excludeID int64) (bool, error) {
	var taken bool
	query := `SELECT EXISTS (
		SELECT 1 FROM users WHERE nick_name = $1 AND id <> $2 AND deleted_at IS NULL)`
	if err := s.db.GetContext(ctx, &taken, query, nickName, excludeID); err != nil {
		return false, MapError(err)
	}
	return taken, nil
}

// Update implements store.UserStore.Update
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "update", "invalid user", fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	user.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE users
		SET name = $1, surname = $2, nick_name = $3, email = $4, age = $5, role = $6,
		    password = $7, updated_at = $8
		WHERE id = $9 AND deleted_at IS NULL`
	result, err := s.db.ExecContext(ctx, query,
		user.Name,
		user.Surname,
		user.NickName,
		user.Email,
		user.Age,
		string(user.Role),
		user.HashedPassword,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore.Delete as a soft delete.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	query := `UPDATE users SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// Restore implements store.UserStore.Restore
func (s *PostgresUserStore) Restore(ctx context.Context, id int64) error {
	query := `UPDATE users SET deleted_at = NULL, updated_at = $1 WHERE id = $2 AND deleted_at IS NOT NULL`
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context, filter store.UserFilter) ([]*domain.User, error) {
	var args queryArgs
	where := userWhere(filter, &args)
	query := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY id` + pageClause(filter.ListOptions, &args)

	users := []*domain.User{}
	if err := s.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, MapError(err)
	}
	return users, nil
}

// Count implements store.UserStore.Count
func (s *PostgresUserStore) Count(ctx context.Context, filter store.UserFilter) (int, error) {
	var args queryArgs
	var count int
	query := `SELECT COUNT(*) FROM users` + userWhere(filter, &args)
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

func userWhere(filter store.UserFilter, args *queryArgs) string {
	conditions := []string{"deleted_at IS NULL"}
	if filter.Search != "" {
		p := args.add(likePattern(filter.Search))
		if filter.NickNameOnly {
			conditions = append(conditions, "nick_name ILIKE "+p)
		} else {
			conditions = append(conditions,
				"(name ILIKE "+p+" OR surname ILIKE "+p+" OR nick_name ILIKE "+p+" OR email ILIKE "+p+")")
		}
	}
	return whereClause(conditions)
}
