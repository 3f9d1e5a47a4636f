package store

import (
	"context"

	"github.com/fittrack/fittrack-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and sets its ID and timestamps.
	// Returns ErrEmailExists or ErrNicknameExists on a uniqueness violation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves an active user. Returns ErrUserNotFound otherwise.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByIDIncludingDeleted retrieves a user whether or not it is soft-deleted.
	GetByIDIncludingDeleted(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves an active user by email, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// EmailTaken reports whether an active user other than excludeID uses email.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)

	// NicknameTaken reports whether an active user other than excludeID uses nickName.
	NicknameTaken(ctx context.Context, nickName string, excludeID int64) (bool, error)

	// Update writes every column of user. The caller supplies the complete
	// user including HashedPassword.
	Update(ctx context.Context, user *domain.User) error

	// Delete soft-deletes an active user.
	Delete(ctx context.Context, id int64) error

	// Restore clears deleted_at on a soft-deleted user. Returns ErrUserNotFound
	// when no soft-deleted user has the id.
	Restore(ctx context.Context, id int64) error

	// List returns active users ordered by id.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)

	// Count returns the number of active users matching filter, ignoring its ListOptions.
	Count(ctx context.Context, filter UserFilter) (int, error)
}
