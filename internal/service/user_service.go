package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/service/auth"
	"github.com/fittrack/fittrack-api/internal/store"
)

// RegisterInput carries the fields of a self-registration. Password is plaintext.
type RegisterInput struct {
	Email    string
	Password string
	Name     *string
	Surname  *string
	NickName *string
	Age      *int
}

// UserUpdate carries a partial user update; nil fields stay unchanged.
// Password is plaintext and is hashed before it is stored.
type UserUpdate struct {
	Name     *string
	Surname  *string
	NickName *string
	Email    *string
	Age      *int
	Role     *domain.Role
	Password *string
}

// UserListing is one entry of a user listing. Completions is only loaded for
// listings that ask for it.
type UserListing struct {
	User        *domain.User
	Completions []*domain.CompletedExercise
}

// UserService provides user account operations.
type UserService interface {
	// Register creates a user with role user after checking email and nickname
	// uniqueness.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Authenticate returns the active user with email when password matches,
	// and ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves an active user by id.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// ListUsers lists active users. The admin listing also loads each user's
	// completion records and searches private fields; any other listing
	// searches nicknames only.
	ListUsers(ctx context.Context, params ListParams, admin bool) (*domain.Page[*UserListing], error)

	// UpdateUser applies a partial update. Email and nickname uniqueness is only
	// re-checked when they change.
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (*domain.User, error)

	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, id int64) error

	// RestoreUser undoes a soft delete unless the email or nickname has been
	// taken by another user since.
	RestoreUser(ctx context.Context, id int64) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users       store.UserStore
	completions store.CompletionStore
	hasher      auth.PasswordHasher
	verifier    auth.PasswordVerifier
	logger      *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	completions store.CompletionStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserServiceImpl {
	if users == nil || completions == nil || hasher == nil || verifier == nil {
		panic("user service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:       users,
		completions: completions,
		hasher:      hasher,
		verifier:    verifier,
		logger:      logger.With("component", "user_service"),
	}
}

// Register implements UserService.Register
func (s *UserServiceImpl) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := s.checkEmailFree(ctx, input.Email, 0); err != nil {
		return nil, err
	}
	if input.NickName != nil {
		if err := s.checkNicknameFree(ctx, *input.NickName, 0); err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, NewServiceError("user", "register", err)
	}

	user, err := domain.NewUser(input.Email, hash, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	user.Name = input.Name
	user.Surname = input.Surname
	user.NickName = input.NickName
	user.Age = input.Age

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("registration lost a uniqueness race", "error", err)
			return nil, err
		}
		s.logger.Error("failed to save user", "error", err)
		return nil, NewServiceError("user", "register", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, NewServiceError("user", "authenticate", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// ListUsers implements UserService.ListUsers
func (s *UserServiceImpl) ListUsers(
	ctx context.Context,
	params ListParams,
	admin bool,
) (*domain.Page[*UserListing], error) {
	filter := store.UserFilter{Search: params.Search, NickNameOnly: !admin}
	page, err := paginate(ctx, params,
		func(ctx context.Context) (int, error) {
			return s.users.Count(ctx, filter)
		},
		func(ctx context.Context, opts store.ListOptions) ([]*domain.User, error) {
			f := filter
			f.ListOptions = opts
			return s.users.List(ctx, f)
		})
	if err != nil {
		return nil, NewServiceError("user", "list", err)
	}

	listings := make([]*UserListing, 0, len(page.Items))
	for _, u := range page.Items {
		listings = append(listings, &UserListing{User: u})
	}

	if admin && len(listings) > 0 {
		ids := make([]int64, 0, len(listings))
		for _, l := range listings {
			ids = append(ids, l.User.ID)
		}
		byUser, err := s.completions.ListByUsers(ctx, ids)
		if err != nil {
			return nil, NewServiceError("user", "list", err)
		}
		for _, l := range listings {
			l.Completions = byUser[l.User.ID]
			if l.Completions == nil {
				l.Completions = []*domain.CompletedExercise{}
			}
		}
	}

	return &domain.Page[*UserListing]{
		Items:       listings,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		HasNextPage: page.HasNextPage,
	}, nil
}

// UpdateUser implements UserService.UpdateUser
// It follows the pattern of loading the complete user, applying only the
// provided fields and handing the complete user back to the store.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user for update: %w", err)
	}

	if update.Email != nil && !strings.EqualFold(strings.TrimSpace(*update.Email), user.Email) {
		if err := s.checkEmailFree(ctx, *update.Email, id); err != nil {
			return nil, err
		}
	}
	if update.NickName != nil && (user.NickName == nil || *update.NickName != *user.NickName) {
		if err := s.checkNicknameFree(ctx, *update.NickName, id); err != nil {
			return nil, err
		}
	}

	patch := domain.UserPatch{
		Name:     update.Name,
		Surname:  update.Surname,
		NickName: update.NickName,
		Email:    update.Email,
		Age:      update.Age,
		Role:     update.Role,
	}
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, NewServiceError("user", "update", err)
		}
		patch.HashedPassword = &hash
	}
	patch.Apply(user)

	if err := s.users.Update(ctx, user); err != nil {
		if store.IsDuplicateError(err) || store.IsNotFoundError(err) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, NewServiceError("user", "update", err)
	}

	s.logger.Info("user updated", "user_id", id, "password_changed", update.Password != nil)
	return user, nil
}

// DeleteUser implements UserService.DeleteUser
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to delete non-existent user", "user_id", id)
			return err
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return NewServiceError("user", "delete", err)
	}
	s.logger.Info("user soft-deleted", "user_id", id)
	return nil
}

// RestoreUser implements UserService.RestoreUser
func (s *UserServiceImpl) RestoreUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByIDIncludingDeleted(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user for restore: %w", err)
	}
	if !user.IsDeleted() {
		return user, nil
	}

	if err := s.checkEmailFree(ctx, user.Email, id); err != nil {
		return nil, err
	}
	if user.NickName != nil {
		if err := s.checkNicknameFree(ctx, *user.NickName, id); err != nil {
			return nil, err
		}
	}

	if err := s.users.Restore(ctx, id); err != nil {
		if store.IsDuplicateError(err) || store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewServiceError("user", "restore", err)
	}

	s.logger.Info("user restored", "user_id", id)
	return s.GetUser(ctx, id)
}

func (s *UserServiceImpl) checkEmailFree(ctx context.Context, email string, excludeID int64) error {
	taken, err := s.users.EmailTaken(ctx, strings.TrimSpace(email), excludeID)
	if err != nil {
		return NewServiceError("user", "check email", err)
	}
	if taken {
		return store.ErrEmailExists
	}
	return nil
}

func (s *UserServiceImpl) checkNicknameFree(ctx context.Context, nickName string, excludeID int64) error {
	taken, err := s.users.NicknameTaken(ctx, nickName, excludeID)
	if err != nil {
		return NewServiceError("user", "check nickname", err)
	}
	if taken {
		return store.ErrNicknameExists
	}
	return nil
}
