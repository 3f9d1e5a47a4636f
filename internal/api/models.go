package api

import (
	"time"

	"github.com/fittrack/fittrack-api/internal/api/shared"
	"github.com/fittrack/fittrack-api/internal/domain"
)

// Auth

// RegisterRequest defines the payload for the user registration endpoint.
// A role in the body is ignored; registration always creates a user.
type RegisterRequest struct {
	Name     *string         `json:"name"     validate:"omitnil,min=1,max=100"`
	Surname  *string         `json:"surname"  validate:"omitnil,min=1,max=100"`
	NickName *string         `json:"nickName" validate:"omitnil,min=1,max=50"`
	Email    string          `json:"email"    validate:"required,email,max=255"`
	Age      *shared.FlexInt `json:"age"      validate:"omitnil,gte=1,lte=120"`
	Password string          `json:"password" validate:"required,password,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt string `json:"expiresAt"`
}

func newAuthResponse(user *domain.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}
}

// Programs

// CreateProgramRequest is the body of POST /programs.
type CreateProgramRequest struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

// UpdateProgramRequest is the body of PATCH /programs/{id}.
type UpdateProgramRequest struct {
	Name        *string `json:"name"        validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

// Exercises

// CreateExerciseRequest is the body of POST /exercises.
type CreateExerciseRequest struct {
	Name       string `json:"name"       validate:"required,max=200"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	ProgramID  *int64 `json:"programID"  validate:"omitnil,gt=0"`
}

// UpdateExerciseRequest is the body of PATCH /exercises/{id}.
type UpdateExerciseRequest struct {
	Name       *string `json:"name"       validate:"omitnil,min=1,max=200"`
	Difficulty *string `json:"difficulty" validate:"omitnil,oneof=easy medium hard"`
}

// AssociationRequest is the body of the assign and remove endpoints.
type AssociationRequest struct {
	ExerciseID int64 `json:"exerciseID" validate:"required,gt=0"`
	ProgramID  int64 `json:"programID"  validate:"required,gt=0"`
}

// Users

// UpdateUserRequest is the body of PATCH /users/{id}.
type UpdateUserRequest struct {
	Name     *string         `json:"name"     validate:"omitnil,min=1,max=100"`
	Surname  *string         `json:"surname"  validate:"omitnil,min=1,max=100"`
	NickName *string         `json:"nickName" validate:"omitnil,min=1,max=50"`
	Email    *string         `json:"email"    validate:"omitnil,email,max=255"`
	Age      *shared.FlexInt `json:"age"      validate:"omitnil,gte=1,lte=120"`
	Role     *string         `json:"role"     validate:"omitnil,oneof=admin user"`
	Password *string         `json:"password" validate:"omitnil,password,max=72"`
}

// AdminUserView is a user as an admin sees it in listings.
type AdminUserView struct {
	*domain.User
	CompletedExercises []*domain.CompletedExercise `json:"completedExercises"`
}

// PublicUserView is a user as any other authenticated user sees it.
type PublicUserView struct {
	ID       int64   `json:"id"`
	NickName *string `json:"nickName"`
}

// Completions

// CompleteExerciseRequest is the body of POST /user/complete-exercise.
type CompleteExerciseRequest struct {
	ExerciseID  int64      `json:"exerciseID"  validate:"required,gt=0"`
	Duration    int        `json:"duration"    validate:"required,gte=1"`
	CompletedAt *time.Time `json:"completedAt"`
}
