package auth

import (
	"context"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the user.
	// Returns the token string and the moment it expires.
	GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken for an expired token and ErrInvalidToken for
	// any other failure (bad signature, malformed, unexpected algorithm, no user id).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims carried by an access token.
type Claims struct {
	// UserID is the id of the user the token was issued for.
	UserID int64 `json:"id"`

	// Email and Role are the values at issue time. The authorization layer
	// reloads the user, so a later role change takes effect immediately.
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
