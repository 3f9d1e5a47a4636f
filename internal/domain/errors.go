package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every error returned by stores and services wraps exactly
// one of these so the HTTP boundary can map it with errors.Is.
var (
	// ErrValidation is returned when input or an entity fails validation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness rule would be violated.
	ErrConflict = errors.New("conflict")

	// ErrDependency is returned when an entity cannot be removed because
	// other records still reference it.
	ErrDependency = errors.New("dependency exists")

	// ErrUnauthenticated is returned when the caller could not be identified.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")
)

// Field-level validation errors.
var (
	ErrInvalidID           = fmt.Errorf("%w: invalid ID", ErrValidation)
	ErrEmptyName           = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
	ErrInvalidRole         = fmt.Errorf("%w: invalid role", ErrValidation)
	ErrInvalidDifficulty   = fmt.Errorf("%w: invalid difficulty", ErrValidation)
	ErrInvalidDuration     = fmt.Errorf("%w: duration must be at least 1 second", ErrValidation)
	ErrInvalidAge          = fmt.Errorf("%w: age must be between 1 and 120", ErrValidation)
	ErrInvalidPage         = fmt.Errorf("%w: invalid pagination parameters", ErrValidation)
)

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// Unwrap lets errors.Is reach the wrapped cause, which itself wraps ErrValidation.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
