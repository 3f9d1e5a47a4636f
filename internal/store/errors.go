package store

import (
	"errors"
	"fmt"

	"github.com/fittrack/fittrack-api/internal/domain"
)

// Common store errors used across all store implementations. Each wraps the
// matching domain taxonomy error.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = fmt.Errorf("entity %w", domain.ErrNotFound)

	// ErrDuplicate is returned when an operation would violate a uniqueness rule.
	ErrDuplicate = fmt.Errorf("entity already exists: %w", domain.ErrConflict)

	// ErrInvalidEntity is returned when an entity fails validation before being
	// stored, or when the database rejects its values.
	ErrInvalidEntity = fmt.Errorf("invalid entity: %w", domain.ErrValidation)

	// ErrReferenced is returned when a delete is blocked by rows that still
	// reference the entity.
	ErrReferenced = fmt.Errorf("entity is referenced: %w", domain.ErrDependency)

	// ErrTransactionFailed is returned when a transaction cannot begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	ErrUserNotFound        = fmt.Errorf("%w: user", ErrNotFound)
	ErrProgramNotFound     = fmt.Errorf("%w: program", ErrNotFound)
	ErrExerciseNotFound    = fmt.Errorf("%w: exercise", ErrNotFound)
	ErrAssociationNotFound = fmt.Errorf("%w: program exercise", ErrNotFound)
	ErrCompletionNotFound  = fmt.Errorf("%w: completed exercise", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that an active user already uses the email.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrNicknameExists indicates that an active user already uses the nickname.
	ErrNicknameExists = fmt.Errorf("%w: nickname", ErrDuplicate)

	// ErrExerciseNameExists indicates that an exercise with the name exists.
	ErrExerciseNameExists = fmt.Errorf("%w: exercise name", ErrDuplicate)

	// ErrAssociationExists indicates that the exercise is already actively
	// linked to the program.
	ErrAssociationExists = fmt.Errorf("%w: program exercise", ErrDuplicate)

	// ErrExerciseReferenced indicates completion records still point at the exercise.
	ErrExerciseReferenced = fmt.Errorf("%w: exercise has completion records", ErrReferenced)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "exercise")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
