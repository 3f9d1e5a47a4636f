package service

import (
	"fmt"

	"github.com/fittrack/fittrack-api/internal/domain"
)

// Service sentinel errors. Each wraps a domain taxonomy error so the API layer
// can map it with errors.Is; callers that need the exact condition compare
// against the sentinel itself.
var (
	// ErrInvalidCredentials is returned by login for an unknown email or a wrong
	// password alike.
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", domain.ErrUnauthenticated)

	// ErrExerciseHasCompletions blocks deleting an exercise that completion
	// records still reference.
	ErrExerciseHasCompletions = fmt.Errorf("exercise has completion records: %w", domain.ErrDependency)

	// ErrAssociationHasCompletions blocks removing an exercise from a program
	// while completion history exists for the exercise.
	ErrAssociationHasCompletions = fmt.Errorf("exercise has completion history: %w", domain.ErrDependency)

	// ErrProgramHasExercises blocks deleting a program with active exercise links.
	ErrProgramHasExercises = fmt.Errorf("program still has exercises: %w", domain.ErrDependency)
)

// ServiceError wraps an unexpected failure with the service and operation
// that hit it. The wrapped error stays reachable through errors.Is/As.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Operation)
}

// Unwrap returns the wrapped error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError.
func NewServiceError(service, operation string, err error) *ServiceError {
	return &ServiceError{Service: service, Operation: operation, Err: err}
}
