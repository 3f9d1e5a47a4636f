package store

import (
	"context"

	"github.com/fittrack/fittrack-api/internal/domain"
)

// ProgramStore defines the interface for program persistence.
type ProgramStore interface {
	Create(ctx context.Context, program *domain.Program) error
	// GetByID returns ErrProgramNotFound when no program has the id.
	GetByID(ctx context.Context, id int64) (*domain.Program, error)
	Update(ctx context.Context, program *domain.Program) error
	// Delete removes the program and any soft-deleted links to it.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ProgramFilter) ([]*domain.Program, error)
	Count(ctx context.Context, filter ProgramFilter) (int, error)
}
