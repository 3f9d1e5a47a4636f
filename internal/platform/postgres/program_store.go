package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/store"
)

const programColumns = `id, name, description, created_at, updated_at`

// PostgresProgramStore implements store.ProgramStore.
type PostgresProgramStore struct {
	db store.DBTX
}

// NewPostgresProgramStore creates a PostgresProgramStore on db.
func NewPostgresProgramStore(db store.DBTX) *PostgresProgramStore {
	return &PostgresProgramStore{db: db}
}

var _ store.ProgramStore = (*PostgresProgramStore)(nil)

// Create implements store.ProgramStore.Create
func (s *PostgresProgramStore) Create(ctx context.Context, program *domain.Program) error {
	if err := program.Validate(); err != nil {
		return store.NewStoreError("program", "create", "invalid program", fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}
	query := `
		INSERT INTO programs (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := s.db.QueryRowxContext(ctx, query,
		program.Name, program.Description, program.CreatedAt, program.UpdatedAt,
	).Scan(&program.ID)
	return MapError(err)
}

// GetByID implements store.ProgramStore.GetByID
func (s *PostgresProgramStore) GetByID(ctx context.Context, id int64) (*domain.Program, error) {
	var program domain.Program
	query := `SELECT ` + programColumns + ` FROM programs WHERE id = $1`
	if err := s.db.GetContext(ctx, &program, query, id); err != nil {
		return nil, mapNotFound(err, store.ErrProgramNotFound)
	}
	return &program, nil
}

// Update implements store.ProgramStore.Update
func (s *PostgresProgramStore) Update(ctx context.Context, program *domain.Program) error {
	if err := program.Validate(); err != nil {
		return store.NewStoreError("program", "update", "invalid program", fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}
	program.UpdatedAt = time.Now().UTC()
	query := `UPDATE programs SET name = $1, description = $2, updated_at = $3 WHERE id = $4`
	result, err := s.db.ExecContext(ctx, query, program.Name, program.Description, program.UpdatedAt, program.ID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrProgramNotFound)
}

// Delete implements store.ProgramStore.Delete
func (s *PostgresProgramStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrProgramNotFound)
}

// List implements store.ProgramStore.List
func (s *PostgresProgramStore) List(ctx context.Context, filter store.ProgramFilter) ([]*domain.Program, error) {
	var args queryArgs
	where := programWhere(filter, &args)
	query := `SELECT ` + programColumns + ` FROM programs` + where + ` ORDER BY id` + pageClause(filter.ListOptions, &args)

	programs := []*domain.Program{}
	if err := s.db.SelectContext(ctx, &programs, query, args...); err != nil {
		return nil, MapError(err)
	}
	return programs, nil
}

// Count implements store.ProgramStore.Count
func (s *PostgresProgramStore) Count(ctx context.Context, filter store.ProgramFilter) (int, error) {
	var args queryArgs
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM programs`+programWhere(filter, &args), args...); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

func programWhere(filter store.ProgramFilter, args *queryArgs) string {
	var conditions []string
	if filter.Search != "" {
		conditions = append(conditions, "name ILIKE "+args.add(likePattern(filter.Search)))
	}
	return whereClause(conditions)
}
