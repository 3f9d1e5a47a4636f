package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fittrack/fittrack-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// Constraint names created by the migrations.
const (
	constraintUserEmail          = "users_email_active_idx"
	constraintUserNickName       = "users_nick_name_active_idx"
	constraintExerciseName       = "exercises_name_key"
	constraintProgramExercise    = "program_exercises_active_pair_idx"
	constraintCompletionExercise = "completed_exercises_exercise_id_fkey"
)

// constraintErrors maps named constraints to the store error a violation means.
var constraintErrors = map[string]error{
	constraintUserEmail:          store.ErrEmailExists,
	constraintUserNickName:       store.ErrNicknameExists,
	constraintExerciseName:       store.ErrExerciseNameExists,
	constraintProgramExercise:    store.ErrAssociationExists,
	constraintCompletionExercise: store.ErrExerciseReferenced,
}

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context for logging; callers must
// never expose the result's text to clients.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if specific, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return fmt.Errorf("%w: %v", specific, err)
		}
		switch {
		case IsUniqueViolation(err):
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case IsForeignKeyViolation(err):
			return fmt.Errorf("%w: foreign key violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
		}
		switch pgErr.Code {
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint violation (%s): %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case notNullViolationCode:
			return fmt.Errorf("%w: not null violation (%s): %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
		}
	}

	return err
}

// mapNotFound turns sql.ErrNoRows into notFound and everything else into MapError.
func mapNotFound(err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return MapError(err)
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// CheckRowsAffected returns notFound when result touched no rows.
// UPDATE and DELETE statements use it to detect a missing target.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}
	return nil
}
