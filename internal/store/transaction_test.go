package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestRunInTransaction_Success(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO exercises").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO exercises (name) VALUES ($1)", "Squats")
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_FunctionError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	expectedErr := errors.New("function failed")
	err := RunInTransaction(context.Background(), db, func(context.Context, *sqlx.Tx) error {
		return expectedErr
	})

	assert.Equal(t, expectedErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := RunInTransaction(context.Background(), db, func(context.Context, *sqlx.Tx) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_CommitError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	err := RunInTransaction(context.Background(), db, func(context.Context, *sqlx.Tx) error { return nil })

	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_RollbackError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("rollback failed"))

	fnErr := errors.New("function failed")
	err := RunInTransaction(context.Background(), db, func(context.Context, *sqlx.Tx) error { return fnErr })

	assert.ErrorIs(t, err, fnErr)
	assert.Contains(t, err.Error(), "rollback failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_Panic(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(context.Context, *sqlx.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTxRunner(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var got DBTX
	err := NewSQLTxRunner(db).RunInTx(context.Background(), func(_ context.Context, tx DBTX) error {
		got = tx
		return nil
	})

	require.NoError(t, err)
	assert.IsType(t, &sqlx.Tx{}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
