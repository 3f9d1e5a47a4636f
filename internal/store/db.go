package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// DBTX is implemented by both *sqlx.DB and *sqlx.Tx, allowing store code
// to work with either a connection pool or a transaction.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// TxRunner runs fn inside a transaction. Stores obtained with WithTx(tx) take
// part in it.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLTxRunner is the TxRunner backed by a database pool.
type SQLTxRunner struct {
	db *sqlx.DB
}

// NewSQLTxRunner creates a TxRunner on db.
func NewSQLTxRunner(db *sqlx.DB) *SQLTxRunner {
	return &SQLTxRunner{db: db}
}

// RunInTx implements TxRunner.
func (r *SQLTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return fn(ctx, tx)
	})
}
