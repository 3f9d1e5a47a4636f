// Package testdb provides a migrated Postgres database for integration tests.
//
// Each test runs in its own transaction, which is rolled back when the test
// completes, so tests can share one database and run in parallel:
//
//	func TestUserStore(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sqlx.Tx) {
//	        users := postgres.NewPostgresUserStore(tx)
//	        ...
//	    })
//	}
//
// Tests are skipped when no database URL is configured.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-api/internal/platform/postgres"
)

// Environment variables consulted for the database URL, in order.
const (
	EnvTestDatabaseURL = "FITTRACK_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// Timeout bounds connection checks and migrations.
const Timeout = 30 * time.Second

var (
	migrateOnce sync.Once
	migrateErr  error
)

// URL returns the database URL for tests, or "" when none is configured.
func URL() string {
	for _, name := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// MaskURL hides the password of a database URL so it can be logged.
func MaskURL(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil || u.User == nil {
		return dbURL
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

// Open connects to the test database, migrating it up once per test binary,
// and closes the connection when t completes. It skips t when no database URL
// is configured.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	dbURL := URL()
	if dbURL == "" {
		t.Skipf("%s not set - skipping integration test", EnvTestDatabaseURL)
	}

	db, err := sqlx.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open %s", MaskURL(dbURL))
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "database %s is not reachable", MaskURL(dbURL))

	migrateOnce.Do(func() {
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		migrateErr = postgres.Migrate(ctx, db.DB, postgres.MigrateUp, log)
	})
	require.NoError(t, migrateErr, "failed to migrate test database")
	return db
}

// WithTx runs fn inside a transaction that is always rolled back. A statement
// that violates a constraint aborts the transaction, so such a statement must
// be the last one fn runs.
func WithTx(t *testing.T, db *sqlx.DB, fn func(t *testing.T, tx *sqlx.Tx)) {
	t.Helper()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
