// Package testutil provides shared helpers for store tests.
// Postgres helpers skip when TEST_DATABASE_URL is unset; SQLite helpers
// always run against a temp file.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/discgolf-planner/internal/repo"
)

// PostgresEnv names the variable holding the integration database DSN.
const PostgresEnv = "TEST_DATABASE_URL"

// NewPool returns a pgx pool for the integration database, closed on cleanup.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), postgresDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(context.Background()); err != nil {
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	return pool
}

// NewSQLDB returns a database/sql handle on the integration database, for
// driving goose directly.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openPostgres(postgresDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// MigratePostgres brings the database at dsn up to the latest schema.
// Intended for TestMain, where no *testing.T exists.
func MigratePostgres(ctx context.Context, dsn string) error {
	db, err := openPostgres(dsn)
	if err != nil {
		return fmt.Errorf("testutil.MigratePostgres: %w", err)
	}
	defer db.Close()

	if err := repo.Migrate(ctx, db, goose.DialectPostgres, DiscardLogger()); err != nil {
		return fmt.Errorf("testutil.MigratePostgres: %w", err)
	}
	return nil
}

// NewSQLiteDB opens a migrated SQLite database in a per-test temp directory.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("testutil.NewSQLiteDB: open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repo.Migrate(context.Background(), db, goose.DialectSQLite3, DiscardLogger()); err != nil {
		t.Fatalf("testutil.NewSQLiteDB: migrate: %v", err)
	}
	return db
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func postgresDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(PostgresEnv)
	if dsn == "" {
		t.Skip(PostgresEnv + " not set; skipping Postgres test")
	}
	return dsn
}
