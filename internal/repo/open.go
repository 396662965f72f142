package repo

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/pressly/goose/v3"
)

// Store is an opened preference backend together with its cleanup.
type Store struct {
	Preferences PreferenceRepo
	Backend     string
	close       func()
}

// Close releases the backend's connections.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open selects a backend from databaseURL, applies migrations and returns
// the store:
//
//	postgres://... or postgresql://...  Postgres via pgx
//	sqlite://path or file:path          SQLite file
//	memory://                           process memory, nothing persisted
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*Store, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return openPostgres(ctx, databaseURL, logger)
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return openSQLite(ctx, strings.TrimPrefix(databaseURL, "sqlite://"), logger)
	case strings.HasPrefix(databaseURL, "file:"):
		return openSQLite(ctx, strings.TrimPrefix(databaseURL, "file:"), logger)
	case strings.HasPrefix(databaseURL, "memory:"):
		return &Store{Preferences: NewMemoryPreferenceRepo(), Backend: "memory"}, nil
	}
	return nil, fmt.Errorf("repo.Open: unsupported database URL scheme in %q", redact(databaseURL))
}

func openPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	// goose drives database/sql, the repo uses the pgx pool.
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.Open: open migration connection: %w", err)
	}
	defer sqlDB.Close()

	if err := Migrate(ctx, sqlDB, goose.DialectPostgres, logger); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.Open: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.Open: ping: %w", err)
	}

	return &Store{
		Preferences: NewPostgresPreferenceRepo(pool),
		Backend:     "postgres",
		close:       pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("repo.Open: empty sqlite path")
	}

	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db, goose.DialectSQLite3, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		Preferences: NewSQLitePreferenceRepo(db),
		Backend:     "sqlite",
		close:       func() { db.Close() },
	}, nil
}

// redact drops everything after the scheme so credentials never reach logs.
func redact(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		return u[:i+3] + "..."
	}
	if i := strings.Index(u, ":"); i >= 0 {
		return u[:i+1] + "..."
	}
	return "..."
}
