package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// pgPreferenceRepo is the Postgres implementation of PreferenceRepo.
type pgPreferenceRepo struct {
	db db
}

// NewPostgresPreferenceRepo constructs a PreferenceRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresPreferenceRepo(db db) PreferenceRepo {
	return &pgPreferenceRepo{db: db}
}

// Load reads every stored key and decodes them.
func (r *pgPreferenceRepo) Load(ctx context.Context) (domain.Preferences, error) {
	const q = `SELECT key, value FROM preferences`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("repo.PreferenceRepo.Load: %w", err)
	}
	defer rows.Close()

	kv := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return domain.Preferences{}, fmt.Errorf("repo.PreferenceRepo.Load: scan: %w", err)
		}
		kv[k] = v
	}
	if err := rows.Err(); err != nil {
		return domain.Preferences{}, fmt.Errorf("repo.PreferenceRepo.Load: rows: %w", err)
	}
	return Decode(kv), nil
}

// Save replaces the whole snapshot inside one transaction.
func (r *pgPreferenceRepo) Save(ctx context.Context, p domain.Preferences) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.PreferenceRepo.Save: begin: %w", err)
	}
	// Rollback is a no-op once Commit has succeeded.
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM preferences`); err != nil {
		return fmt.Errorf("repo.PreferenceRepo.Save: clear: %w", err)
	}

	const q = `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (@key, @value, now())`

	kv := Encode(p)
	for _, k := range sortedKeys(kv) {
		if _, err := tx.Exec(ctx, q, pgx.NamedArgs{"key": k, "value": kv[k]}); err != nil {
			return fmt.Errorf("repo.PreferenceRepo.Save: insert %s: %w", k, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.PreferenceRepo.Save: commit: %w", err)
	}
	return nil
}
