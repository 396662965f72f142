package repo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" driver for database/sql

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// OpenSQLite opens the SQLite file at path, creating its directory if needed.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repo.OpenSQLite: create directory: %w", err)
		}
	}

	// WAL lets the websocket broadcaster read while a mutation writes.
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	return db, nil
}

// sqlitePreferenceRepo is the SQLite implementation of PreferenceRepo.
type sqlitePreferenceRepo struct {
	db *sql.DB
}

// NewSQLitePreferenceRepo constructs a PreferenceRepo backed by a SQLite database.
func NewSQLitePreferenceRepo(db *sql.DB) PreferenceRepo {
	return &sqlitePreferenceRepo{db: db}
}

// Load reads every stored key and decodes them.
func (r *sqlitePreferenceRepo) Load(ctx context.Context) (domain.Preferences, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
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
func (r *sqlitePreferenceRepo) Save(ctx context.Context, p domain.Preferences) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repo.PreferenceRepo.Save: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM preferences`); err != nil {
		return fmt.Errorf("repo.PreferenceRepo.Save: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`)
	if err != nil {
		return fmt.Errorf("repo.PreferenceRepo.Save: prepare: %w", err)
	}
	defer stmt.Close()

	kv := Encode(p)
	for _, k := range sortedKeys(kv) {
		if _, err := stmt.ExecContext(ctx, k, kv[k]); err != nil {
			return fmt.Errorf("repo.PreferenceRepo.Save: insert %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repo.PreferenceRepo.Save: commit: %w", err)
	}
	return nil
}
