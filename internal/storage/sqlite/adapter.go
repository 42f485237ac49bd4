package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kurihiro0119/course-site/internal/storage"
)

// sqliteStorage implements the Storage interface for SQLite
type sqliteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	s := &sqliteStorage{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate creates the cache table
func (s *sqliteStorage) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS cache_entries (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (namespace, key)
	);

	CREATE INDEX IF NOT EXISTS idx_cache_entries_namespace ON cache_entries(namespace);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Load returns all entries stored under namespace
func (s *sqliteStorage) Load(ctx context.Context, namespace string) (storage.Entries, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value FROM cache_entries WHERE namespace = ?
	`, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache %s: %w", namespace, err)
	}
	defer rows.Close()

	entries := storage.Entries{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		entries[key] = json.RawMessage(value)
	}
	return entries, rows.Err()
}

// Save replaces the namespace in a single transaction
func (s *sqliteStorage) Save(ctx context.Context, namespace string, entries storage.Entries) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cache_entries WHERE namespace = ?`, namespace); err != nil {
		return fmt.Errorf("failed to clear cache %s: %w", namespace, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cache_entries (namespace, key, value) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range entries {
		if _, err := stmt.ExecContext(ctx, namespace, key, string(value)); err != nil {
			return fmt.Errorf("failed to save cache entry %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
