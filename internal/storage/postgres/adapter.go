package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/kurihiro0119/course-site/internal/storage"
)

// postgresStorage implements the Storage interface for PostgreSQL
type postgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a new PostgreSQL storage instance
func NewPostgresStorage(connStr string) (storage.Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &postgresStorage{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate creates the cache table. Values are kept as TEXT so a load
// returns exactly the bytes that were saved.
func (s *postgresStorage) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS cache_entries (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (namespace, key)
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Load returns all entries stored under namespace
func (s *postgresStorage) Load(ctx context.Context, namespace string) (storage.Entries, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value FROM cache_entries WHERE namespace = $1
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
func (s *postgresStorage) Save(ctx context.Context, namespace string, entries storage.Entries) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cache_entries WHERE namespace = $1`, namespace); err != nil {
		return fmt.Errorf("failed to clear cache %s: %w", namespace, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cache_entries (namespace, key, value) VALUES ($1, $2, $3)
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
func (s *postgresStorage) Close() error {
	return s.db.Close()
}
