// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides identity persistence with automatic schema creation

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			full_name     TEXT NOT NULL DEFAULT '',
			phone_number  TEXT NOT NULL DEFAULT '',
			email         TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL,
			is_active     INTEGER NOT NULL DEFAULT 1,
			is_verified   INTEGER NOT NULL DEFAULT 0,
			created_at    TEXT NOT NULL,

			CHECK (role IN ('reader', 'writer'))
		);

		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

		CREATE TABLE IF NOT EXISTS publishers (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL UNIQUE,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_active     INTEGER NOT NULL DEFAULT 1,
			is_verified   INTEGER NOT NULL DEFAULT 0,
			created_at    TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS admins (
			id                    TEXT PRIMARY KEY,
			username              TEXT NOT NULL UNIQUE,
			email                 TEXT NOT NULL UNIQUE,
			phone_number          TEXT NOT NULL DEFAULT '',
			password_hash         TEXT NOT NULL,
			role                  TEXT NOT NULL,
			is_super_admin        INTEGER NOT NULL DEFAULT 0,
			can_manage_users      INTEGER NOT NULL DEFAULT 0,
			can_manage_publishers INTEGER NOT NULL DEFAULT 0,
			can_manage_content    INTEGER NOT NULL DEFAULT 0,
			can_manage_system     INTEGER NOT NULL DEFAULT 0,
			is_active             INTEGER NOT NULL DEFAULT 1,
			created_at            TEXT NOT NULL,
			last_login            TEXT,

			CHECK (role IN ('super_admin', 'content_admin', 'user_admin', 'publisher_admin'))
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

// Close closes the underlying database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// isUniqueViolation checks if an error is a uniqueness constraint violation.
// SQLite returns "UNIQUE constraint failed" in the error message
func isUniqueViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") || strings.Contains(err.Error(), "unique constraint"))
}

var _ Store = (*SQLiteStore)(nil)
