package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database and applies pending migrations
func New(dbPath string) (*DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate brings the schema up to SchemaVersion inside a single transaction
func migrate(conn *sql.DB) error {
	if _, err := conn.Exec(createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations schema: %w", err)
	}

	var current int
	if err := conn.QueryRow(selectSchemaVersion).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for v := current; v < SchemaVersion && v < len(migrations); v++ {
		if _, err := tx.Exec(migrations[v]); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(insertSchemaVersion, v+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", v+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SchemaVersion returns the version recorded in schema_migrations
func (db *DB) SchemaVersion() (int, error) {
	var v int
	if err := db.conn.QueryRow(selectSchemaVersion).Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// GetValue returns the value stored under key.
// The bool is false when the key has never been written.
func (db *DB) GetValue(key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRow(selectValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// SetValue writes value under key, replacing any previous value
func (db *DB) SetValue(key, value string) error {
	if _, err := db.conn.Exec(upsertValue, key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// DeleteValue removes key; deleting a missing key is not an error
func (db *DB) DeleteValue(key string) error {
	if _, err := db.conn.Exec(deleteValue, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// ValueUpdatedAt returns when key was last written (zero time if never)
func (db *DB) ValueUpdatedAt(key string) (time.Time, error) {
	var ts string
	err := db.conn.QueryRow(selectUpdatedAt, key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read timestamp for %s: %w", key, err)
	}
	return parseTimestamp(ts)
}

// parseTimestamp parses SQLite timestamp formats
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}
