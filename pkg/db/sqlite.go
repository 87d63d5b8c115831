package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteSchema mirrors PostgresSchema for the embedded database.
const SQLiteSchema = `
	CREATE TABLE IF NOT EXISTS cities (
		position INTEGER NOT NULL PRIMARY KEY,
		name     TEXT    NOT NULL UNIQUE,
		lat      REAL    NOT NULL CHECK (lat BETWEEN -90 AND 90),
		lng      REAL    NOT NULL CHECK (lng BETWEEN -180 AND 180)
	)`

// OpenSQLite opens (or creates) a SQLite database at path and applies the
// catalog schema. Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("sqlite: create directory: %w", err)
		}
	}

	log.Printf("[catalog] Opening SQLite database at: %s", path)

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// A :memory: database lives per connection; pin the pool to one.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: set pragma %s: %w", pragma, err)
		}
	}

	if _, err := conn.ExecContext(ctx, SQLiteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: ensure schema: %w", err)
	}

	return conn, nil
}
