// Package db opens the SQLite database that holds saved itineraries.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Memory is the path for a private in-memory database.
const Memory = ":memory:"

// DefaultPath returns the default database path: ~/.trip-planner/trips.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".trip-planner", "trips.db"), nil
}

// pragmas run on every new database. busy_timeout lets `tp serve` and the
// CLI write to the same file.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

// Open opens (or creates) the database at path and brings its schema up to date.
// Parent directories are created as needed. Pass Memory for a throwaway database.
func Open(path string) (*sql.DB, error) {
	if path != Memory {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == Memory {
		// every pooled connection would otherwise see its own empty database
		conn.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			return nil, closeOnError(conn, fmt.Errorf("executing %s: %w", p, err))
		}
	}

	if err := migrate(conn); err != nil {
		return nil, closeOnError(conn, fmt.Errorf("running migrations: %w", err))
	}

	return conn, nil
}

// closeOnError closes conn and returns err, noting a failed close.
func closeOnError(conn *sql.DB, err error) error {
	if closeErr := conn.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}
