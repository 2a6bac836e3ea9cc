// ABOUTME: Database connection management and initialization
// ABOUTME: Handles opening SQLite database with WAL mode at a local path
package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

func OpenDatabase(path string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	// Open database with WAL mode
	database, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// Single connection: the store has one logical writer and SQLite
	// serializes everything behind it (avoids database locked errors)
	database.SetMaxOpenConns(1)

	// Initialize schema
	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}
