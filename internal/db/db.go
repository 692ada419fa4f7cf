package db

import (
	"fmt"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

// Connect opens the SQLite database at the given path and returns the
// connection pool.
func Connect(dbPath string) (*sqlx.DB, error) {
	pool, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	return pool, nil
}

// Initialize enables foreign keys and creates the schema if it does not
// exist yet.
func Initialize(conn *sqlx.DB) error {
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	userSchema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		is_active BOOLEAN NOT NULL DEFAULT 1
	);`

	if _, err := conn.Exec(userSchema); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	todoSchema := `
	CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		priority INTEGER NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT 0,
		owner_id INTEGER NOT NULL REFERENCES users(id)
	);`

	if _, err := conn.Exec(todoSchema); err != nil {
		return fmt.Errorf("failed to create todos table: %w", err)
	}

	return nil
}
