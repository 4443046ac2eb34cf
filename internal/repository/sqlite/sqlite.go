// Package sqlite implements the repository interfaces on SQLite.
//
// modernc.org/sqlite is a pure-Go translation of the SQLite C code, so the
// binary builds without CGo and cross-compiles anywhere Go does. The blank
// import below registers it with database/sql as the "sqlite" driver.
//
// The store runs in WAL mode (reads proceed while a write is in flight —
// this is a web server, requests overlap) with foreign keys enabled so a
// habit can't reference a missing user nor an entry a missing habit.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/habitap/habitap/internal/apperror"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces. The server owns it and closes it on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests), configures it
// and runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection so a bad path fails here, not on the
	// first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every start.
//
// The UNIQUE indexes back up the service layer's duplicate checks: the
// services read-then-write and report duplicates before ever reaching the
// insert, but two identical concurrent requests can both pass that read.
// The index makes the store reject the loser, and isUniqueViolation
// translates that into the same conflict error the check would have raised.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id              TEXT PRIMARY KEY,
			email           TEXT NOT NULL,
			hashed_password TEXT NOT NULL,
			is_active       INTEGER NOT NULL DEFAULT 1
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS habits (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			goal        INTEGER NOT NULL DEFAULT 0,
			start_date  TEXT NOT NULL,
			is_counted  INTEGER NOT NULL DEFAULT 0,
			owner_id    TEXT NOT NULL REFERENCES users(id)
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_habits_owner_name ON habits(owner_id, name);
	`)
	if err != nil {
		return fmt.Errorf("creating habits table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			id       TEXT PRIMARY KEY,
			date     TEXT NOT NULL,
			value    INTEGER NOT NULL,
			habit_id TEXT NOT NULL REFERENCES habits(id),
			owner_id TEXT NOT NULL REFERENCES users(id)
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_owner_habit_date
			ON entries(owner_id, habit_id, date);
		CREATE INDEX IF NOT EXISTS idx_entries_habit ON entries(habit_id);
	`)
	if err != nil {
		return fmt.Errorf("creating entries table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE index violation.
// The driver exposes no typed error for this, so we match the stable
// "UNIQUE constraint failed" text SQLite has emitted forever.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// notFoundOr maps sql.ErrNoRows to the given AppError and wraps anything
// else with context.
func notFoundOr(err error, appErr *apperror.AppError, op string) error {
	if err == sql.ErrNoRows {
		return appErr
	}
	return fmt.Errorf("sqlite: %s: %w", op, err)
}
