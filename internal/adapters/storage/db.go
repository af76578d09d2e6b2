package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Timestamps are stored as 'YYYY-MM-DD HH:MM:SS' text so that
	// lexicographic ordering matches chronological ordering.
	schema := `
	CREATE TABLE IF NOT EXISTS user (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		birthday TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fitness_class (
		id TEXT PRIMARY KEY,
		trainer_id TEXT NOT NULL,
		trainer_name TEXT NOT NULL,
		title TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		capacity INTEGER NOT NULL,
		location TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (trainer_id) REFERENCES user(id)
	);

	CREATE INDEX IF NOT EXISTS idx_fitness_class_trainer
		ON fitness_class(trainer_id, start_date, end_date);

	CREATE INDEX IF NOT EXISTS idx_fitness_class_start
		ON fitness_class(start_date);

	CREATE TABLE IF NOT EXISTS booking (
		id TEXT PRIMARY KEY,
		class_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		user_email TEXT NOT NULL,
		user_name TEXT NOT NULL,
		booking_time TEXT NOT NULL,
		is_trainer INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (class_id) REFERENCES fitness_class(id),
		FOREIGN KEY (user_id) REFERENCES user(id),
		UNIQUE (class_id, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_booking_class
		ON booking(class_id, booking_time);

	CREATE INDEX IF NOT EXISTS idx_booking_user
		ON booking(user_id, booking_time);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
