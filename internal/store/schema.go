package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Timestamps are stored as Unix milliseconds (UTC).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		contact    TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		age        INTEGER NOT NULL DEFAULT 0,
		email      TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL DEFAULT 'USER',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wheel_entries (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		created_at    INTEGER NOT NULL,
		scores        TEXT NOT NULL,
		contact_email TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wheel_entries_user ON wheel_entries (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS entry_narratives (
		entry_id   TEXT PRIMARY KEY,
		body       TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		slot       TEXT PRIMARY KEY,
		body       TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at    INTEGER NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		channel    TEXT NOT NULL,
		user_id    TEXT NOT NULL DEFAULT '',
		entry_id   TEXT NOT NULL DEFAULT '',
		recipient  TEXT NOT NULL DEFAULT '',
		recipients INTEGER NOT NULL DEFAULT 0,
		message    TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
