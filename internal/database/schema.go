package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the full DDL for the store. Statements are idempotent so
// Migrate can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS master_key (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		key        BLOB NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS secrets (
		service_name TEXT PRIMARY KEY,
		ciphertext   BLOB NOT NULL,
		metadata     TEXT NOT NULL DEFAULT '{}',
		version      INTEGER NOT NULL DEFAULT 1,
		created_at   TIMESTAMP NOT NULL,
		updated_at   TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS api_keys (
		id           TEXT PRIMARY KEY,
		key_hash     TEXT NOT NULL,
		label        TEXT NOT NULL UNIQUE,
		is_active    BOOLEAN NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMP NOT NULL,
		expires_at   TIMESTAMP,
		last_used_at TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_api_keys_active ON api_keys (is_active)`,
}

// Migrate applies the schema to the database.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
