// Package database provides access to the embedded libSQL store: connection
// setup, schema bootstrap, the bounded connection pool, and transaction
// management.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

// Config holds database configuration settings.
type Config struct {
	// Path is the filesystem location of the database file.
	Path string
	// PoolSize is the maximum number of concurrent connection slots.
	PoolSize int
	// AcquireTimeout bounds how long Acquire waits for a free slot.
	AcquireTimeout time.Duration
	// BusyRetries is the number of retries on transient lock contention.
	BusyRetries int
	// BusyBackoff is the initial backoff between busy retries.
	BusyBackoff time.Duration
}

// Connect opens the embedded database, applies the connection PRAGMAs and
// bootstraps the schema. WAL journaling gives concurrent readers a consistent
// snapshot while a single writer appends changes.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("libsql", "file:"+cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.PoolSize)

	// Connection-level PRAGMAs. Some PRAGMAs return rows so we use QueryRow.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		var result string
		_ = db.QueryRowContext(ctx, p).Scan(&result)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
