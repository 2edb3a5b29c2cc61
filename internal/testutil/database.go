// Package testutil provides testing utilities for database integration tests.
//
// Each test gets its own database file under t.TempDir(), so tests never
// share state and cleanup is automatic. The full stack around the embedded
// store (pool, transaction manager) can be constructed with SetupStore.
//
// Database Setup:
//
//	db := testutil.SetupDB(t)
//
//	// Or the full stack:
//	store := testutil.SetupStore(t)
//	err := store.TxManager.WithTx(ctx, fn)
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/keyfort/keyfort/internal/database"
)

// Store bundles the database handle with its admission pool and transaction
// manager, mirroring how the application wires them.
type Store struct {
	DB        *sql.DB
	Pool      *database.Pool
	TxManager database.TxManager
}

// SetupDB opens a fresh database in a temporary directory with the schema
// applied. The handle is closed automatically when the test finishes.
func SetupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), database.Config{
		Path:           filepath.Join(t.TempDir(), "keyfort.db"),
		PoolSize:       4,
		AcquireTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// SetupStore opens a fresh database and wires the pool and transaction
// manager around it.
func SetupStore(t *testing.T) *Store {
	t.Helper()

	db := SetupDB(t)
	pool := database.NewPool(4, 2*time.Second)
	txManager := database.NewTxManager(db, pool, 3, 10*time.Millisecond)

	return &Store{DB: db, Pool: pool, TxManager: txManager}
}
