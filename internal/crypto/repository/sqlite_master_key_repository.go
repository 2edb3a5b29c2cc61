// Package repository implements persistence for the master key record.
//
// The master key lives in a single-row table enforced by a CHECK constraint
// on its primary key. The repository supports transaction context via
// database.GetTx(), so first-run initialization can run atomically with
// other bootstrap writes.
package repository

import (
	"context"
	"database/sql"
	"errors"

	cryptoDomain "github.com/keyfort/keyfort/internal/crypto/domain"
	"github.com/keyfort/keyfort/internal/database"
	apperrors "github.com/keyfort/keyfort/internal/errors"
)

// SQLiteMasterKeyRepository stores the single master key record in the
// embedded database.
type SQLiteMasterKeyRepository struct {
	db *sql.DB
}

// NewSQLiteMasterKeyRepository creates a new SQLiteMasterKeyRepository.
func NewSQLiteMasterKeyRepository(db *sql.DB) *SQLiteMasterKeyRepository {
	return &SQLiteMasterKeyRepository{db: db}
}

// Get retrieves the master key record.
//
// Returns apperrors.ErrNotFound when no key has been created yet.
func (s *SQLiteMasterKeyRepository) Get(ctx context.Context) (*cryptoDomain.MasterKey, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT key, created_at FROM master_key WHERE id = 1`

	var masterKey cryptoDomain.MasterKey
	err := querier.QueryRowContext(ctx, query).Scan(
		&masterKey.Key,
		&masterKey.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "master key")
		}
		return nil, apperrors.Wrap(err, "failed to get master key")
	}

	return &masterKey, nil
}

// Create inserts the master key record if none exists yet.
//
// The insert is a no-op when a row is already present, so concurrent
// first-run initializers can all call Create and then re-read the winning
// record with Get.
func (s *SQLiteMasterKeyRepository) Create(ctx context.Context, masterKey *cryptoDomain.MasterKey) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO master_key (id, key, created_at)
			  VALUES (1, ?, ?)
			  ON CONFLICT (id) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, masterKey.Key, masterKey.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create master key")
	}
	return nil
}
