// Package repository implements API key persistence in the embedded database.
//
// Key hashes are salted, so a presented credential cannot be looked up by
// value; validation loads the active records and verifies against each. The
// active flag is indexed to keep that scan bounded to live keys. All methods
// support transaction context via database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	apikeysDomain "github.com/keyfort/keyfort/internal/apikeys/domain"
	"github.com/keyfort/keyfort/internal/database"
	apperrors "github.com/keyfort/keyfort/internal/errors"
)

// SQLiteAPIKeyRepository implements API key persistence for the embedded store.
type SQLiteAPIKeyRepository struct {
	db *sql.DB
}

// NewSQLiteAPIKeyRepository creates a new SQLiteAPIKeyRepository.
func NewSQLiteAPIKeyRepository(db *sql.DB) *SQLiteAPIKeyRepository {
	return &SQLiteAPIKeyRepository{db: db}
}

// Create inserts a new API key record.
//
// Returns apikeysDomain.ErrDuplicateLabel when the label is already taken.
func (s *SQLiteAPIKeyRepository) Create(ctx context.Context, apiKey *apikeysDomain.APIKey) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO api_keys (id, key_hash, label, is_active, created_at, expires_at, last_used_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		apiKey.ID,
		apiKey.KeyHash,
		apiKey.Label,
		apiKey.Active,
		apiKey.CreatedAt,
		apiKey.ExpiresAt,
		apiKey.LastUsedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apikeysDomain.ErrDuplicateLabel
		}
		return apperrors.Wrap(err, "failed to create api key")
	}
	return nil
}

// GetByLabel retrieves an API key record by its label.
func (s *SQLiteAPIKeyRepository) GetByLabel(
	ctx context.Context,
	label string,
) (*apikeysDomain.APIKey, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, key_hash, label, is_active, created_at, expires_at, last_used_at
			  FROM api_keys
			  WHERE label = ?`

	apiKey, err := scanAPIKey(querier.QueryRowContext(ctx, query, label))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apikeysDomain.ErrAPIKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api key by label")
	}
	return apiKey, nil
}

// ListActive retrieves all active key records, oldest first.
func (s *SQLiteAPIKeyRepository) ListActive(ctx context.Context) ([]*apikeysDomain.APIKey, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, key_hash, label, is_active, created_at, expires_at, last_used_at
			  FROM api_keys
			  WHERE is_active
			  ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list active api keys")
	}
	defer func() { _ = rows.Close() }()

	apiKeys := make([]*apikeysDomain.APIKey, 0)
	for rows.Next() {
		apiKey, err := scanAPIKey(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api key")
		}
		apiKeys = append(apiKeys, apiKey)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate api keys")
	}

	return apiKeys, nil
}

// Revoke deactivates an API key by label.
//
// Returns apikeysDomain.ErrAPIKeyNotFound when no active key carries the label.
func (s *SQLiteAPIKeyRepository) Revoke(ctx context.Context, label string) error {
	querier := database.GetTx(ctx, s.db)

	query := `UPDATE api_keys SET is_active = FALSE WHERE label = ? AND is_active`

	result, err := querier.ExecContext(ctx, query, label)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke api key")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check revoked rows")
	}
	if affected == 0 {
		return apikeysDomain.ErrAPIKeyNotFound
	}
	return nil
}

// TouchLastUsed records the time of a successful validation.
func (s *SQLiteAPIKeyRepository) TouchLastUsed(ctx context.Context, id string, when time.Time) error {
	querier := database.GetTx(ctx, s.db)

	_, err := querier.ExecContext(ctx,
		`UPDATE api_keys SET last_used_at = ? WHERE id = ?`, when, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update api key last_used_at")
	}
	return nil
}

// Count returns the total number of key records, active or not.
func (s *SQLiteAPIKeyRepository) Count(ctx context.Context) (int, error) {
	querier := database.GetTx(ctx, s.db)

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM api_keys`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count api keys")
	}
	return count, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAPIKey(row rowScanner) (*apikeysDomain.APIKey, error) {
	var apiKey apikeysDomain.APIKey
	err := row.Scan(
		&apiKey.ID,
		&apiKey.KeyHash,
		&apiKey.Label,
		&apiKey.Active,
		&apiKey.CreatedAt,
		&apiKey.ExpiresAt,
		&apiKey.LastUsedAt,
	)
	if err != nil {
		return nil, err
	}
	return &apiKey, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
