// Package repository implements secret persistence in the embedded database.
//
// Secrets live in a single table keyed by service name. Metadata is stored as
// a JSON text column next to the ciphertext so listing operations can return
// descriptive data without touching encrypted payloads. All methods support
// transaction context via database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/keyfort/keyfort/internal/database"
	apperrors "github.com/keyfort/keyfort/internal/errors"
	secretsDomain "github.com/keyfort/keyfort/internal/secrets/domain"
)

// SQLiteSecretRepository implements secret persistence for the embedded store.
type SQLiteSecretRepository struct {
	db *sql.DB
}

// NewSQLiteSecretRepository creates a new SQLiteSecretRepository.
func NewSQLiteSecretRepository(db *sql.DB) *SQLiteSecretRepository {
	return &SQLiteSecretRepository{db: db}
}

// Get retrieves a secret by service name, including its ciphertext.
//
// Returns secretsDomain.ErrSecretNotFound if no record exists.
func (s *SQLiteSecretRepository) Get(
	ctx context.Context,
	serviceName string,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT service_name, ciphertext, metadata, version, created_at, updated_at
			  FROM secrets
			  WHERE service_name = ?`

	var secret secretsDomain.Secret
	var metadataJSON string
	err := querier.QueryRowContext(ctx, query, serviceName).Scan(
		&secret.ServiceName,
		&secret.Ciphertext,
		&metadataJSON,
		&secret.Version,
		&secret.CreatedAt,
		&secret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret")
	}

	if err := json.Unmarshal([]byte(metadataJSON), &secret.Metadata); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDecode, "malformed secret metadata")
	}

	return &secret, nil
}

// Upsert inserts the secret or replaces the existing record for its service
// name. The caller owns version assignment; the stored row always reflects
// the secret passed in.
func (s *SQLiteSecretRepository) Upsert(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, s.db)

	metadataJSON, err := json.Marshal(metadataOrEmpty(secret.Metadata))
	if err != nil {
		return apperrors.Wrap(err, "failed to encode secret metadata")
	}

	query := `INSERT INTO secrets (service_name, ciphertext, metadata, version, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON CONFLICT (service_name) DO UPDATE SET
				  ciphertext = excluded.ciphertext,
				  metadata   = excluded.metadata,
				  version    = excluded.version,
				  updated_at = excluded.updated_at`

	_, err = querier.ExecContext(
		ctx,
		query,
		secret.ServiceName,
		secret.Ciphertext,
		string(metadataJSON),
		secret.Version,
		secret.CreatedAt,
		secret.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert secret")
	}
	return nil
}

// Delete removes a secret by service name.
//
// Returns secretsDomain.ErrSecretNotFound when no row was deleted.
func (s *SQLiteSecretRepository) Delete(ctx context.Context, serviceName string) error {
	querier := database.GetTx(ctx, s.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM secrets WHERE service_name = ?`, serviceName)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted rows")
	}
	if affected == 0 {
		return secretsDomain.ErrSecretNotFound
	}
	return nil
}

// List retrieves secrets ordered by service name with pagination. Ciphertext
// is never selected; listings carry names, metadata, versions and timestamps
// only.
func (s *SQLiteSecretRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT service_name, metadata, version, created_at, updated_at
			  FROM secrets
			  ORDER BY service_name
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secrets")
	}
	defer func() { _ = rows.Close() }()

	secrets := make([]*secretsDomain.Secret, 0)
	for rows.Next() {
		var secret secretsDomain.Secret
		var metadataJSON string
		if err := rows.Scan(
			&secret.ServiceName,
			&metadataJSON,
			&secret.Version,
			&secret.CreatedAt,
			&secret.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan secret")
		}
		if err := json.Unmarshal([]byte(metadataJSON), &secret.Metadata); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrDecode, "malformed secret metadata")
		}
		secrets = append(secrets, &secret)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate secrets")
	}

	return secrets, nil
}

func metadataOrEmpty(metadata map[string]string) map[string]string {
	if metadata == nil {
		return map[string]string{}
	}
	return metadata
}
