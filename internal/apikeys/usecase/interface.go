package usecase

import (
	"context"
	"time"

	apikeysDomain "github.com/keyfort/keyfort/internal/apikeys/domain"
)

// APIKeyRepository defines the interface for API key persistence.
type APIKeyRepository interface {
	// Create inserts a new key record; duplicate labels map to conflict.
	Create(ctx context.Context, apiKey *apikeysDomain.APIKey) error
	// GetByLabel retrieves a key record by its label.
	GetByLabel(ctx context.Context, label string) (*apikeysDomain.APIKey, error)
	// ListActive retrieves all active key records.
	ListActive(ctx context.Context) ([]*apikeysDomain.APIKey, error)
	// Revoke deactivates the active key with the given label.
	Revoke(ctx context.Context, label string) error
	// TouchLastUsed records the time of a successful validation.
	TouchLastUsed(ctx context.Context, id string, when time.Time) error
	// Count returns the total number of key records, active or not.
	Count(ctx context.Context) (int, error)
}

// APIKeyUseCase defines the business operations for API key management.
type APIKeyUseCase interface {
	// Generate creates a new API key. The plaintext credential is returned
	// exactly once and never stored. ttl == 0 means the key never expires.
	Generate(ctx context.Context, label string, ttl time.Duration) (*apikeysDomain.APIKey, string, error)
	// Validate checks a presented credential against the active keys and
	// returns the matching record. Unknown, revoked and expired credentials
	// all fail with the same unauthorized error.
	Validate(ctx context.Context, presented string) (*apikeysDomain.APIKey, error)
	// Revoke permanently deactivates the key with the given label.
	Revoke(ctx context.Context, label string) error
	// List retrieves all active keys. Hashes are included in the records;
	// plaintext credentials are never recoverable.
	List(ctx context.Context) ([]*apikeysDomain.APIKey, error)
	// Bootstrap generates the initial key on an empty store. Returns the
	// plaintext credential and true when a key was created, or false when
	// the store already holds keys.
	Bootstrap(ctx context.Context) (string, bool, error)
}
