package usecase

import (
	"context"

	cryptoDomain "github.com/keyfort/keyfort/internal/crypto/domain"
)

// MasterKeyRepository defines the interface for master key persistence.
type MasterKeyRepository interface {
	// Get retrieves the master key record, or apperrors.ErrNotFound when the
	// store has never been initialized.
	Get(ctx context.Context) (*cryptoDomain.MasterKey, error)
	// Create inserts the master key record if none exists yet. It is a no-op
	// when a record is already present.
	Create(ctx context.Context, masterKey *cryptoDomain.MasterKey) error
}

// MasterKeyUseCase manages the lifecycle of the root encryption key.
type MasterKeyUseCase interface {
	// Initialize loads the master key, generating and persisting one on first
	// run. Safe to call concurrently and idempotent; every caller observes the
	// same key.
	Initialize(ctx context.Context) (*cryptoDomain.MasterKey, error)
	// ActiveKey returns the loaded master key, or
	// cryptoDomain.ErrMasterKeyNotInitialized before Initialize has completed.
	ActiveKey() (*cryptoDomain.MasterKey, error)
}
