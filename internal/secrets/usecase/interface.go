package usecase

import (
	"context"

	secretsDomain "github.com/keyfort/keyfort/internal/secrets/domain"
)

// SecretRepository defines the interface for secret persistence.
type SecretRepository interface {
	// Get retrieves a secret by service name, including its ciphertext.
	Get(ctx context.Context, serviceName string) (*secretsDomain.Secret, error)
	// Upsert inserts or replaces the record for the secret's service name.
	Upsert(ctx context.Context, secret *secretsDomain.Secret) error
	// Delete removes a secret; zero rows deleted maps to not found.
	Delete(ctx context.Context, serviceName string) error
	// List retrieves secrets without ciphertext, ordered by service name.
	List(ctx context.Context, offset, limit int) ([]*secretsDomain.Secret, error)
}

// SecretUseCase defines the business operations for secret storage.
type SecretUseCase interface {
	// Put stores or updates a secret. When expectedVersion is non-nil the
	// write succeeds only if it matches the stored version.
	Put(
		ctx context.Context,
		serviceName string,
		value []byte,
		metadata map[string]string,
		expectedVersion *uint,
	) (*secretsDomain.Secret, error)
	// Get retrieves and decrypts a secret by service name.
	Get(ctx context.Context, serviceName string) (*secretsDomain.Secret, error)
	// Delete removes a secret by service name.
	Delete(ctx context.Context, serviceName string) error
	// List retrieves secret metadata without values.
	List(ctx context.Context, offset, limit int) ([]*secretsDomain.Secret, error)
}
