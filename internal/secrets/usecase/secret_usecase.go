// Package usecase implements business logic for secret storage. It coordinates
// the cipher engine, the repository and the admission pool: reads hold a
// reader slot, writes run inside a single-writer transaction.
package usecase

import (
	"context"
	"fmt"
	"time"

	cryptoService "github.com/keyfort/keyfort/internal/crypto/service"
	"github.com/keyfort/keyfort/internal/database"
	apperrors "github.com/keyfort/keyfort/internal/errors"
	secretsDomain "github.com/keyfort/keyfort/internal/secrets/domain"
)

// secretUseCase implements the SecretUseCase interface.
type secretUseCase struct {
	txManager  database.TxManager
	pool       *database.Pool
	secretRepo SecretRepository
	engine     cryptoService.CipherEngine
}

// NewSecretUseCase creates a new secret use case instance.
func NewSecretUseCase(
	txManager database.TxManager,
	pool *database.Pool,
	secretRepo SecretRepository,
	engine cryptoService.CipherEngine,
) SecretUseCase {
	return &secretUseCase{
		txManager:  txManager,
		pool:       pool,
		secretRepo: secretRepo,
		engine:     engine,
	}
}

// Put stores or updates a secret under the given service name.
//
// The read-check-write sequence runs inside one write transaction, so the
// version counter increments exactly once per successful call even under
// concurrent writers. The service name is bound into the authentication tag
// as associated data; a ciphertext copied to another name fails decryption.
func (s *secretUseCase) Put(
	ctx context.Context,
	serviceName string,
	value []byte,
	metadata map[string]string,
	expectedVersion *uint,
) (*secretsDomain.Secret, error) {
	var secret *secretsDomain.Secret

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		current, err := s.secretRepo.Get(txCtx, serviceName)
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		var currentVersion uint
		if current != nil {
			currentVersion = current.Version
		}
		if expectedVersion != nil && *expectedVersion != currentVersion {
			return fmt.Errorf(
				"%w: expected version %d, have %d",
				secretsDomain.ErrVersionConflict,
				*expectedVersion,
				currentVersion,
			)
		}

		ciphertext, err := s.engine.Encrypt(value, []byte(serviceName))
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		createdAt := now
		if current != nil {
			createdAt = current.CreatedAt
		}

		secret = &secretsDomain.Secret{
			ServiceName: serviceName,
			Ciphertext:  ciphertext,
			Metadata:    metadata,
			Version:     currentVersion + 1,
			CreatedAt:   createdAt,
			UpdatedAt:   now,
		}
		return s.secretRepo.Upsert(txCtx, secret)
	})
	if err != nil {
		return nil, err
	}

	return secret, nil
}

// Get retrieves and decrypts a secret by service name.
//
// Decode and authentication failures propagate unchanged so callers can
// distinguish a malformed record from a tampered one.
func (s *secretUseCase) Get(ctx context.Context, serviceName string) (*secretsDomain.Secret, error) {
	var secret *secretsDomain.Secret

	err := s.pool.WithRead(ctx, func(ctx context.Context) error {
		var err error
		secret, err = s.secretRepo.Get(ctx, serviceName)
		return err
	})
	if err != nil {
		return nil, err
	}

	plaintext, err := s.engine.Decrypt(secret.Ciphertext, []byte(serviceName))
	if err != nil {
		return nil, err
	}
	secret.Plaintext = plaintext

	return secret, nil
}

// Delete removes a secret by service name.
func (s *secretUseCase) Delete(ctx context.Context, serviceName string) error {
	return s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return s.secretRepo.Delete(txCtx, serviceName)
	})
}

// List retrieves secret metadata ordered by service name. Values are never
// decrypted; every call reads a fresh snapshot.
func (s *secretUseCase) List(ctx context.Context, offset, limit int) ([]*secretsDomain.Secret, error) {
	var secrets []*secretsDomain.Secret

	err := s.pool.WithRead(ctx, func(ctx context.Context) error {
		var err error
		secrets, err = s.secretRepo.List(ctx, offset, limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	return secrets, nil
}
