// Package usecase implements business logic for API key management: issuing,
// validating, revoking and first-run bootstrap of credentials.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apikeysDomain "github.com/keyfort/keyfort/internal/apikeys/domain"
	apikeysService "github.com/keyfort/keyfort/internal/apikeys/service"
	"github.com/keyfort/keyfort/internal/database"
	apperrors "github.com/keyfort/keyfort/internal/errors"
)

// apiKeyUseCase implements the APIKeyUseCase interface.
type apiKeyUseCase struct {
	txManager     database.TxManager
	pool          *database.Pool
	apiKeyRepo    APIKeyRepository
	credentialSvc apikeysService.CredentialService
}

// NewAPIKeyUseCase creates a new API key use case instance.
func NewAPIKeyUseCase(
	txManager database.TxManager,
	pool *database.Pool,
	apiKeyRepo APIKeyRepository,
	credentialSvc apikeysService.CredentialService,
) APIKeyUseCase {
	return &apiKeyUseCase{
		txManager:     txManager,
		pool:          pool,
		apiKeyRepo:    apiKeyRepo,
		credentialSvc: credentialSvc,
	}
}

// Generate creates a new API key under a unique label.
//
// The plaintext credential exists only in the return value; the stored record
// carries its Argon2id hash.
func (a *apiKeyUseCase) Generate(
	ctx context.Context,
	label string,
	ttl time.Duration,
) (*apikeysDomain.APIKey, string, error) {
	plainCredential, hashedCredential, err := a.credentialSvc.GenerateCredential()
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	apiKey := &apikeysDomain.APIKey{
		ID:        uuid.Must(uuid.NewV7()).String(),
		KeyHash:   hashedCredential,
		Label:     label,
		Active:    true,
		CreatedAt: now,
	}
	if ttl > 0 {
		expiresAt := now.Add(ttl)
		apiKey.ExpiresAt = &expiresAt
	}

	err = a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return a.apiKeyRepo.Create(txCtx, apiKey)
	})
	if err != nil {
		return nil, "", err
	}

	return apiKey, plainCredential, nil
}

// Validate checks a presented credential against every active key.
//
// Hashes are salted, so there is no lookup by value; each active record is
// verified with a constant-time Argon2id comparison. The failure mode never
// discloses whether the credential was unknown, revoked or expired.
func (a *apiKeyUseCase) Validate(
	ctx context.Context,
	presented string,
) (*apikeysDomain.APIKey, error) {
	if presented == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var activeKeys []*apikeysDomain.APIKey
	err := a.pool.WithRead(ctx, func(ctx context.Context) error {
		var err error
		activeKeys, err = a.apiKeyRepo.ListActive(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	var matched *apikeysDomain.APIKey
	for _, apiKey := range activeKeys {
		if a.credentialSvc.CompareCredential(presented, apiKey.KeyHash) {
			matched = apiKey
			break
		}
	}
	if matched == nil {
		return nil, apperrors.ErrUnauthorized
	}

	now := time.Now().UTC()
	if matched.IsExpired(now) {
		return nil, apperrors.ErrUnauthorized
	}

	err = a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return a.apiKeyRepo.TouchLastUsed(txCtx, matched.ID, now)
	})
	if err != nil {
		return nil, err
	}
	matched.LastUsedAt = &now

	return matched, nil
}

// Revoke permanently deactivates the key with the given label.
func (a *apiKeyUseCase) Revoke(ctx context.Context, label string) error {
	return a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return a.apiKeyRepo.Revoke(txCtx, label)
	})
}

// List retrieves all active keys.
func (a *apiKeyUseCase) List(ctx context.Context) ([]*apikeysDomain.APIKey, error) {
	var apiKeys []*apikeysDomain.APIKey
	err := a.pool.WithRead(ctx, func(ctx context.Context) error {
		var listErr error
		apiKeys, listErr = a.apiKeyRepo.ListActive(ctx)
		return listErr
	})
	if err != nil {
		return nil, err
	}
	return apiKeys, nil
}

// Bootstrap generates the initial key when the store holds no keys at all.
//
// The existence check and the insert share one transaction, so concurrent
// first runs create at most one bootstrap key. Revoked keys count as
// existing; bootstrap never resurrects access on a store that had keys.
func (a *apiKeyUseCase) Bootstrap(ctx context.Context) (string, bool, error) {
	plainCredential, hashedCredential, err := a.credentialSvc.GenerateCredential()
	if err != nil {
		return "", false, err
	}

	created := false
	err = a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		count, err := a.apiKeyRepo.Count(txCtx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		apiKey := &apikeysDomain.APIKey{
			ID:        uuid.Must(uuid.NewV7()).String(),
			KeyHash:   hashedCredential,
			Label:     apikeysDomain.BootstrapLabel,
			Active:    true,
			CreatedAt: now,
		}
		if err := a.apiKeyRepo.Create(txCtx, apiKey); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if !created {
		return "", false, nil
	}

	return plainCredential, true, nil
}
