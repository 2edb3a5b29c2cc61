// Package usecase implements business logic for master key management.
//
// The master key use case owns first-run key generation and the in-memory
// copy of the loaded key. Initialization is collapsed through singleflight
// so concurrent callers race on one database round trip instead of many,
// and the unique-insert in the repository guarantees that whichever racer
// wins the insert, everyone converges on the same persisted key.
package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	cryptoDomain "github.com/keyfort/keyfort/internal/crypto/domain"
	"github.com/keyfort/keyfort/internal/database"
	apperrors "github.com/keyfort/keyfort/internal/errors"
)

// masterKeyUseCase implements the MasterKeyUseCase interface.
type masterKeyUseCase struct {
	txManager database.TxManager
	repo      MasterKeyRepository
	group     singleflight.Group

	mu  sync.RWMutex
	key *cryptoDomain.MasterKey
}

// NewMasterKeyUseCase creates a new master key use case instance.
func NewMasterKeyUseCase(
	txManager database.TxManager,
	repo MasterKeyRepository,
) MasterKeyUseCase {
	return &masterKeyUseCase{
		txManager: txManager,
		repo:      repo,
	}
}

// Initialize loads the master key, generating one on first run.
//
// The load path is: read the record; if absent, generate 32 random bytes,
// attempt the unique insert, then re-read so every concurrent initializer
// observes the record the winning insert produced. A key that fails the
// length check is fatal; the error wraps apperrors.ErrCorruptKeyMaterial
// and the caller must refuse to serve requests.
func (m *masterKeyUseCase) Initialize(ctx context.Context) (*cryptoDomain.MasterKey, error) {
	if key := m.activeKey(); key != nil {
		return key, nil
	}

	result, err, _ := m.group.Do("master-key", func() (any, error) {
		// Another waiter may have finished while this call queued.
		if key := m.activeKey(); key != nil {
			return key, nil
		}

		masterKey, err := m.load(ctx)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.key = masterKey
		m.mu.Unlock()
		return masterKey, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*cryptoDomain.MasterKey), nil
}

// load fetches the persisted master key, creating one if the store is new.
func (m *masterKeyUseCase) load(ctx context.Context) (*cryptoDomain.MasterKey, error) {
	masterKey, err := m.repo.Get(ctx)
	if err == nil {
		if err := masterKey.Validate(); err != nil {
			return nil, err
		}
		return masterKey, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	candidate, err := generateMasterKey()
	if err != nil {
		return nil, err
	}

	err = m.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := m.repo.Create(txCtx, candidate); err != nil {
			return err
		}
		// Re-read inside the transaction: if a concurrent process won the
		// insert, this returns its key rather than the local candidate.
		masterKey, err = m.repo.Get(txCtx)
		return err
	})
	if err != nil {
		candidate.Close()
		return nil, err
	}

	if string(masterKey.Key) != string(candidate.Key) {
		candidate.Close()
	}

	if err := masterKey.Validate(); err != nil {
		return nil, err
	}
	return masterKey, nil
}

// ActiveKey returns the loaded master key.
func (m *masterKeyUseCase) ActiveKey() (*cryptoDomain.MasterKey, error) {
	if key := m.activeKey(); key != nil {
		return key, nil
	}
	return nil, cryptoDomain.ErrMasterKeyNotInitialized
}

func (m *masterKeyUseCase) activeKey() *cryptoDomain.MasterKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key
}

func generateMasterKey() (*cryptoDomain.MasterKey, error) {
	key := make([]byte, cryptoDomain.MasterKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}

	return &cryptoDomain.MasterKey{
		Key:       key,
		CreatedAt: time.Now().UTC(),
	}, nil
}
