package usecase

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/keyfort/keyfort/internal/crypto/domain"
	cryptoRepository "github.com/keyfort/keyfort/internal/crypto/repository"
	"github.com/keyfort/keyfort/internal/database"
	apperrors "github.com/keyfort/keyfort/internal/errors"
)

func setupUseCase(t *testing.T) (MasterKeyUseCase, *sql.DB) {
	t.Helper()

	cfg := database.Config{
		Path:           filepath.Join(t.TempDir(), "keyfort.db"),
		PoolSize:       4,
		AcquireTimeout: 2 * time.Second,
		BusyRetries:    3,
		BusyBackoff:    10 * time.Millisecond,
	}

	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pool := database.NewPool(cfg.PoolSize, cfg.AcquireTimeout)
	txManager := database.NewTxManager(db, pool, cfg.BusyRetries, cfg.BusyBackoff)
	repo := cryptoRepository.NewSQLiteMasterKeyRepository(db)

	return NewMasterKeyUseCase(txManager, repo), db
}

func TestMasterKeyUseCase_Initialize(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCase(t)

	t.Run("active key before initialize", func(t *testing.T) {
		_, err := uc.ActiveKey()
		assert.ErrorIs(t, err, cryptoDomain.ErrMasterKeyNotInitialized)
	})

	t.Run("first run generates a key", func(t *testing.T) {
		masterKey, err := uc.Initialize(ctx)
		require.NoError(t, err)
		assert.Len(t, masterKey.Key, cryptoDomain.MasterKeySize)

		active, err := uc.ActiveKey()
		require.NoError(t, err)
		assert.Equal(t, masterKey.Key, active.Key)
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := uc.Initialize(ctx)
		require.NoError(t, err)

		second, err := uc.Initialize(ctx)
		require.NoError(t, err)
		assert.Equal(t, first.Key, second.Key)
	})
}

func TestMasterKeyUseCase_InitializeSurvivesRestart(t *testing.T) {
	ctx := context.Background()

	cfg := database.Config{
		Path:           filepath.Join(t.TempDir(), "keyfort.db"),
		PoolSize:       4,
		AcquireTimeout: 2 * time.Second,
	}

	db, err := database.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pool := database.NewPool(cfg.PoolSize, cfg.AcquireTimeout)
	txManager := database.NewTxManager(db, pool, 3, 10*time.Millisecond)
	repo := cryptoRepository.NewSQLiteMasterKeyRepository(db)

	first, err := NewMasterKeyUseCase(txManager, repo).Initialize(ctx)
	require.NoError(t, err)

	// A fresh use case over the same store loads the persisted key instead
	// of generating a new one.
	second, err := NewMasterKeyUseCase(txManager, repo).Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)
}

func TestMasterKeyUseCase_ConcurrentInitialize(t *testing.T) {
	ctx := context.Background()
	uc, _ := setupUseCase(t)

	const workers = 16

	keys := make([][]byte, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			masterKey, err := uc.Initialize(ctx)
			errs[i] = err
			if err == nil {
				keys[i] = masterKey.Key
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, keys[0], keys[i], "all callers must observe the same key")
	}
}

func TestMasterKeyUseCase_CorruptKeyMaterial(t *testing.T) {
	ctx := context.Background()
	uc, db := setupUseCase(t)

	_, err := db.ExecContext(ctx,
		"INSERT INTO master_key (id, key, created_at) VALUES (1, ?, ?)",
		[]byte("short"), time.Now().UTC())
	require.NoError(t, err)

	_, err = uc.Initialize(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCorruptKeyMaterial)
}
