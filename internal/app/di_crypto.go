package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/keyfort/keyfort/internal/crypto/domain"
	cryptoRepository "github.com/keyfort/keyfort/internal/crypto/repository"
	cryptoService "github.com/keyfort/keyfort/internal/crypto/service"
	cryptoUseCase "github.com/keyfort/keyfort/internal/crypto/usecase"
)

// MasterKeyRepository returns the master key repository.
func (c *Container) MasterKeyRepository() (cryptoUseCase.MasterKeyRepository, error) {
	var err error
	c.masterKeyRepoInit.Do(func() {
		c.masterKeyRepo, err = c.initMasterKeyRepository()
		if err != nil {
			c.initErrors["masterKeyRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKeyRepo"]; exists {
		return nil, storedErr
	}
	return c.masterKeyRepo, nil
}

// MasterKeyUseCase returns the master key use case.
func (c *Container) MasterKeyUseCase() (cryptoUseCase.MasterKeyUseCase, error) {
	var err error
	c.masterKeyUseCaseInit.Do(func() {
		c.masterKeyUseCase, err = c.initMasterKeyUseCase()
		if err != nil {
			c.initErrors["masterKeyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKeyUseCase"]; exists {
		return nil, storedErr
	}
	return c.masterKeyUseCase, nil
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager()
	})
	return c.aeadManager
}

// CipherEngine returns the cipher engine bound to the active master key.
// The master key is loaded, or generated on first run, as a side effect.
func (c *Container) CipherEngine() (cryptoService.CipherEngine, error) {
	var err error
	c.cipherEngineInit.Do(func() {
		c.cipherEngine, err = c.initCipherEngine()
		if err != nil {
			c.initErrors["cipherEngine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cipherEngine"]; exists {
		return nil, storedErr
	}
	return c.cipherEngine, nil
}

// initMasterKeyRepository creates the master key repository instance.
func (c *Container) initMasterKeyRepository() (cryptoUseCase.MasterKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for master key repository: %w", err)
	}
	return cryptoRepository.NewSQLiteMasterKeyRepository(db), nil
}

// initMasterKeyUseCase creates the master key use case with all its dependencies.
func (c *Container) initMasterKeyUseCase() (cryptoUseCase.MasterKeyUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for master key use case: %w", err)
	}

	repo, err := c.MasterKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key repository for master key use case: %w", err)
	}

	return cryptoUseCase.NewMasterKeyUseCase(txManager, repo), nil
}

// initCipherEngine loads the master key and builds the cipher engine.
// Startup must fail when the stored key material is corrupt; serving with a
// wrong key would make every stored secret unreadable.
func (c *Container) initCipherEngine() (cryptoService.CipherEngine, error) {
	masterKeyUseCase, err := c.MasterKeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key use case for cipher engine: %w", err)
	}

	masterKey, err := masterKeyUseCase.Initialize(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize master key: %w", err)
	}

	engine, err := cryptoService.NewCipherEngine(
		c.AEADManager(),
		masterKey.Key,
		cryptoDomain.Algorithm(c.config.CipherAlgorithm),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher engine: %w", err)
	}

	return engine, nil
}
