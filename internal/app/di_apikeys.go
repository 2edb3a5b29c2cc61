package app

import (
	"fmt"

	apikeysHTTP "github.com/keyfort/keyfort/internal/apikeys/http"
	apikeysRepository "github.com/keyfort/keyfort/internal/apikeys/repository"
	apikeysService "github.com/keyfort/keyfort/internal/apikeys/service"
	apikeysUseCase "github.com/keyfort/keyfort/internal/apikeys/usecase"
)

// CredentialService returns the API key credential service.
func (c *Container) CredentialService() apikeysService.CredentialService {
	c.credentialServiceInit.Do(func() {
		c.credentialService = apikeysService.NewCredentialService()
	})
	return c.credentialService
}

// APIKeyRepository returns the API key repository.
func (c *Container) APIKeyRepository() (apikeysUseCase.APIKeyRepository, error) {
	var err error
	c.apiKeyRepoInit.Do(func() {
		c.apiKeyRepo, err = c.initAPIKeyRepository()
		if err != nil {
			c.initErrors["apiKeyRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyRepo"]; exists {
		return nil, storedErr
	}
	return c.apiKeyRepo, nil
}

// APIKeyUseCase returns the API key use case, wrapped with metrics recording
// when metrics are enabled.
func (c *Container) APIKeyUseCase() (apikeysUseCase.APIKeyUseCase, error) {
	var err error
	c.apiKeyUseCaseInit.Do(func() {
		c.apiKeyUseCase, err = c.initAPIKeyUseCase()
		if err != nil {
			c.initErrors["apiKeyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyUseCase"]; exists {
		return nil, storedErr
	}
	return c.apiKeyUseCase, nil
}

// APIKeyHandler returns the API key HTTP handler.
func (c *Container) APIKeyHandler() (*apikeysHTTP.APIKeyHandler, error) {
	var err error
	c.apiKeyHandlerInit.Do(func() {
		c.apiKeyHandler, err = c.initAPIKeyHandler()
		if err != nil {
			c.initErrors["apiKeyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyHandler"]; exists {
		return nil, storedErr
	}
	return c.apiKeyHandler, nil
}

// initAPIKeyRepository creates the API key repository instance.
func (c *Container) initAPIKeyRepository() (apikeysUseCase.APIKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for api key repository: %w", err)
	}
	return apikeysRepository.NewSQLiteAPIKeyRepository(db), nil
}

// initAPIKeyUseCase creates the API key use case with all its dependencies.
func (c *Container) initAPIKeyUseCase() (apikeysUseCase.APIKeyUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for api key use case: %w", err)
	}

	apiKeyRepo, err := c.APIKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key repository for api key use case: %w", err)
	}

	useCase := apikeysUseCase.NewAPIKeyUseCase(txManager, c.Pool(), apiKeyRepo, c.CredentialService())

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for api key use case: %w", err)
	}

	return apikeysUseCase.NewAPIKeyUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initAPIKeyHandler creates the API key HTTP handler.
func (c *Container) initAPIKeyHandler() (*apikeysHTTP.APIKeyHandler, error) {
	apiKeyUseCase, err := c.APIKeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key use case for api key handler: %w", err)
	}

	return apikeysHTTP.NewAPIKeyHandler(apiKeyUseCase, c.Logger()), nil
}
