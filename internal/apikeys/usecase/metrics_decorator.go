package usecase

import (
	"context"
	"time"

	apikeysDomain "github.com/keyfort/keyfort/internal/apikeys/domain"
	"github.com/keyfort/keyfort/internal/metrics"
)

// apiKeyUseCaseWithMetrics decorates APIKeyUseCase with metrics instrumentation.
type apiKeyUseCaseWithMetrics struct {
	next    APIKeyUseCase
	metrics metrics.BusinessMetrics
}

// NewAPIKeyUseCaseWithMetrics wraps an APIKeyUseCase with metrics recording.
func NewAPIKeyUseCaseWithMetrics(useCase APIKeyUseCase, m metrics.BusinessMetrics) APIKeyUseCase {
	return &apiKeyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *apiKeyUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordOperation(ctx, "apikeys", operation, status)
	a.metrics.RecordDuration(ctx, "apikeys", operation, time.Since(start), status)
}

// Generate records metrics for key generation operations.
func (a *apiKeyUseCaseWithMetrics) Generate(
	ctx context.Context,
	label string,
	ttl time.Duration,
) (*apikeysDomain.APIKey, string, error) {
	start := time.Now()
	apiKey, plainCredential, err := a.next.Generate(ctx, label, ttl)
	a.record(ctx, "api_key_generate", start, err)
	return apiKey, plainCredential, err
}

// Validate records metrics for credential validation operations.
func (a *apiKeyUseCaseWithMetrics) Validate(
	ctx context.Context,
	presented string,
) (*apikeysDomain.APIKey, error) {
	start := time.Now()
	apiKey, err := a.next.Validate(ctx, presented)
	a.record(ctx, "api_key_validate", start, err)
	return apiKey, err
}

// Revoke records metrics for key revocation operations.
func (a *apiKeyUseCaseWithMetrics) Revoke(ctx context.Context, label string) error {
	start := time.Now()
	err := a.next.Revoke(ctx, label)
	a.record(ctx, "api_key_revoke", start, err)
	return err
}

// List records metrics for key listing operations.
func (a *apiKeyUseCaseWithMetrics) List(ctx context.Context) ([]*apikeysDomain.APIKey, error) {
	start := time.Now()
	apiKeys, err := a.next.List(ctx)
	a.record(ctx, "api_key_list", start, err)
	return apiKeys, err
}

// Bootstrap records metrics for first-run bootstrap operations.
func (a *apiKeyUseCaseWithMetrics) Bootstrap(ctx context.Context) (string, bool, error) {
	start := time.Now()
	plainCredential, created, err := a.next.Bootstrap(ctx)
	a.record(ctx, "api_key_bootstrap", start, err)
	return plainCredential, created, err
}
