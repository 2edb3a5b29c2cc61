package usecase

import (
	"context"
	"time"

	"github.com/keyfort/keyfort/internal/metrics"
	secretsDomain "github.com/keyfort/keyfort/internal/secrets/domain"
)

// secretUseCaseWithMetrics decorates SecretUseCase with metrics instrumentation.
type secretUseCaseWithMetrics struct {
	next    SecretUseCase
	metrics metrics.BusinessMetrics
}

// NewSecretUseCaseWithMetrics wraps a SecretUseCase with metrics recording.
func NewSecretUseCaseWithMetrics(useCase SecretUseCase, m metrics.BusinessMetrics) SecretUseCase {
	return &secretUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *secretUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, "secrets", operation, status)
	s.metrics.RecordDuration(ctx, "secrets", operation, time.Since(start), status)
}

// Put records metrics for secret write operations.
func (s *secretUseCaseWithMetrics) Put(
	ctx context.Context,
	serviceName string,
	value []byte,
	metadata map[string]string,
	expectedVersion *uint,
) (*secretsDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.Put(ctx, serviceName, value, metadata, expectedVersion)
	s.record(ctx, "secret_put", start, err)
	return secret, err
}

// Get records metrics for secret retrieval operations.
func (s *secretUseCaseWithMetrics) Get(
	ctx context.Context,
	serviceName string,
) (*secretsDomain.Secret, error) {
	start := time.Now()
	secret, err := s.next.Get(ctx, serviceName)
	s.record(ctx, "secret_get", start, err)
	return secret, err
}

// Delete records metrics for secret deletion operations.
func (s *secretUseCaseWithMetrics) Delete(ctx context.Context, serviceName string) error {
	start := time.Now()
	err := s.next.Delete(ctx, serviceName)
	s.record(ctx, "secret_delete", start, err)
	return err
}

// List records metrics for secret listing operations.
func (s *secretUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	start := time.Now()
	secrets, err := s.next.List(ctx, offset, limit)
	s.record(ctx, "secret_list", start, err)
	return secrets, err
}
