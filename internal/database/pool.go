package database

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/semaphore"

	apperrors "github.com/keyfort/keyfort/internal/errors"
)

// Pool enforces the store's multi-reader/single-writer admission policy on top
// of the driver's connection handling. Readers share up to PoolSize slots;
// writers additionally serialize on a dedicated write slot so at most one
// transaction mutates the journal at a time.
type Pool struct {
	readers        *semaphore.Weighted
	writer         *semaphore.Weighted
	acquireTimeout time.Duration
}

// NewPool creates a pool with the given number of reader slots and acquire timeout.
func NewPool(size int, acquireTimeout time.Duration) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		readers:        semaphore.NewWeighted(int64(size)),
		writer:         semaphore.NewWeighted(1),
		acquireTimeout: acquireTimeout,
	}
}

// AcquireRead obtains a reader slot. The returned release function must be
// called on every exit path; callers should defer it immediately.
func (p *Pool) AcquireRead(ctx context.Context) (func(), error) {
	if err := p.acquire(ctx, p.readers, 1); err != nil {
		return nil, err
	}
	return func() { p.readers.Release(1) }, nil
}

// AcquireWrite obtains the exclusive write slot plus a reader slot, so writes
// also count against the pool's size limit.
func (p *Pool) AcquireWrite(ctx context.Context) (func(), error) {
	if err := p.acquire(ctx, p.writer, 1); err != nil {
		return nil, err
	}
	if err := p.acquire(ctx, p.readers, 1); err != nil {
		p.writer.Release(1)
		return nil, err
	}
	return func() {
		p.readers.Release(1)
		p.writer.Release(1)
	}, nil
}

// WithRead runs fn while holding a reader slot.
func (p *Pool) WithRead(ctx context.Context, fn func(ctx context.Context) error) error {
	release, err := p.AcquireRead(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}

// WithWrite runs fn while holding the exclusive write slot.
func (p *Pool) WithWrite(ctx context.Context, fn func(ctx context.Context) error) error {
	release, err := p.AcquireWrite(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}

// acquire blocks up to the configured timeout, then fails with
// ErrPoolExhausted rather than waiting indefinitely.
func (p *Pool) acquire(ctx context.Context, sem *semaphore.Weighted, n int64) error {
	acquireCtx, cancel := context.WithTimeout(ctx, p.acquireTimeout)
	defer cancel()

	if err := sem.Acquire(acquireCtx, n); err != nil {
		// Distinguish the caller's cancellation from pool exhaustion.
		if ctx.Err() != nil {
			return apperrors.Wrap(ctx.Err(), "pool acquire canceled")
		}
		if errors.Is(acquireCtx.Err(), context.DeadlineExceeded) {
			return apperrors.ErrPoolExhausted
		}
		return apperrors.Wrap(err, "pool acquire failed")
	}
	return nil
}
