package database

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	apperrors "github.com/keyfort/keyfort/internal/errors"
)

func TestPool_AcquireRead(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := NewPool(2, time.Second)
	ctx := context.Background()

	release1, err := pool.AcquireRead(ctx)
	require.NoError(t, err)
	release2, err := pool.AcquireRead(ctx)
	require.NoError(t, err)

	release1()
	release2()
}

func TestPool_ReadExhaustionTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := NewPool(1, 20*time.Millisecond)
	ctx := context.Background()

	release, err := pool.AcquireRead(ctx)
	require.NoError(t, err)
	defer release()

	start := time.Now()
	_, err = pool.AcquireRead(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPoolExhausted)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestPool_SingleWriter(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := NewPool(4, time.Second)
	ctx := context.Background()

	var active, maxActive int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pool.WithWrite(ctx, func(ctx context.Context) error {
				n := atomic.AddInt32(&active, 1)
				for {
					current := atomic.LoadInt32(&maxActive)
					if n <= current || atomic.CompareAndSwapInt32(&maxActive, current, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive), "writers must be serialized")
}

func TestPool_ReadersProceedDuringWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := NewPool(4, time.Second)
	ctx := context.Background()

	releaseWrite, err := pool.AcquireWrite(ctx)
	require.NoError(t, err)
	defer releaseWrite()

	// Readers only contend for pool size, not the write slot.
	releaseRead, err := pool.AcquireRead(ctx)
	require.NoError(t, err)
	releaseRead()
}

func TestPool_ReleaseOnError(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := NewPool(1, time.Second)
	ctx := context.Background()

	wantErr := assert.AnError
	err := pool.WithRead(ctx, func(ctx context.Context) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	// Slot must be back in the pool.
	release, err := pool.AcquireRead(ctx)
	require.NoError(t, err)
	release()
}

func TestPool_CanceledContext(t *testing.T) {
	pool := NewPool(1, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pool.AcquireRead(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
