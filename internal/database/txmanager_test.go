package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/keyfort/keyfort/internal/errors"
)

func newTestTxManager(t *testing.T, retries int) (TxManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pool := NewPool(2, time.Second)
	return NewTxManager(db, pool, retries, time.Millisecond), mock
}

func TestTxManager_Commit(t *testing.T) {
	manager, mock := newTestTxManager(t, 0)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO secrets").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := manager.WithTx(context.Background(), func(ctx context.Context) error {
		querier := GetTx(ctx, nil)
		_, err := querier.ExecContext(ctx, "INSERT INTO secrets (service_name) VALUES (?)", "svc")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollbackOnError(t *testing.T) {
	manager, mock := newTestTxManager(t, 0)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := apperrors.ErrNotFound
	err := manager.WithTx(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RetriesBusyThenSucceeds(t *testing.T) {
	manager, mock := newTestTxManager(t, 3)

	busy := errors.New("database is locked (5) (SQLITE_BUSY)")
	mock.ExpectBegin().WillReturnError(busy)
	mock.ExpectBegin().WillReturnError(busy)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := manager.WithTx(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_BusyExhaustsRetries(t *testing.T) {
	manager, mock := newTestTxManager(t, 2)

	busy := errors.New("database is locked")
	for i := 0; i < 3; i++ {
		mock.ExpectBegin().WillReturnError(busy)
	}

	err := manager.WithTx(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_DomainErrorsAreNotRetried(t *testing.T) {
	manager, mock := newTestTxManager(t, 5)

	mock.ExpectBegin()
	mock.ExpectRollback()

	calls := 0
	err := manager.WithTx(context.Background(), func(ctx context.Context) error {
		calls++
		return apperrors.ErrConflict
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsBusy(t *testing.T) {
	assert.True(t, isBusy(errors.New("database is locked")))
	assert.True(t, isBusy(errors.New("exec failed: SQLITE_BUSY")))
	assert.False(t, isBusy(nil))
	assert.False(t, isBusy(apperrors.ErrConflict))
	assert.False(t, isBusy(errors.New("syntax error")))
}
