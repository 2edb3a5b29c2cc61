package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	apperrors "github.com/keyfort/keyfort/internal/errors"
)

// txKey is a context key type for storing database transactions.
type txKey struct{}

// Querier represents a database query executor (either *sql.DB or *sql.Tx).
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager manages database transactions.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// sqlTxManager implements TxManager. Every transaction holds the pool's
// exclusive write slot for its whole lifetime, and transient lock contention
// is retried with bounded exponential backoff before surfacing a storage error.
type sqlTxManager struct {
	db          *sql.DB
	pool        *Pool
	busyRetries int
	busyBackoff time.Duration
}

// NewTxManager creates a new TxManager for the given database and pool.
func NewTxManager(db *sql.DB, pool *Pool, busyRetries int, busyBackoff time.Duration) TxManager {
	if busyBackoff <= 0 {
		busyBackoff = 10 * time.Millisecond
	}
	return &sqlTxManager{db: db, pool: pool, busyRetries: busyRetries, busyBackoff: busyBackoff}
}

// WithTx executes the function within a database transaction. The transaction
// either fully commits or fully rolls back; a panic inside fn also rolls back
// before re-panicking.
func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.pool.WithWrite(ctx, func(ctx context.Context) error {
		backoff := m.busyBackoff
		var lastErr error

		for attempt := 0; attempt <= m.busyRetries; attempt++ {
			err := m.runTx(ctx, fn)
			if err == nil || !isBusy(err) {
				return err
			}
			lastErr = err

			select {
			case <-ctx.Done():
				return apperrors.Wrap(ctx.Err(), "transaction canceled")
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		return apperrors.Wrap(lastErr, apperrors.ErrStorage.Error())
	})
}

func (m *sqlTxManager) runTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	ctx = context.WithValue(ctx, txKey{}, tx)

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}

// GetTx retrieves a transaction from context, or returns the DB connection.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// isBusy reports whether the error is transient SQLite lock contention.
// Domain errors returned by fn are never retried; retrying them would not
// change the outcome.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	if apperrors.Is(err, apperrors.ErrNotFound) ||
		apperrors.Is(err, apperrors.ErrConflict) ||
		apperrors.Is(err, apperrors.ErrInvalidInput) ||
		apperrors.Is(err, apperrors.ErrAuthenticationFailed) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
