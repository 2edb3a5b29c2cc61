package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDB(t *testing.T) {
	db := SetupDB(t)

	var name string
	err := db.QueryRowContext(context.Background(),
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'secrets'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "secrets", name)
}

func TestSetupStore(t *testing.T) {
	store := SetupStore(t)

	err := store.TxManager.WithTx(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
}
