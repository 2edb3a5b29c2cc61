package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apikeysDomain "github.com/keyfort/keyfort/internal/apikeys/domain"
	apikeysRepository "github.com/keyfort/keyfort/internal/apikeys/repository"
	apikeysService "github.com/keyfort/keyfort/internal/apikeys/service"
	apperrors "github.com/keyfort/keyfort/internal/errors"
	"github.com/keyfort/keyfort/internal/testutil"
)

func setupAPIKeyUseCase(t *testing.T) APIKeyUseCase {
	t.Helper()

	store := testutil.SetupStore(t)
	repo := apikeysRepository.NewSQLiteAPIKeyRepository(store.DB)
	return NewAPIKeyUseCase(store.TxManager, store.Pool, repo, apikeysService.NewCredentialService())
}

func TestAPIKeyUseCase_GenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	uc := setupAPIKeyUseCase(t)

	apiKey, plainCredential, err := uc.Generate(ctx, "ci-pipeline", 0)
	require.NoError(t, err)
	assert.Equal(t, "ci-pipeline", apiKey.Label)
	assert.NotEmpty(t, plainCredential)
	assert.NotContains(t, apiKey.KeyHash, plainCredential)
	assert.Nil(t, apiKey.ExpiresAt)

	validated, err := uc.Validate(ctx, plainCredential)
	require.NoError(t, err)
	assert.Equal(t, "ci-pipeline", validated.Label)
	assert.NotNil(t, validated.LastUsedAt)
}

func TestAPIKeyUseCase_GenerateDuplicateLabel(t *testing.T) {
	ctx := context.Background()
	uc := setupAPIKeyUseCase(t)

	_, _, err := uc.Generate(ctx, "deploy", 0)
	require.NoError(t, err)

	_, _, err = uc.Generate(ctx, "deploy", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apikeysDomain.ErrDuplicateLabel)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAPIKeyUseCase_ValidateUnknownCredential(t *testing.T) {
	ctx := context.Background()
	uc := setupAPIKeyUseCase(t)

	_, _, err := uc.Generate(ctx, "real-key", 0)
	require.NoError(t, err)

	_, err = uc.Validate(ctx, "made-up-credential")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)

	_, err = uc.Validate(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAPIKeyUseCase_ValidateRevokedCredential(t *testing.T) {
	ctx := context.Background()
	uc := setupAPIKeyUseCase(t)

	_, plainCredential, err := uc.Generate(ctx, "short-lived", 0)
	require.NoError(t, err)

	require.NoError(t, uc.Revoke(ctx, "short-lived"))

	// Revocation takes effect on the next validation.
	_, err = uc.Validate(ctx, plainCredential)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAPIKeyUseCase_ValidateExpiredCredential(t *testing.T) {
	ctx := context.Background()
	uc := setupAPIKeyUseCase(t)

	_, plainCredential, err := uc.Generate(ctx, "expiring", time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = uc.Validate(ctx, plainCredential)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAPIKeyUseCase_GenerateWithTTL(t *testing.T) {
	ctx := context.Background()
	uc := setupAPIKeyUseCase(t)

	apiKey, plainCredential, err := uc.Generate(ctx, "rotating", 24*time.Hour)
	require.NoError(t, err)
	require.NotNil(t, apiKey.ExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), *apiKey.ExpiresAt, time.Minute)

	// Not yet expired.
	_, err = uc.Validate(ctx, plainCredential)
	require.NoError(t, err)
}

func TestAPIKeyUseCase_RevokeUnknownLabel(t *testing.T) {
	uc := setupAPIKeyUseCase(t)

	err := uc.Revoke(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAPIKeyUseCase_List(t *testing.T) {
	ctx := context.Background()
	uc := setupAPIKeyUseCase(t)

	_, _, err := uc.Generate(ctx, "deploy", 0)
	require.NoError(t, err)
	_, _, err = uc.Generate(ctx, "backup", 0)
	require.NoError(t, err)
	require.NoError(t, uc.Revoke(ctx, "backup"))

	apiKeys, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, apiKeys, 1)
	assert.Equal(t, "deploy", apiKeys[0].Label)
}

func TestAPIKeyUseCase_Bootstrap(t *testing.T) {
	ctx := context.Background()
	uc := setupAPIKeyUseCase(t)

	plainCredential, created, err := uc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, plainCredential)

	validated, err := uc.Validate(ctx, plainCredential)
	require.NoError(t, err)
	assert.Equal(t, apikeysDomain.BootstrapLabel, validated.Label)

	// A second bootstrap on a non-empty store is a no-op.
	plain2, created, err := uc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, plain2)
}

func TestAPIKeyUseCase_BootstrapSkippedAfterRevocation(t *testing.T) {
	ctx := context.Background()
	uc := setupAPIKeyUseCase(t)

	_, created, err := uc.Bootstrap(ctx)
	require.NoError(t, err)
	require.True(t, created)

	require.NoError(t, uc.Revoke(ctx, apikeysDomain.BootstrapLabel))

	// A store whose keys were all revoked stays locked out.
	_, created, err = uc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.False(t, created)
}
