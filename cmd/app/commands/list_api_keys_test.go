package commands

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apikeysDomain "github.com/keyfort/keyfort/internal/apikeys/domain"
)

func TestRunListAPIKeys(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		lastUsed := time.Now().UTC()
		mockUseCase := &mockAPIKeyUseCase{}
		mockUseCase.On("List", ctx).Return([]*apikeysDomain.APIKey{
			{
				ID:         uuid.Must(uuid.NewV7()).String(),
				Label:      "deploy",
				Active:     true,
				CreatedAt:  time.Now().UTC(),
				LastUsedAt: &lastUsed,
			},
			{
				ID:        uuid.Must(uuid.NewV7()).String(),
				Label:     "backup",
				Active:    true,
				CreatedAt: time.Now().UTC(),
			},
		}, nil)

		var out bytes.Buffer
		err := RunListAPIKeys(ctx, mockUseCase, testLogger(), &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "label=deploy")
		require.Contains(t, out.String(), "label=backup")
		require.Contains(t, out.String(), "expires=never")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		mockUseCase := &mockAPIKeyUseCase{}
		mockUseCase.On("List", ctx).Return([]*apikeysDomain.APIKey{
			{
				ID:        uuid.Must(uuid.NewV7()).String(),
				Label:     "deploy",
				Active:    true,
				CreatedAt: time.Now().UTC(),
			},
		}, nil)

		var out bytes.Buffer
		err := RunListAPIKeys(ctx, mockUseCase, testLogger(), &out, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"label": "deploy"`)
		require.NotContains(t, out.String(), `"key"`)
	})

	t.Run("empty", func(t *testing.T) {
		mockUseCase := &mockAPIKeyUseCase{}
		mockUseCase.On("List", ctx).Return([]*apikeysDomain.APIKey{}, nil)

		var out bytes.Buffer
		err := RunListAPIKeys(ctx, mockUseCase, testLogger(), &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "No active API keys")
	})
}
