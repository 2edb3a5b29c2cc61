package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apikeysDomain "github.com/keyfort/keyfort/internal/apikeys/domain"
)

// mockAPIKeyUseCase is a mock implementation of APIKeyUseCase for testing.
type mockAPIKeyUseCase struct {
	mock.Mock
}

func (m *mockAPIKeyUseCase) Generate(
	ctx context.Context,
	label string,
	ttl time.Duration,
) (*apikeysDomain.APIKey, string, error) {
	args := m.Called(ctx, label, ttl)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*apikeysDomain.APIKey), args.String(1), args.Error(2)
}

func (m *mockAPIKeyUseCase) Validate(
	ctx context.Context,
	presented string,
) (*apikeysDomain.APIKey, error) {
	args := m.Called(ctx, presented)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apikeysDomain.APIKey), args.Error(1)
}

func (m *mockAPIKeyUseCase) Revoke(ctx context.Context, label string) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *mockAPIKeyUseCase) List(ctx context.Context) ([]*apikeysDomain.APIKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*apikeysDomain.APIKey), args.Error(1)
}

func (m *mockAPIKeyUseCase) Bootstrap(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunCreateAPIKey(t *testing.T) {
	ctx := context.Background()
	keyID := uuid.Must(uuid.NewV7()).String()

	t.Run("text", func(t *testing.T) {
		mockUseCase := &mockAPIKeyUseCase{}
		mockUseCase.On("Generate", ctx, "deploy", time.Duration(0)).
			Return(&apikeysDomain.APIKey{
				ID:        keyID,
				Label:     "deploy",
				Active:    true,
				CreatedAt: time.Now().UTC(),
			}, "plain-credential", nil)

		var out bytes.Buffer
		err := RunCreateAPIKey(ctx, mockUseCase, testLogger(), &out, "deploy", 0, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), keyID)
		require.Contains(t, out.String(), "plain-credential")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		mockUseCase := &mockAPIKeyUseCase{}
		expiresAt := time.Now().UTC().Add(30 * 24 * time.Hour)
		mockUseCase.On("Generate", ctx, "deploy", 30*24*time.Hour).
			Return(&apikeysDomain.APIKey{
				ID:        keyID,
				Label:     "deploy",
				Active:    true,
				CreatedAt: time.Now().UTC(),
				ExpiresAt: &expiresAt,
			}, "plain-credential", nil)

		var out bytes.Buffer
		err := RunCreateAPIKey(ctx, mockUseCase, testLogger(), &out, "deploy", 30*24*time.Hour, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"key": "plain-credential"`)
		require.Contains(t, out.String(), `"expires_at"`)
	})

	t.Run("duplicate label", func(t *testing.T) {
		mockUseCase := &mockAPIKeyUseCase{}
		mockUseCase.On("Generate", ctx, "deploy", time.Duration(0)).
			Return(nil, "", apikeysDomain.ErrDuplicateLabel)

		var out bytes.Buffer
		err := RunCreateAPIKey(ctx, mockUseCase, testLogger(), &out, "deploy", 0, "text")

		require.ErrorIs(t, err, apikeysDomain.ErrDuplicateLabel)
		require.Empty(t, out.String())
	})
}
