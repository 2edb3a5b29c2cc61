package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	apikeysUseCase "github.com/keyfort/keyfort/internal/apikeys/usecase"
)

// RunRevokeAPIKey permanently revokes the API key with the given label.
func RunRevokeAPIKey(
	ctx context.Context,
	apiKeyUseCase apikeysUseCase.APIKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	label string,
) error {
	if err := apiKeyUseCase.Revoke(ctx, label); err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "API key %q revoked\n", label)

	logger.Info("api key revoked", slog.String("label", label))

	return nil
}
