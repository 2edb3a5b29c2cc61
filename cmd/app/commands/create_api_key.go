package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	apikeysUseCase "github.com/keyfort/keyfort/internal/apikeys/usecase"
)

// createAPIKeyOutput is the JSON shape printed by RunCreateAPIKey.
type createAPIKeyOutput struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Key       string     `json:"key"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// RunCreateAPIKey creates a new API key and prints the plaintext credential.
// The credential is shown exactly once; only its hash is stored.
func RunCreateAPIKey(
	ctx context.Context,
	apiKeyUseCase apikeysUseCase.APIKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	label string,
	ttl time.Duration,
	format string,
) error {
	apiKey, plainCredential, err := apiKeyUseCase.Generate(ctx, label, ttl)
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}

	output := createAPIKeyOutput{
		ID:        apiKey.ID,
		Label:     apiKey.Label,
		Key:       plainCredential,
		CreatedAt: apiKey.CreatedAt,
		ExpiresAt: apiKey.ExpiresAt,
	}

	if format == "json" {
		outputJSON(output, writer)
	} else {
		_, _ = fmt.Fprintf(writer, "API key created\n")
		_, _ = fmt.Fprintf(writer, "  ID:    %s\n", output.ID)
		_, _ = fmt.Fprintf(writer, "  Label: %s\n", output.Label)
		_, _ = fmt.Fprintf(writer, "  Key:   %s\n", output.Key)
		if output.ExpiresAt != nil {
			_, _ = fmt.Fprintf(writer, "  Expires: %s\n", output.ExpiresAt.Format(time.RFC3339))
		}
		_, _ = fmt.Fprintln(writer, "Store the key now; it cannot be recovered later.")
	}

	logger.Info("api key created",
		slog.String("id", apiKey.ID),
		slog.String("label", apiKey.Label),
	)

	return nil
}
