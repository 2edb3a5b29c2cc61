package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	apikeysUseCase "github.com/keyfort/keyfort/internal/apikeys/usecase"
)

// listAPIKeyOutput is the JSON shape printed per key by RunListAPIKeys.
type listAPIKeyOutput struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

// RunListAPIKeys prints the active API keys. Credentials are hashed at rest
// and never part of the listing.
func RunListAPIKeys(
	ctx context.Context,
	apiKeyUseCase apikeysUseCase.APIKeyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	apiKeys, err := apiKeyUseCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list api keys: %w", err)
	}

	output := make([]listAPIKeyOutput, 0, len(apiKeys))
	for _, apiKey := range apiKeys {
		output = append(output, listAPIKeyOutput{
			ID:         apiKey.ID,
			Label:      apiKey.Label,
			CreatedAt:  apiKey.CreatedAt,
			ExpiresAt:  apiKey.ExpiresAt,
			LastUsedAt: apiKey.LastUsedAt,
		})
	}

	if format == "json" {
		outputJSON(output, writer)
		return nil
	}

	if len(output) == 0 {
		_, _ = fmt.Fprintln(writer, "No active API keys")
		return nil
	}

	for _, item := range output {
		expires := "never"
		if item.ExpiresAt != nil {
			expires = item.ExpiresAt.Format(time.RFC3339)
		}
		lastUsed := "never"
		if item.LastUsedAt != nil {
			lastUsed = item.LastUsedAt.Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(writer, "%s  label=%s  expires=%s  last_used=%s\n",
			item.ID, item.Label, expires, lastUsed)
	}

	return nil
}
