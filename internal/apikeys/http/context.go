// Package http provides HTTP middleware and handlers for API key management.
package http

import (
	"context"

	apikeysDomain "github.com/keyfort/keyfort/internal/apikeys/domain"
)

// apiKeyKey is a context key type for storing the authenticated API key.
type apiKeyKey struct{}

// WithAPIKey stores an authenticated API key record in the context.
// Called by the authentication middleware after successful validation.
func WithAPIKey(ctx context.Context, apiKey *apikeysDomain.APIKey) context.Context {
	return context.WithValue(ctx, apiKeyKey{}, apiKey)
}

// GetAPIKey retrieves the authenticated API key record from the context.
// Returns (key, true) when present, or (nil, false) when the request was not
// authenticated.
func GetAPIKey(ctx context.Context) (*apikeysDomain.APIKey, bool) {
	apiKey, ok := ctx.Value(apiKeyKey{}).(*apikeysDomain.APIKey)
	return apiKey, ok
}
