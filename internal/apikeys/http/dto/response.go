// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	apikeysDomain "github.com/keyfort/keyfort/internal/apikeys/domain"
)

// APIKeyResponse represents an API key in API responses.
// The Key field carries the plaintext credential and is populated exactly
// once, in the response to the request that generated the key.
type APIKeyResponse struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Key       string     `json:"key,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// MapAPIKeyToCreateResponse converts a domain API key and its one-time
// plaintext credential to an API response.
func MapAPIKeyToCreateResponse(apiKey *apikeysDomain.APIKey, plainCredential string) APIKeyResponse {
	return APIKeyResponse{
		ID:        apiKey.ID,
		Label:     apiKey.Label,
		Key:       plainCredential,
		CreatedAt: apiKey.CreatedAt,
		ExpiresAt: apiKey.ExpiresAt,
	}
}
