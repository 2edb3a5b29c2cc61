// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/base64"
	"time"

	secretsDomain "github.com/keyfort/keyfort/internal/secrets/domain"
)

// SecretResponse represents a secret in API responses.
// The Value field carries the base64-encoded plaintext and is only populated
// in GET responses; writes and listings return metadata alone.
type SecretResponse struct {
	ServiceName string            `json:"service_name"`
	Value       string            `json:"value,omitempty"`
	Metadata    map[string]string `json:"metadata"`
	Version     uint              `json:"version"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ListSecretsResponse represents a paginated list of secrets in API responses.
type ListSecretsResponse struct {
	Data []SecretResponse `json:"data"`
}

// MapSecretToPutResponse converts a domain secret to an API response for
// write operations. The value is excluded; callers already hold it.
func MapSecretToPutResponse(secret *secretsDomain.Secret) SecretResponse {
	return SecretResponse{
		ServiceName: secret.ServiceName,
		Metadata:    secret.Metadata,
		Version:     secret.Version,
		CreatedAt:   secret.CreatedAt,
		UpdatedAt:   secret.UpdatedAt,
	}
}

// MapSecretToGetResponse converts a domain secret to an API response for GET
// operations, including the base64-encoded plaintext. The caller must zero
// the domain plaintext after mapping.
func MapSecretToGetResponse(secret *secretsDomain.Secret) SecretResponse {
	response := MapSecretToPutResponse(secret)
	response.Value = base64.StdEncoding.EncodeToString(secret.Plaintext)
	return response
}

// MapSecretsToListResponse converts a slice of domain secrets to a list response.
func MapSecretsToListResponse(secrets []*secretsDomain.Secret) ListSecretsResponse {
	data := make([]SecretResponse, 0, len(secrets))
	for _, secret := range secrets {
		data = append(data, MapSecretToPutResponse(secret))
	}

	return ListSecretsResponse{
		Data: data,
	}
}
