// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/keyfort/keyfort/internal/validation"
)

// PutSecretRequest contains the parameters for storing or updating a secret.
// The service name comes from the URL parameter, not the request body.
type PutSecretRequest struct {
	// Value is the base64-encoded secret payload.
	Value string `json:"value"`
	// Metadata is optional descriptive data stored unencrypted.
	Metadata map[string]string `json:"metadata"`
	// ExpectedVersion enables optimistic concurrency: when set, the write
	// succeeds only if it matches the stored version.
	ExpectedVersion *uint `json:"expected_version"`
}

// Validate checks if the put secret request is valid.
func (r *PutSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			customValidation.Base64,
		),
	)
}
