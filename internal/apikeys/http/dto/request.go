// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/keyfort/keyfort/internal/validation"
)

// CreateAPIKeyRequest contains the parameters for generating a new API key.
type CreateAPIKeyRequest struct {
	Label string `json:"label"`
	// TTLDays is the optional number of days before the key expires.
	// Zero or omitted means the key never expires.
	TTLDays int `json:"ttl_days"`
}

// Validate checks if the create API key request is valid.
func (r *CreateAPIKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Label,
			validation.Required,
			customValidation.Name,
		),
		validation.Field(&r.TTLDays,
			validation.Min(0),
			validation.Max(3650),
		),
	)
}
