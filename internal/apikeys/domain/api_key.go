// Package domain defines the domain model for API key management. API keys
// are the only authentication principal: a random credential handed out once
// in plaintext and stored only as a salted Argon2id hash.
package domain

import (
	"time"
)

// BootstrapLabel is the label assigned to the key generated on first run of
// an empty store.
const BootstrapLabel = "default"

// APIKey represents an API key credential record.
type APIKey struct {
	// ID is the unique identifier for the key record.
	ID string
	// KeyHash is the Argon2id hash of the plaintext credential. The plaintext
	// itself is never persisted.
	KeyHash string
	// Label is the human-readable unique name for the key.
	Label string
	// Active is false once the key has been revoked. Revocation is permanent.
	Active bool
	// CreatedAt is the UTC timestamp when the key was generated.
	CreatedAt time.Time
	// ExpiresAt is the optional expiry time; nil means the key never expires.
	ExpiresAt *time.Time
	// LastUsedAt tracks the most recent successful validation.
	LastUsedAt *time.Time
}

// IsExpired reports whether the key's expiry has passed at the given time.
func (a *APIKey) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && now.After(*a.ExpiresAt)
}
