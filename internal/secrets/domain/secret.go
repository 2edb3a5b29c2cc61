// Package domain defines the core domain model for secret storage. Each
// service name maps to exactly one secret row; updates replace the payload in
// place and bump a monotonically increasing version counter.
package domain

import (
	"time"
)

// Secret represents an encrypted credential stored under a service name.
type Secret struct {
	// ServiceName is the unique logical key for the secret (e.g., "web_service").
	ServiceName string
	// Ciphertext is the encrypted payload including its envelope header.
	Ciphertext []byte
	// Plaintext holds the decrypted value in memory only; must be zeroed after use.
	Plaintext []byte `json:"-"`
	// Metadata is caller-supplied descriptive data, stored unencrypted so
	// listings never need the master key.
	Metadata map[string]string
	// Version increments on every successful write, starting at 1.
	Version uint
	// CreatedAt is the UTC timestamp of the first write for this name.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the most recent write.
	UpdatedAt time.Time
}
