package domain

import (
	"github.com/keyfort/keyfort/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors so
// callers can branch on the kind without knowing the cryptographic detail.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	// Both supported algorithms require exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates the authentication tag did not verify:
	// tampered ciphertext, mismatched associated data, or the wrong key.
	// The specific cause is deliberately not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrAuthenticationFailed, "decryption failed")

	// ErrInvalidBlobFormat indicates a stored blob is structurally malformed:
	// too short, unknown format version, or unknown algorithm marker.
	ErrInvalidBlobFormat = errors.Wrap(errors.ErrDecode, "invalid blob format")

	// ErrMasterKeyNotInitialized indicates key access before Initialize completed.
	ErrMasterKeyNotInitialized = errors.New("master key not initialized")
)
