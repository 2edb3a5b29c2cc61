// Package service provides the cryptographic services: AEAD ciphers
// (AES-256-GCM, ChaCha20-Poly1305) and the blob-level cipher engine used to
// protect secret payloads at rest.
package service

import (
	cryptoDomain "github.com/keyfort/keyfort/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// CipherEngine performs authenticated encryption and decryption of payloads
// as self-describing blobs carrying a version tag, the algorithm marker and a
// fresh random nonce. Pure apart from the RNG call; no persistent side effects.
type CipherEngine interface {
	// Encrypt produces a blob binding the ciphertext and associated data.
	Encrypt(plaintext, aad []byte) ([]byte, error)

	// Decrypt opens a blob. Structural problems surface as a decode-kind
	// error; a tag that does not verify surfaces as an authentication failure.
	Decrypt(blob, aad []byte) ([]byte, error)
}
