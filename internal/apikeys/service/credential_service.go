// Package service provides credential generation and verification for API
// keys. Credentials are random 32-byte values; only their Argon2id hashes are
// ever persisted.
package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/keyfort/keyfort/internal/errors"
)

// credentialService implements CredentialService using Argon2id hashing.
type credentialService struct {
	hasher *pwdhash.PasswordHasher
}

// NewCredentialService creates a new CredentialService instance using Argon2id
// hashing with the Moderate policy.
func NewCredentialService() CredentialService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &credentialService{
		hasher: hasher,
	}
}

// GenerateCredential creates a new cryptographically secure 32-byte random
// credential, base64url-encoded for transmission.
func (s *credentialService) GenerateCredential() (string, string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random credential")
	}

	plainCredential := base64.URLEncoding.EncodeToString(randomBytes)

	hashedCredential, err := s.HashCredential(plainCredential)
	if err != nil {
		return "", "", err
	}

	return plainCredential, hashedCredential, nil
}

// HashCredential hashes a plaintext credential using Argon2id.
func (s *credentialService) HashCredential(plainCredential string) (string, error) {
	hashedCredential, err := s.hasher.Hash([]byte(plainCredential))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash credential")
	}
	return hashedCredential, nil
}

// CompareCredential performs a constant-time comparison between a plaintext
// credential and its hash.
func (s *credentialService) CompareCredential(plainCredential string, hashedCredential string) bool {
	ok, err := s.hasher.Verify([]byte(plainCredential), hashedCredential)
	if err != nil {
		return false
	}
	return ok
}
