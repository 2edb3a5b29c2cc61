package service

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialService_GenerateCredential(t *testing.T) {
	svc := NewCredentialService()

	plain, hashed, err := svc.GenerateCredential()
	require.NoError(t, err)

	// 32 random bytes, base64url-encoded.
	decoded, err := base64.URLEncoding.DecodeString(plain)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)

	// The hash never contains the plaintext.
	assert.True(t, strings.HasPrefix(hashed, "$argon2id$"))
	assert.NotContains(t, hashed, plain)

	// Two generations never collide.
	plain2, _, err := svc.GenerateCredential()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
}

func TestCredentialService_CompareCredential(t *testing.T) {
	svc := NewCredentialService()

	plain, hashed, err := svc.GenerateCredential()
	require.NoError(t, err)

	assert.True(t, svc.CompareCredential(plain, hashed))
	assert.False(t, svc.CompareCredential("wrong-credential", hashed))
	assert.False(t, svc.CompareCredential(plain, "not-a-hash"))
	assert.False(t, svc.CompareCredential("", hashed))
}

func TestCredentialService_HashIsSalted(t *testing.T) {
	svc := NewCredentialService()

	hash1, err := svc.HashCredential("same-credential")
	require.NoError(t, err)
	hash2, err := svc.HashCredential("same-credential")
	require.NoError(t, err)

	// Salted hashes differ even for identical inputs.
	assert.NotEqual(t, hash1, hash2)
	assert.True(t, svc.CompareCredential("same-credential", hash1))
	assert.True(t, svc.CompareCredential("same-credential", hash2))
}
