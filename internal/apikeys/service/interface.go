package service

// CredentialService defines credential generation and verification operations.
type CredentialService interface {
	// GenerateCredential creates a random credential and its salted hash.
	// The plaintext is returned exactly once and never stored.
	GenerateCredential() (plainCredential string, hashedCredential string, err error)
	// HashCredential hashes a plaintext credential.
	HashCredential(plainCredential string) (hashedCredential string, err error)
	// CompareCredential performs a constant-time comparison between a
	// plaintext credential and a stored hash.
	CompareCredential(plainCredential string, hashedCredential string) bool
}
