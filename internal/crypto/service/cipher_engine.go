package service

import (
	cryptoDomain "github.com/keyfort/keyfort/internal/crypto/domain"
)

// cipherEngine implements CipherEngine keyed by the master key. The engine
// owns the blob envelope; callers never see nonces or algorithm markers.
// Both supported AEADs are constructed up front so blobs written under either
// algorithm stay readable after the configured default changes.
type cipherEngine struct {
	aeads map[cryptoDomain.Algorithm]AEAD
	alg   cryptoDomain.Algorithm
}

// NewCipherEngine creates a CipherEngine for the given key. New blobs are
// sealed with the configured default algorithm.
func NewCipherEngine(
	aeadManager AEADManager,
	key []byte,
	alg cryptoDomain.Algorithm,
) (CipherEngine, error) {
	aeads := make(map[cryptoDomain.Algorithm]AEAD, 2)
	for _, a := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		aead, err := aeadManager.CreateCipher(key, a)
		if err != nil {
			return nil, err
		}
		aeads[a] = aead
	}

	if _, ok := aeads[alg]; !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}

	return &cipherEngine{aeads: aeads, alg: alg}, nil
}

// Encrypt encrypts plaintext into a self-describing blob. The associated data
// is bound into the authentication tag without being stored in the blob.
func (e *cipherEngine) Encrypt(plaintext, aad []byte) ([]byte, error) {
	ciphertext, nonce, err := e.aeads[e.alg].Encrypt(plaintext, aad)
	if err != nil {
		return nil, err
	}

	blob := cryptoDomain.EncryptedBlob{
		Version:    cryptoDomain.BlobVersion,
		Algorithm:  e.alg,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}
	return blob.Encode(), nil
}

// Decrypt opens a blob produced by Encrypt, selecting the AEAD recorded in
// the blob header.
func (e *cipherEngine) Decrypt(data, aad []byte) ([]byte, error) {
	blob, err := cryptoDomain.DecodeBlob(data)
	if err != nil {
		return nil, err
	}

	aead, ok := e.aeads[blob.Algorithm]
	if !ok {
		return nil, cryptoDomain.ErrInvalidBlobFormat
	}

	plaintext, err := aead.Decrypt(blob.Ciphertext, blob.Nonce, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
