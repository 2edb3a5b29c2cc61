package domain

import (
	"fmt"
)

// BlobVersion is the current blob format version. The leading version byte
// exists so the algorithm or layout can migrate without rewriting stored rows.
const BlobVersion byte = 0x01

// nonceSize is the AEAD nonce length shared by both supported algorithms.
const nonceSize = 12

// tagSize is the authentication tag length appended to the ciphertext.
const tagSize = 16

// algorithm marker bytes in the blob header.
const (
	blobAlgAESGCM   byte = 0x01
	blobAlgChaCha20 byte = 0x02
)

// EncryptedBlob is the self-describing encrypted payload stored at rest.
//
// Wire layout: version (1 byte) | algorithm (1 byte) | nonce (12 bytes) |
// ciphertext with trailing 16-byte authentication tag. The tag binds both the
// ciphertext and the caller's associated data, so a blob cannot be replayed
// under a different service name.
type EncryptedBlob struct {
	Version    byte
	Algorithm  Algorithm
	Nonce      []byte
	Ciphertext []byte
}

// Encode serializes the blob to its storage representation.
func (eb EncryptedBlob) Encode() []byte {
	out := make([]byte, 0, 2+len(eb.Nonce)+len(eb.Ciphertext))
	out = append(out, eb.Version, algorithmMarker(eb.Algorithm))
	out = append(out, eb.Nonce...)
	out = append(out, eb.Ciphertext...)
	return out
}

// DecodeBlob parses a stored blob. Structural problems (truncation, unknown
// version or algorithm marker) surface as ErrInvalidBlobFormat; tag
// verification happens later during decryption.
func DecodeBlob(data []byte) (EncryptedBlob, error) {
	// Header + nonce + at least the authentication tag.
	if len(data) < 2+nonceSize+tagSize {
		return EncryptedBlob{}, fmt.Errorf(
			"%w: %d bytes is shorter than the minimum envelope", ErrInvalidBlobFormat, len(data),
		)
	}

	version := data[0]
	if version != BlobVersion {
		return EncryptedBlob{}, fmt.Errorf(
			"%w: unknown version 0x%02x", ErrInvalidBlobFormat, version,
		)
	}

	alg, err := algorithmFromMarker(data[1])
	if err != nil {
		return EncryptedBlob{}, err
	}

	return EncryptedBlob{
		Version:    version,
		Algorithm:  alg,
		Nonce:      data[2 : 2+nonceSize],
		Ciphertext: data[2+nonceSize:],
	}, nil
}

func algorithmMarker(alg Algorithm) byte {
	switch alg {
	case ChaCha20:
		return blobAlgChaCha20
	default:
		return blobAlgAESGCM
	}
}

func algorithmFromMarker(marker byte) (Algorithm, error) {
	switch marker {
	case blobAlgAESGCM:
		return AESGCM, nil
	case blobAlgChaCha20:
		return ChaCha20, nil
	default:
		return "", fmt.Errorf("%w: unknown algorithm marker 0x%02x", ErrInvalidBlobFormat, marker)
	}
}
