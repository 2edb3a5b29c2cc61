// Package domain defines the cryptographic domain model: the master key
// record, supported AEAD algorithms, and the encrypted blob codec.
package domain

import (
	"fmt"
	"time"

	apperrors "github.com/keyfort/keyfort/internal/errors"
)

// MasterKey is the root symmetric key under which all secret payloads are
// encrypted. Exactly one record exists; it is created once on first run, read
// many times, and never deleted in normal operation. The key material stays in
// process memory after load and is never serialized or logged.
//
// Custody note: the key lives in the same store as the secrets it protects,
// guarded only by filesystem and process permissions. This matches the
// deployment's trust boundary; any stronger custody (HSM, envelope wrapping)
// is out of scope for this version.
type MasterKey struct {
	Key       []byte
	CreatedAt time.Time
}

// Validate performs the integrity/length check applied at load time. A failure
// is fatal at startup: serving requests under an unverifiable root key would
// silently corrupt every payload written.
func (m *MasterKey) Validate() error {
	if len(m.Key) != MasterKeySize {
		return fmt.Errorf(
			"%w: expected %d bytes, got %d",
			apperrors.ErrCorruptKeyMaterial,
			MasterKeySize,
			len(m.Key),
		)
	}
	return nil
}

// Close clears the key material from memory.
func (m *MasterKey) Close() {
	Zero(m.Key)
	m.Key = nil
}
