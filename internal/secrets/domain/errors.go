package domain

import (
	"github.com/keyfort/keyfort/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrSecretNotFound indicates no secret exists under the given service name.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrVersionConflict indicates the caller's expected version does not match
	// the stored version. The write is rejected without modifying the record.
	ErrVersionConflict = errors.Wrap(errors.ErrConflict, "version conflict")
)
