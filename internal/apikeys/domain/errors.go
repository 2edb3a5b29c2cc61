package domain

import (
	"github.com/keyfort/keyfort/internal/errors"
)

// API key error definitions.
var (
	// ErrAPIKeyNotFound indicates no key record exists under the given label.
	ErrAPIKeyNotFound = errors.Wrap(errors.ErrNotFound, "api key not found")

	// ErrDuplicateLabel indicates a key with the same label already exists.
	ErrDuplicateLabel = errors.Wrap(errors.ErrConflict, "duplicate api key label")
)
