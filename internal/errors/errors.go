// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate label
	// or a stale expected version on update).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthenticationFailed indicates an unverifiable claim: a presented
	// credential that matches no active principal, or ciphertext whose
	// authentication tag does not verify. Both conditions share this kind;
	// neither is retryable and neither discloses which check failed.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = fmt.Errorf("unauthorized: %w", ErrAuthenticationFailed)

	// ErrStorage indicates the durable store is unreachable or failed after
	// internal retries were exhausted.
	ErrStorage = errors.New("storage error")

	// ErrPoolExhausted indicates no connection slot became available within the
	// configured acquire timeout.
	ErrPoolExhausted = fmt.Errorf("connection pool exhausted: %w", ErrStorage)

	// ErrDecode indicates a stored payload is structurally malformed.
	ErrDecode = errors.New("malformed payload")

	// ErrCorruptKeyMaterial indicates the persisted master key failed an
	// integrity check. Fatal at startup; the service must not serve requests
	// under an unverifiable root key.
	ErrCorruptKeyMaterial = errors.New("corrupt master key material")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
