// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/keyfort/keyfort/internal/errors"
)

var (
	// nameRegex constrains service names and key labels to a safe identifier
	// alphabet that round-trips through URLs without escaping.
	nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
)

// MaxNameLength bounds service names and API key labels.
const MaxNameLength = 128

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Name validates service names and API key labels: a leading alphanumeric
// followed by alphanumerics, dots, underscores or hyphens.
var Name = validation.NewStringRuleWithError(
	func(s string) bool {
		return len(s) <= MaxNameLength && nameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_name",
		"must contain only letters, digits, dots, underscores or hyphens",
	),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
