package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/keyfort/keyfort/internal/errors"
	"github.com/keyfort/keyfort/internal/validation"
)

func TestName(t *testing.T) {
	valid := []string{
		"web_service",
		"db-service",
		"api.v2",
		"Service01",
		"a",
	}
	for _, name := range valid {
		assert.NoError(t, validation.Name.Validate(name), name)
	}

	invalid := []string{
		"",
		"-leading-dash",
		".leading-dot",
		"_leading_underscore",
		"has space",
		"path/traversal",
		"emojiéè",
		strings.Repeat("a", validation.MaxNameLength+1),
	}
	for _, name := range invalid {
		assert.Error(t, validation.Name.Validate(name), name)
	}

	assert.NoError(t, validation.Name.Validate(strings.Repeat("a", validation.MaxNameLength)))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.NotBlank.Validate("value"))
	assert.Error(t, validation.NotBlank.Validate(""))
	assert.Error(t, validation.NotBlank.Validate("   "))
	assert.Error(t, validation.NotBlank.Validate("\t\n"))
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, validation.WrapValidationError(nil))

	err := validation.WrapValidationError(validation.Name.Validate("has space"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
