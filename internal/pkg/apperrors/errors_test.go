package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorWrapsSentinel(t *testing.T) {
	err := fmt.Errorf("logging intervention: %w", NewValidationError("Please fill in all required fields."))

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "Please fill in all required fields.", UserMessage(err))
	assert.Equal(t, "", UserMessage(ErrStudentNotFound))
}

func TestIsMatchesAnyOfList(t *testing.T) {
	err := fmt.Errorf("lookup: %w", ErrStudentNotFound)

	assert.True(t, Is(err, ErrResourceNotFound, ErrStudentNotFound))
	assert.False(t, Is(err, ErrResourceNotFound, ErrSessionNotFound))
}

func TestCustomErrorFallbackMessage(t *testing.T) {
	assert.Equal(t, "validation failed", (&CustomError{Err: ErrValidationFailed}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}
