package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_StatusCodes(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name   string
		err    *AppError
		typ    ErrorType
		status int
	}{
		{"validation", NewValidationError("bad input"), ErrorTypeValidation, http.StatusBadRequest},
		{"processing", NewProcessingError("failed to open PDF", cause), ErrorTypeProcessing, http.StatusUnprocessableEntity},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"too large", NewTooLargeError("file too large", 10), ErrorTypeTooLarge, http.StatusRequestEntityTooLarge},
		{"internal", NewInternalError("render failed", cause), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.err.Type)
			assert.Equal(t, tt.status, GetStatusCode(tt.err))
			assert.True(t, IsType(tt.err, tt.typ))
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("missing %PDF header")
	err := NewProcessingError("failed to open PDF", cause)

	assert.Equal(t, "processing: failed to open PDF", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to open PDF: missing %PDF header", err.UserMessage())

	withDetails := NewValidationError("invalid render parameters", "width: must be between 300 and 1000")
	assert.Equal(t, "validation: invalid render parameters (width: must be between 300 and 1000)", withDetails.Error())
	assert.Equal(t, "invalid render parameters: width: must be between 300 and 1000", withDetails.UserMessage())

	assert.Equal(t, "missing", NewNotFoundError("missing").UserMessage())
}

func TestWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("analyze: %w", NewTooLargeError("file too large", 1024))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "limit is 1024 bytes", appErr.Details)
	assert.Equal(t, http.StatusRequestEntityTooLarge, GetStatusCode(wrapped))
	assert.True(t, IsType(wrapped, ErrorTypeTooLarge))
}

func TestPlainError(t *testing.T) {
	plain := errors.New("plain")

	_, ok := As(plain)
	assert.False(t, ok)
	assert.False(t, IsType(plain, ErrorTypeInternal))
	assert.Equal(t, http.StatusInternalServerError, GetStatusCode(plain))
}

func TestUserMessagePrefersDetails(t *testing.T) {
	err := NewTooLargeError("File too large", 16)
	err.Cause = fmt.Errorf("sentinel")

	assert.Equal(t, "File too large: limit is 16 bytes", err.UserMessage())
}
