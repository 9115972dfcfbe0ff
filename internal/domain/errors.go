package domain

import "errors"

// Domain errors
var (
	ErrInvalidFile          = errors.New("invalid file")
	ErrFileRequired         = errors.New("file is required")
	ErrFileTooLarge         = errors.New("file too large")
	ErrUnknownVisualization = errors.New("unknown visualization")
	ErrUnknownPDFEngine     = errors.New("unknown pdf engine")
	ErrNothingToRender      = errors.New("nothing to render")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
