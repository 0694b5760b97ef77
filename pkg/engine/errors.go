package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by MissingFieldError.
	ErrMissingField = errors.New("markdown value has no parsed tree")

	// ErrUnknownFormat is returned for an output format other than latex, html
	// or plain.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrTemplate is returned when a template cannot be loaded or executed.
	ErrTemplate = errors.New("template error")
)

// MissingFieldError reports a value handed to a markdown_* function that
// does not carry a parsed tree.
type MissingFieldError struct {
	// Format is the requested output format.
	Format string

	// Got describes the offending value.
	Got string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("markdown_%s: markdown text must contain an 'ast' field (got %s)", e.Format, e.Got)
}

// Unwrap returns ErrMissingField.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
