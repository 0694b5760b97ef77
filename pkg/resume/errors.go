package resume

import "errors"

var (
	// ErrInvalidData is returned when resume data fails schema validation.
	ErrInvalidData = errors.New("invalid resume data")

	// ErrReadData is returned when the resume file cannot be read or decoded.
	ErrReadData = errors.New("cannot read resume data")
)
