package mdast

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedMarkup is the sentinel wrapped by UnsupportedMarkupError.
var ErrUnsupportedMarkup = errors.New("unsupported markdown markup")

// UnsupportedMarkupError reports a token outside the supported vocabulary.
type UnsupportedMarkupError struct {
	// Type is the offending type name.
	Type string

	// Path locates the token, e.g. "root[1].children[0]".
	Path string
}

// Error implements the error interface.
func (e *UnsupportedMarkupError) Error() string {
	return fmt.Sprintf("unsupported markdown markup %q found at %s; supported markup: %s",
		e.Type, e.Path, strings.Join(SupportedTypes(), ", "))
}

// Unwrap returns ErrUnsupportedMarkup.
func (e *UnsupportedMarkupError) Unwrap() error {
	return ErrUnsupportedMarkup
}

// Validate checks that every token in tree, at any depth, is of a supported
// kind. It returns tree unchanged on success. The first unsupported token in
// pre-order fails the whole tree with an *UnsupportedMarkupError.
func Validate(tree []Token) ([]Token, error) {
	err := Walk(tree, func(tok Token, path string) error {
		if tok.Kind == KindUnknown {
			return &UnsupportedMarkupError{Type: tok.TypeName(), Path: path}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tree, nil
}
