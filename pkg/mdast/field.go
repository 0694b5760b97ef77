package mdast

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyText is returned when a field's text is empty after trimming.
var ErrEmptyText = errors.New("markdown text cannot be empty")

// Parser turns Markdown source into a token tree.
// The tree is not expected to be validated; NewField does that.
type Parser interface {
	Parse(source string) ([]Token, error)
}

// Field pairs Markdown source text with its validated token tree.
// Construct it with NewField or FieldFromTree; a zero Field has no tree.
type Field struct {
	// Text is the whitespace-stripped source text.
	Text string

	// AST is the validated token tree. It is non-nil for constructed fields.
	AST []Token

	// supplied holds a decoded but not yet validated tree.
	supplied []Token
}

// NewField trims text, parses it with parser and validates the result.
func NewField(parser Parser, text string) (Field, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Field{}, ErrEmptyText
	}

	tree, err := parser.Parse(text)
	if err != nil {
		return Field{}, fmt.Errorf("parse markdown: %w", err)
	}

	return FieldFromTree(text, tree)
}

// FieldFromTree builds a Field from an already-supplied tree.
// The tree is validated; text is trimmed and must not be empty.
func FieldFromTree(text string, tree []Token) (Field, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Field{}, ErrEmptyText
	}

	valid, err := Validate(tree)
	if err != nil {
		return Field{}, err
	}
	if valid == nil {
		valid = []Token{}
	}

	return Field{Text: text, AST: valid}, nil
}

// HasAST reports whether the field carries a parsed tree.
func (f Field) HasAST() bool {
	return f.AST != nil
}

// String returns the source text.
func (f Field) String() string {
	return f.Text
}
