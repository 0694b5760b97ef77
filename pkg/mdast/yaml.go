package mdast

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnresolvedField is returned by Resolve when no parser is available for
// a field given as plain text.
var ErrUnresolvedField = errors.New("markdown field has no parser")

// tokenDoc is the serialized form of a Token.
type tokenDoc struct {
	Type     string  `yaml:"type" json:"type"`
	Raw      string  `yaml:"raw,omitempty" json:"raw,omitempty"`
	Children []Token `yaml:"children,omitempty" json:"children,omitempty"`
}

// UnmarshalYAML decodes a token from {type, raw, children}.
func (t *Token) UnmarshalYAML(value *yaml.Node) error {
	var doc tokenDoc
	if err := value.Decode(&doc); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}

	t.Kind = KindOf(doc.Type)
	t.Type = doc.Type
	t.Raw = doc.Raw
	t.Children = doc.Children
	return nil
}

// MarshalYAML encodes a token as {type, raw, children}.
func (t Token) MarshalYAML() (any, error) {
	return tokenDoc{Type: t.TypeName(), Raw: t.Raw, Children: t.Children}, nil
}

// fieldDoc is the mapping form of a Field.
type fieldDoc struct {
	Text string   `yaml:"text"`
	AST  *[]Token `yaml:"ast"`
}

// UnmarshalYAML accepts either a scalar Markdown string or a mapping
// {text, ast}. The decoded field is unresolved: its tree is only parsed or
// validated by Resolve, so a field that skipped resolution has no AST.
func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	*f = Field{}

	switch value.Kind {
	case yaml.ScalarNode:
		f.Text = value.Value
		return nil

	case yaml.MappingNode:
		var doc fieldDoc
		if err := value.Decode(&doc); err != nil {
			return fmt.Errorf("decode markdown field: %w", err)
		}
		f.Text = doc.Text
		if doc.AST != nil {
			f.supplied = *doc.AST
			if f.supplied == nil {
				f.supplied = []Token{}
			}
		}
		return nil

	default:
		return fmt.Errorf("line %d: markdown field must be a string or a {text, ast} mapping", value.Line)
	}
}

// MarshalYAML encodes the field as {text, ast}.
func (f Field) MarshalYAML() (any, error) {
	tree := f.AST
	return fieldDoc{Text: f.Text, AST: &tree}, nil
}

// Resolve completes a decoded field: a supplied tree is validated, otherwise
// the text is parsed with parser. Fields that already carry an AST are left
// unchanged.
func (f *Field) Resolve(parser Parser) error {
	if f.HasAST() {
		return nil
	}

	var (
		resolved Field
		err      error
	)

	if f.supplied != nil {
		resolved, err = FieldFromTree(f.Text, f.supplied)
	} else {
		if parser == nil {
			return ErrUnresolvedField
		}
		resolved, err = NewField(parser, f.Text)
	}
	if err != nil {
		return err
	}

	*f = resolved
	return nil
}
