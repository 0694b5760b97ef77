package engine

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/pkg/mdast"
	"github.com/yaklabco/cvrender/pkg/render"
)

// astKey is the map key holding a token tree in map-shaped values.
const astKey = "ast"

// ToFormat renders a Markdown value into format ("latex", "html" or
// "plain").
//
// field may be an mdast.Field, a *mdast.Field or a map carrying the tree
// under "ast". A value without a parsed tree fails with *MissingFieldError.
// Tokens outside the supported vocabulary never fail the render: they are
// logged and their children rendered in place.
func (e *Engine) ToFormat(format string, field any) (string, error) {
	f, ok := render.ByName(format)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	tree, err := treeOf(field)
	if err != nil {
		return "", &MissingFieldError{Format: f.Name(), Got: err.Error()}
	}

	e.logger.Debug("Rendering markdown", logging.FieldFormat, f.Name(), logging.FieldTokens, len(tree))

	out := render.Render(f, tree, render.WithUnknownHandler(func(tok mdast.Token, path string) {
		e.logger.Warn("Rendering unsupported markdown node without markup",
			logging.FieldFormat, f.Name(), logging.FieldNodeType, tok.TypeName(), logging.FieldNodePath, path,
			logging.FieldText, mdast.PlainText(tok.Children))
	}))

	e.logger.Debug("Rendered markdown", logging.FieldFormat, f.Name(), logging.FieldChars, len(out))

	return out, nil
}

// treeOf extracts the token tree from a Markdown value. The returned error
// describes what was found instead.
func treeOf(field any) ([]mdast.Token, error) {
	switch v := field.(type) {
	case mdast.Field:
		if !v.HasAST() {
			return nil, fmt.Errorf("unparsed field %q", v.Text)
		}
		return v.AST, nil

	case *mdast.Field:
		if v == nil {
			return nil, errors.New("nil field")
		}
		return treeOf(*v)

	case map[string]any:
		raw, ok := v[astKey]
		if !ok || raw == nil {
			return nil, fmt.Errorf("map without %q key", astKey)
		}
		return decodeTree(raw)

	case nil:
		return nil, errors.New("nil")

	default:
		return nil, fmt.Errorf("%T", field)
	}
}

// decodeTree accepts a typed tree or a generic decoded one (e.g. []any of
// maps from a YAML document) and converts the latter through its YAML form.
func decodeTree(raw any) ([]mdast.Token, error) {
	if tree, ok := raw.([]mdast.Token); ok {
		return tree, nil
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("ast of type %T", raw)
	}

	var tree []mdast.Token
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("ast of type %T", raw)
	}
	if tree == nil {
		tree = []mdast.Token{}
	}

	return tree, nil
}
