// Package goldmark provides an mdast.Parser implementation using the goldmark library.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/cvrender/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser implements mdast.Parser using goldmark. It is safe for concurrent
// use; every Parse call gets its own goldmark parser context.
type Parser struct {
	flavor string
	parser parser.Parser
}

// New creates a parser for flavor, "commonmark" or "gfm". Any other value
// selects CommonMark. GFM adds tables, strikethrough, autolinks and task
// lists to the grammar, all of which end up as unsupported markup.
func New(flavor string) *Parser {
	var opts []goldmark.Option
	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	default:
		flavor = FlavorCommonMark
	}

	return &Parser{
		flavor: flavor,
		parser: goldmark.New(opts...).Parser(),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts Markdown source into an unvalidated token tree.
func (p *Parser) Parse(source string) ([]mdast.Token, error) {
	return p.ParseContext(context.Background(), source)
}

// ParseContext is Parse with cancellation.
//
// The returned tree mirrors the goldmark document: nodes outside the
// paragraph/text/strong/break vocabulary are kept as mdast.KindUnknown with
// their type name, so mdast.Validate can reject them with a precise path.
func (p *Parser) ParseContext(ctx context.Context, source string) ([]mdast.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	content := []byte(source)
	gmDoc := p.parser.Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return newMapper(content).mapDocument(gmDoc), nil
}

// Compile-time interface check.
var _ mdast.Parser = (*Parser)(nil)
