// Package render walks mdast token trees and renders them into an output
// format.
//
// The tree walk is shared; each output format only supplies the leaf,
// wrapper and comment primitives through the Format interface. Formats hold
// no state, so one instance may be used concurrently for any number of trees.
package render

import (
	"strings"

	"github.com/yaklabco/cvrender/pkg/mdast"
)

// Format supplies the format-specific rendering primitives.
type Format interface {
	// Name returns the format identifier, e.g. "latex".
	Name() string

	// Paragraph wraps the rendered children of a paragraph.
	Paragraph(children string) string

	// Text escapes literal text.
	Text(raw string) string

	// Strong wraps the rendered children of a bold span.
	Strong(children string) string

	// LineBreak returns the hard line break marker.
	LineBreak() string

	// SoftBreak returns the soft line break marker.
	SoftBreak() string

	// Comment renders lines as a format comment block.
	Comment(lines []string) string
}

// UnknownHandler is called when the walk meets a token outside the supported
// vocabulary. path locates the token as in mdast.Walk.
type UnknownHandler func(tok mdast.Token, path string)

// Option configures a single Render call.
type Option func(*walker)

// WithUnknownHandler installs a callback for unsupported tokens.
func WithUnknownHandler(handler UnknownHandler) Option {
	return func(w *walker) {
		w.onUnknown = handler
	}
}

// Render renders tree with format f, concatenating top-level tokens in order.
//
// Trees are expected to be validated with mdast.Validate. An unsupported token
// does not fail the walk: its children are rendered without a wrapper and the
// UnknownHandler, if any, is notified.
func Render(f Format, tree []mdast.Token, opts ...Option) string {
	w := &walker{format: f}
	for _, opt := range opts {
		opt(w)
	}

	var sb strings.Builder
	w.renderTokens(&sb, tree, mdast.RootPath)
	return sb.String()
}

type walker struct {
	format    Format
	onUnknown UnknownHandler
}

func (w *walker) renderTokens(sb *strings.Builder, tokens []mdast.Token, prefix string) {
	for i, tok := range tokens {
		sb.WriteString(w.renderToken(tok, mdast.IndexPath(prefix, i)))
	}
}

func (w *walker) renderChildren(tok mdast.Token, path string) string {
	var sb strings.Builder
	w.renderTokens(&sb, tok.Children, mdast.ChildrenPath(path))
	return sb.String()
}

func (w *walker) renderToken(tok mdast.Token, path string) string {
	switch tok.Kind {
	case mdast.KindParagraph:
		return w.format.Paragraph(w.renderChildren(tok, path))

	case mdast.KindText:
		return w.format.Text(tok.Raw)

	case mdast.KindStrong:
		return w.format.Strong(w.renderChildren(tok, path))

	case mdast.KindLineBreak:
		return w.format.LineBreak()

	case mdast.KindSoftBreak:
		return w.format.SoftBreak()

	default:
		if w.onUnknown != nil {
			w.onUnknown(tok, path)
		}
		return w.renderChildren(tok, path)
	}
}
