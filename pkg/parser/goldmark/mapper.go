package goldmark

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/cvrender/pkg/mdast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

// Type names reported for goldmark nodes outside the supported vocabulary.
const (
	typeHeading       = "heading"
	typeList          = "list"
	typeListItem      = "list_item"
	typeBlockText     = "block_text"
	typeBlockQuote    = "block_quote"
	typeBlockCode     = "block_code"
	typeThematicBreak = "thematic_break"
	typeBlockHTML     = "block_html"
	typeEmphasis      = "emphasis"
	typeCodeSpan      = "codespan"
	typeLink          = "link"
	typeImage         = "image"
	typeInlineHTML    = "inline_html"
	typeStrikethrough = "strikethrough"
	typeTaskCheckBox  = "task_checkbox"
	typeTable         = "table"
	typeTableHead     = "table_head"
	typeTableRow      = "table_row"
	typeTableCell     = "table_cell"
)

// mapper converts a goldmark AST into an mdast token tree.
type mapper struct {
	content []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node into top-level tokens.
// The result is never nil.
func (m *mapper) mapDocument(gmDoc ast.Node) []mdast.Token {
	tokens := m.mapChildren(gmDoc)
	if tokens == nil {
		tokens = []mdast.Token{}
	}
	return tokens
}

// mapChildren maps all children of a goldmark node.
// Runs of adjacent text are merged into a single text token.
func (m *mapper) mapChildren(gmParent ast.Node) []mdast.Token {
	var b inlineBuilder

	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		switch gmn := child.(type) {
		case *ast.Text:
			m.mapText(&b, gmn)

		case *ast.String:
			b.decoded(string(gmn.Value))

		default:
			b.add(m.mapNode(child))
		}
	}

	return b.finish()
}

// mapNode converts a single non-text goldmark node to a token.
func (m *mapper) mapNode(gmNode ast.Node) mdast.Token {
	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Paragraph:
		return mdast.Paragraph(m.mapChildren(gmNode)...)

	case *ast.Heading:
		return mdast.Unknown(typeHeading, m.mapChildren(gmNode)...)

	case *ast.List:
		return mdast.Unknown(typeList, m.mapChildren(gmNode)...)

	case *ast.ListItem:
		return mdast.Unknown(typeListItem, m.mapChildren(gmNode)...)

	case *ast.TextBlock:
		return mdast.Unknown(typeBlockText, m.mapChildren(gmNode)...)

	case *ast.Blockquote:
		return mdast.Unknown(typeBlockQuote, m.mapChildren(gmNode)...)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return mdast.Unknown(typeBlockCode)

	case *ast.ThematicBreak:
		return mdast.Unknown(typeThematicBreak)

	case *ast.HTMLBlock:
		return mdast.Unknown(typeBlockHTML)

	// Inline-level nodes.
	case *ast.Emphasis:
		return m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		return mdast.Unknown(typeCodeSpan, m.mapChildren(gmNode)...)

	case *ast.Link:
		return mdast.Unknown(typeLink, m.mapChildren(gmNode)...)

	case *ast.Image:
		return mdast.Unknown(typeImage, m.mapChildren(gmNode)...)

	case *ast.AutoLink:
		return mdast.Unknown(typeLink, mdast.Text(string(gmn.Label(m.content))))

	case *ast.RawHTML:
		return mdast.Unknown(typeInlineHTML)

	// GFM extension nodes.
	case *east.Strikethrough:
		return mdast.Unknown(typeStrikethrough, m.mapChildren(gmNode)...)

	case *east.TaskCheckBox:
		return mdast.Unknown(typeTaskCheckBox)

	case *east.Table:
		return mdast.Unknown(typeTable, m.mapChildren(gmNode)...)

	case *east.TableHeader:
		return mdast.Unknown(typeTableHead, m.mapChildren(gmNode)...)

	case *east.TableRow:
		return mdast.Unknown(typeTableRow, m.mapChildren(gmNode)...)

	case *east.TableCell:
		return mdast.Unknown(typeTableCell, m.mapChildren(gmNode)...)

	default:
		// Fallback for unknown node types.
		return mdast.Unknown(strings.ToLower(gmNode.Kind().String()), m.mapChildren(gmNode)...)
	}
}

// mapText appends a goldmark Text node, followed by its line break if any.
// goldmark reports breaks as flags on the preceding text segment.
func (m *mapper) mapText(b *inlineBuilder, textNode *ast.Text) {
	value := textNode.Segment.Value(m.content)
	if textNode.HardLineBreak() || textNode.SoftLineBreak() {
		value = util.TrimRightSpace(value)
	}

	if textNode.IsRaw() {
		b.decoded(string(value))
	} else {
		b.source(value)
	}

	switch {
	case textNode.HardLineBreak():
		b.add(mdast.LineBreak())
	case textNode.SoftLineBreak():
		b.add(mdast.SoftBreak())
	}
}

// mapEmphasis converts a goldmark Emphasis node. Only level 2 (strong) is
// part of the supported vocabulary.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) mdast.Token {
	children := m.mapChildren(emphasis)
	if emphasis.Level == 2 {
		return mdast.Strong(children...)
	}
	return mdast.Unknown(typeEmphasis, children...)
}

// inlineBuilder accumulates sibling tokens, merging adjacent text.
type inlineBuilder struct {
	tokens  []mdast.Token
	pending []byte
}

// source queues undecoded Markdown text.
func (b *inlineBuilder) source(value []byte) {
	b.pending = append(b.pending, value...)
}

// decoded appends text that needs no further decoding.
func (b *inlineBuilder) decoded(value string) {
	b.flush()
	if value == "" {
		return
	}
	b.appendText(value)
}

// add appends a non-text token.
func (b *inlineBuilder) add(tok mdast.Token) {
	b.flush()
	b.tokens = append(b.tokens, tok)
}

// finish flushes pending text and returns the tokens.
func (b *inlineBuilder) finish() []mdast.Token {
	b.flush()
	return b.tokens
}

// flush decodes queued Markdown text and appends it.
func (b *inlineBuilder) flush() {
	if len(b.pending) == 0 {
		return
	}

	value := decodeText(b.pending)
	b.pending = nil

	if len(value) > 0 {
		b.appendText(string(value))
	}
}

// decodeText resolves backslash escapes and character references in a
// single pass over source. Decoded output is never decoded again, so
// `\&amp;` stays the literal text "&amp;".
func decodeText(source []byte) []byte {
	out := make([]byte, 0, len(source))
	limit := len(source)

	for i := 0; i < limit; i++ {
		c := source[i]

		if c == '\\' && i+1 < limit && util.IsPunct(source[i+1]) {
			out = append(out, source[i+1])
			i++
			continue
		}

		if c == '&' {
			if r, end, ok := readReference(source, i); ok {
				out = append(out, r...)
				i = end
				continue
			}
		}

		out = append(out, c)
	}

	return out
}

// readReference decodes the entity or numeric character reference starting
// at source[pos], which is '&'. It returns the decoded bytes and the index
// of the closing ';'.
func readReference(source []byte, pos int) ([]byte, int, bool) {
	limit := len(source)
	next := pos + 1
	if next >= limit {
		return nil, 0, false
	}

	if source[next] != '#' {
		end, ok := util.ReadWhile(source, [2]int{next, limit}, util.IsAlphaNumeric)
		if !ok || end >= limit || source[end] != ';' {
			return nil, 0, false
		}
		entity, found := util.LookUpHTML5EntityByName(string(source[next:end]))
		if !found {
			return nil, 0, false
		}
		return entity.Characters, end, true
	}

	start, base, maxDigits, isDigit := next+1, 10, 7, util.IsNumeric
	if start < limit && (source[start] == 'x' || source[start] == 'X') {
		start, base, maxDigits, isDigit = start+1, 16, 6, util.IsHexDecimal
	}

	end, ok := util.ReadWhile(source, [2]int{start, limit}, isDigit)
	if !ok || end >= limit || source[end] != ';' || end-start > maxDigits {
		return nil, 0, false
	}

	v, err := strconv.ParseUint(string(source[start:end]), base, 32)
	if err != nil {
		return nil, 0, false
	}
	return utf8.AppendRune(nil, util.ToValidRune(rune(v))), end, true
}

func (b *inlineBuilder) appendText(value string) {
	if n := len(b.tokens); n > 0 && b.tokens[n-1].Kind == mdast.KindText {
		b.tokens[n-1].Raw += value
		return
	}
	b.tokens = append(b.tokens, mdast.Text(value))
}
