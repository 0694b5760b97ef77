// Package mdast defines the restricted Markdown token tree used by cvrender.
//
// A tree is a slice of top-level Tokens. Only five kinds of node are
// supported: paragraph, text, strong, linebreak and softbreak. Anything a
// parser produces outside that vocabulary is carried as KindUnknown with its
// original type name, so Validate can report it precisely.
package mdast

// Kind classifies a token in the restricted Markdown vocabulary.
type Kind uint8

// Token kinds. KindUnknown is never valid in a validated tree.
const (
	KindUnknown Kind = iota
	KindParagraph
	KindText
	KindStrong
	KindLineBreak
	KindSoftBreak
)

// Canonical type names as they appear in serialized trees.
const (
	TypeParagraph = "paragraph"
	TypeText      = "text"
	TypeStrong    = "strong"
	TypeLineBreak = "linebreak"
	TypeSoftBreak = "softbreak"
)

// String returns the canonical type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return TypeParagraph
	case KindText:
		return TypeText
	case KindStrong:
		return TypeStrong
	case KindLineBreak:
		return TypeLineBreak
	case KindSoftBreak:
		return TypeSoftBreak
	default:
		return "unknown"
	}
}

// KindOf maps a type name to its Kind. Unrecognized names map to KindUnknown.
func KindOf(typeName string) Kind {
	switch typeName {
	case TypeParagraph:
		return KindParagraph
	case TypeText:
		return KindText
	case TypeStrong:
		return KindStrong
	case TypeLineBreak:
		return KindLineBreak
	case TypeSoftBreak:
		return KindSoftBreak
	default:
		return KindUnknown
	}
}

// SupportedTypes returns the supported type names in sorted order.
func SupportedTypes() []string {
	return []string{TypeLineBreak, TypeParagraph, TypeSoftBreak, TypeStrong, TypeText}
}

// Token is a single node of the Markdown tree.
type Token struct {
	// Kind identifies the node type.
	Kind Kind

	// Type is the type name reported by the producer. For supported kinds it
	// equals Kind.String(); for KindUnknown it preserves the original name
	// (e.g. "heading") for error reporting.
	Type string

	// Raw is the literal text of a KindText token.
	Raw string

	// Children holds nested tokens of container kinds.
	Children []Token
}

// TypeName returns the token's type name, falling back to the kind name.
func (t Token) TypeName() string {
	if t.Type != "" {
		return t.Type
	}
	return t.Kind.String()
}

// HasChildren returns true if the token has any children.
func (t Token) HasChildren() bool {
	return len(t.Children) > 0
}

// Paragraph creates a paragraph token with the given children.
func Paragraph(children ...Token) Token {
	return Token{Kind: KindParagraph, Type: TypeParagraph, Children: children}
}

// Text creates a text token.
func Text(raw string) Token {
	return Token{Kind: KindText, Type: TypeText, Raw: raw}
}

// Strong creates a strong (bold) token with the given children.
func Strong(children ...Token) Token {
	return Token{Kind: KindStrong, Type: TypeStrong, Children: children}
}

// LineBreak creates a hard line break token.
func LineBreak() Token {
	return Token{Kind: KindLineBreak, Type: TypeLineBreak}
}

// SoftBreak creates a soft line break token.
func SoftBreak() Token {
	return Token{Kind: KindSoftBreak, Type: TypeSoftBreak}
}

// Unknown creates a token outside the supported vocabulary.
func Unknown(typeName string, children ...Token) Token {
	return Token{Kind: KindUnknown, Type: typeName, Children: children}
}
