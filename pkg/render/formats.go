package render

import (
	"strings"

	"github.com/yaklabco/cvrender/pkg/escape"
)

// Format names.
const (
	NameLaTeX = "latex"
	NameHTML  = "html"
	NamePlain = "plain"
)

// softBreak is shared by every format.
const softBreak = " "

// latexCommentRule is the width of the rule closing a LaTeX comment block.
const latexCommentRule = 60

// LaTeX renders LaTeX source.
type LaTeX struct{}

// Name implements Format.
func (LaTeX) Name() string { return NameLaTeX }

// Paragraph implements Format.
func (LaTeX) Paragraph(children string) string { return children + "\n\n" }

// Text implements Format.
func (LaTeX) Text(raw string) string { return escape.LaTeX(raw) }

// Strong implements Format.
func (LaTeX) Strong(children string) string { return `\textbf{` + children + "}" }

// LineBreak implements Format.
func (LaTeX) LineBreak() string { return " \\\\\n" }

// SoftBreak implements Format.
func (LaTeX) SoftBreak() string { return softBreak }

// Comment renders lines as "% " comments closed by a rule of percent signs.
// Embedded newlines start a new comment line so no text escapes the comment.
func (LaTeX) Comment(lines []string) string {
	var sb strings.Builder
	for _, line := range splitLines(lines) {
		sb.WriteString("% ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat("%", latexCommentRule))
	sb.WriteString("\n\n")
	return sb.String()
}

// HTML renders an HTML fragment.
type HTML struct{}

// Name implements Format.
func (HTML) Name() string { return NameHTML }

// Paragraph implements Format.
func (HTML) Paragraph(children string) string { return "<p>" + children + "</p>\n" }

// Text implements Format.
func (HTML) Text(raw string) string { return escape.HTML(raw) }

// Strong implements Format.
func (HTML) Strong(children string) string { return "<strong>" + children + "</strong>" }

// LineBreak implements Format.
func (HTML) LineBreak() string { return "<br>\n" }

// SoftBreak implements Format.
func (HTML) SoftBreak() string { return softBreak }

// Comment renders lines inside <!-- -->, indented by two spaces.
// Lines are entity-escaped, so "-->" in a line cannot close the comment.
func (HTML) Comment(lines []string) string {
	var sb strings.Builder
	sb.WriteString("<!--\n")
	for _, line := range splitLines(lines) {
		sb.WriteString("  ")
		sb.WriteString(escape.HTMLEntities(line))
		sb.WriteByte('\n')
	}
	sb.WriteString("-->\n\n")
	return sb.String()
}

// Plain renders unformatted text.
type Plain struct{}

// Name implements Format.
func (Plain) Name() string { return NamePlain }

// Paragraph implements Format.
func (Plain) Paragraph(children string) string { return children + "\n\n" }

// Text implements Format.
func (Plain) Text(raw string) string { return escape.Plain(raw) }

// Strong implements Format.
func (Plain) Strong(children string) string { return children }

// LineBreak implements Format.
func (Plain) LineBreak() string { return "\n" }

// SoftBreak implements Format.
func (Plain) SoftBreak() string { return softBreak }

// Comment returns the lines followed by a blank line.
func (Plain) Comment(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(splitLines(lines), "\n") + "\n\n"
}

// splitLines flattens lines, splitting any embedded newlines.
func splitLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\r\n", "\n")
		out = append(out, strings.Split(line, "\n")...)
	}
	return out
}

// ByName returns the format registered under name.
func ByName(name string) (Format, bool) {
	switch strings.ToLower(name) {
	case NameLaTeX, "tex":
		return LaTeX{}, true
	case NameHTML:
		return HTML{}, true
	case NamePlain, "text":
		return Plain{}, true
	default:
		return nil, false
	}
}

// Compile-time interface checks.
var (
	_ Format = LaTeX{}
	_ Format = HTML{}
	_ Format = Plain{}
)
