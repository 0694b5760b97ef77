// Package escape converts literal text into format-safe text.
//
// Each escaper is a total function and an ordered pipeline of substitution
// stages. Each stage is a single strings.Replacer pass over disjoint
// characters. A Replacer never rescans its own output, so the braces a stage
// inserts are not escaped by that stage. Later stages only see newlines,
// which no earlier stage introduces.
package escape

import "strings"

// Func is the signature shared by all escapers.
type Func func(text string) string

//nolint:gochecknoglobals // Read-only replacer pipelines.
var (
	// latexSpecials handles the backslash in the same pass as the braces,
	// so the braces of \textbackslash{} are never escaped again.
	latexSpecials = strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"^", `\textasciicircum{}`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
	)

	// Newline stages list the blank-line pattern first: at each position the
	// first matching pattern wins, so only the remaining single newlines
	// become line breaks and the paragraph marker is left intact.
	latexNewlines = strings.NewReplacer(
		"\n\n", "\n\n\\par\n",
		"\n", " \\\\\n",
	)

	htmlEntities = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)

	htmlNewlines = strings.NewReplacer(
		"\n\n", htmlParagraphBreak,
		"\n", "<br>",
	)
)

const htmlParagraphBreak = "</p><p>"

// LaTeX escapes LaTeX special characters and encodes newlines.
// A blank line becomes a \par paragraph break and a single newline a forced
// line break.
//
//	escape.LaTeX(`50% of $5 \ day`) // 50\% of \$5 \textbackslash{} day
func LaTeX(text string) string {
	text = latexSpecials.Replace(text)

	return latexNewlines.Replace(text)
}

// HTML escapes HTML special characters and encodes newlines.
// A blank line becomes a paragraph boundary and a single newline a <br>.
// If any paragraph boundary was produced the whole result is wrapped in
// <p>...</p>.
func HTML(text string) string {
	text = HTMLEntities(text)

	text = htmlNewlines.Replace(text)

	if strings.Contains(text, htmlParagraphBreak) {
		text = "<p>" + text + "</p>"
	}

	return text
}

// HTMLEntities escapes the HTML special characters only, leaving newlines
// untouched.
func HTMLEntities(text string) string {
	return htmlEntities.Replace(text)
}

// Plain returns text unchanged.
func Plain(text string) string {
	return text
}
