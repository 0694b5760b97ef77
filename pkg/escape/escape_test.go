package escape_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/cvrender/pkg/escape"
)

func TestLaTeX(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "no specials", input: "Plain words here", want: "Plain words here"},
		{name: "ampersand", input: "Hello & welcome", want: `Hello \& welcome`},
		{name: "percent", input: "100%", want: `100\%`},
		{name: "dollar", input: "$5", want: `\$5`},
		{name: "hash", input: "#1", want: `\#1`},
		{name: "caret", input: "x^2", want: `x\textasciicircum{}2`},
		{name: "underscore", input: "snake_case", want: `snake\_case`},
		{name: "braces", input: "{x}", want: `\{x\}`},
		{name: "tilde", input: "~home", want: `\textasciitilde{}home`},
		{name: "backslash", input: `a\b`, want: `a\textbackslash{}b`},
		{name: "backslash before brace", input: `\{`, want: `\textbackslash{}\{`},
		{name: "backslash before underscore", input: `\_`, want: `\textbackslash{}\_`},
		{name: "latex command", input: `\textbf{x}`, want: `\textbackslash{}textbf\{x\}`},
		{name: "backslash among specials", input: `50% of $5 \ day`, want: `50\% of \$5 \textbackslash{} day`},
		{name: "single newline", input: "a\nb", want: "a \\\\\nb"},
		{name: "double newline", input: "a\n\nb", want: "a\n\n\\par\nb"},
		{name: "triple newline", input: "a\n\n\nb", want: "a\n\n\\par\n \\\\\nb"},
		{
			name:  "mixed",
			input: "R&D: 50% of $budget\nnext_line",
			want:  "R\\&D: 50\\% of \\$budget \\\\\nnext\\_line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, escape.LaTeX(tt.input))
		})
	}
}

func TestLaTeX_BackslashBracesNotReescaped(t *testing.T) {
	t.Parallel()

	got := escape.LaTeX(`a\b`)
	assert.Contains(t, got, `\textbackslash{}b`)
	assert.NotContains(t, got, `\textbackslash\{\}`)
	assert.NotContains(t, got, `\textbackslash{}\}`)
}

func TestLaTeX_ParagraphMarkerIntact(t *testing.T) {
	t.Parallel()

	got := escape.LaTeX("first\n\nsecond\nthird")
	assert.Equal(t, "first\n\n\\par\nsecond \\\\\nthird", got)
	assert.Equal(t, 1, strings.Count(got, `\par`))
}

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "no specials", input: "Plain words", want: "Plain words"},
		{name: "ampersand", input: "Hello & welcome", want: "Hello &amp; welcome"},
		{name: "angle brackets", input: "<b>", want: "&lt;b&gt;"},
		{name: "double quote", input: `say "hi"`, want: "say &quot;hi&quot;"},
		{name: "single quote", input: "it's", want: "it&#x27;s"},
		{name: "existing entity", input: "&amp;", want: "&amp;amp;"},
		{name: "single newline", input: "a\nb", want: "a<br>b"},
		{name: "paragraphs", input: "line1\n\nline2", want: "<p>line1</p><p>line2</p>"},
		{name: "paragraphs and lines", input: "a\nb\n\nc", want: "<p>a<br>b</p><p>c</p>"},
		{name: "three paragraphs", input: "a\n\nb\n\nc", want: "<p>a</p><p>b</p><p>c</p>"},
		{name: "literal paragraph markup is escaped", input: "</p><p>", want: "&lt;/p&gt;&lt;p&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, escape.HTML(tt.input))
		})
	}
}

func TestHTML_WrapsOnce(t *testing.T) {
	t.Parallel()

	got := escape.HTML("a\n\nb\n\nc")
	assert.True(t, strings.HasPrefix(got, "<p>"))
	assert.False(t, strings.HasPrefix(got, "<p><p>"))
	assert.Equal(t, 1, strings.Count(got, "<p>a"))
}

func TestHTMLEntities_KeepsNewlines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a &amp; b\n\nc", escape.HTMLEntities("a & b\n\nc"))
}

func TestPlain(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "a & b", "x\n\ny", `\textbf{}`, "<p>"} {
		assert.Equal(t, input, escape.Plain(input))
	}
}
