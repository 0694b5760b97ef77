package engine

import (
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/lestrrat-go/strftime"

	"github.com/yaklabco/cvrender/pkg/escape"
	"github.com/yaklabco/cvrender/pkg/render"
)

// Template function names.
const (
	FuncMarkdownLaTeX     = "markdown_latex"
	FuncMarkdownHTML      = "markdown_html"
	FuncMarkdownPlain     = "markdown_plain"
	FuncEscapeLaTeX       = "escape_latex"
	FuncEscapeHTML        = "escape_html"
	FuncFormatCurrentTime = "format_current_time"
	FuncNormalizeURL      = "normalize_url"
	FuncURLPath           = "url_path"
	FuncDQuoted           = "dquoted"
	FuncStr               = "str"
)

// Funcs returns the function map installed into every template.
//
// The markdown_* functions take a Markdown field and return rendered markup;
// escape_* take any value and escape its string form.
func (e *Engine) Funcs() template.FuncMap {
	return template.FuncMap{
		FuncMarkdownLaTeX: func(field any) (string, error) {
			return e.ToFormat(render.NameLaTeX, field)
		},
		FuncMarkdownHTML: func(field any) (string, error) {
			return e.ToFormat(render.NameHTML, field)
		},
		FuncMarkdownPlain: func(field any) (string, error) {
			return e.ToFormat(render.NamePlain, field)
		},
		FuncEscapeLaTeX: func(value any) string {
			return escape.LaTeX(Str(value))
		},
		FuncEscapeHTML: func(value any) string {
			return escape.HTML(Str(value))
		},
		FuncFormatCurrentTime: e.FormatCurrentTime,
		FuncNormalizeURL:      NormalizeURL,
		FuncURLPath:           URLPath,
		FuncDQuoted:           DQuoted,
		FuncStr:               Str,
	}
}

// FormatCurrentTime formats the engine clock's current time with a
// strftime-style pattern such as "%Y-%m-%d".
func (e *Engine) FormatCurrentTime(pattern string) (string, error) {
	out, err := strftime.Format(pattern, e.now())
	if err != nil {
		return "", fmt.Errorf("format_current_time %q: %w", pattern, err)
	}
	return out, nil
}

// NormalizeURL drops the query and fragment of rawURL, collapses repeated
// slashes in its path and removes a trailing slash.
//
//	NormalizeURL("https://example.com//a/b/?q=1#top") // https://example.com/a/b
//
// Unparseable input is returned unchanged.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}

	if u.Opaque != "" {
		return u.Scheme + ":" + u.Opaque
	}

	var sb strings.Builder
	if u.Scheme != "" {
		sb.WriteString(u.Scheme)
		sb.WriteByte(':')
	}
	if u.Scheme != "" || u.Host != "" || u.User != nil {
		sb.WriteString("//")
	}
	if u.User != nil {
		sb.WriteString(u.User.String())
		sb.WriteByte('@')
	}
	sb.WriteString(u.Host)
	sb.WriteString(cleanPath(u.EscapedPath()))

	return sb.String()
}

// URLPath returns the normalized path of rawURL, or "/" when it has none.
//
//	URLPath("https://example.com/cv/?lang=en") // /cv
func URLPath(rawURL string) string {
	u, err := url.Parse(NormalizeURL(rawURL))
	if err != nil || u.EscapedPath() == "" {
		return "/"
	}
	return u.EscapedPath()
}

// cleanPath collapses runs of slashes and trims a trailing slash.
func cleanPath(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return strings.TrimRight(path, "/")
}

// DQuoted wraps the string form of value in double quotes.
func DQuoted(value any) string {
	return `"` + Str(value) + `"`
}

// Str returns the string form of value. Markdown fields yield their source
// text and nil yields "".
func Str(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
