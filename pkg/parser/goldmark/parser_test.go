package goldmark

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/yaklabco/cvrender/pkg/mdast"
)

func TestParser_New(t *testing.T) {
	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.flavor)

			if p.Flavor() != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", p.Flavor(), tt.wantFlavor)
			}
		})
	}
}

func TestParser_Parse_Supported(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []mdast.Token
	}{
		{
			name:   "plain paragraph",
			source: "Hello & welcome",
			want:   []mdast.Token{mdast.Paragraph(mdast.Text("Hello & welcome"))},
		},
		{
			name:   "strong",
			source: "Led **5** engineers",
			want: []mdast.Token{mdast.Paragraph(
				mdast.Text("Led "),
				mdast.Strong(mdast.Text("5")),
				mdast.Text(" engineers"),
			)},
		},
		{
			name:   "strong with underscores",
			source: "__bold__",
			want:   []mdast.Token{mdast.Paragraph(mdast.Strong(mdast.Text("bold")))},
		},
		{
			name:   "soft break",
			source: "first\nsecond",
			want: []mdast.Token{mdast.Paragraph(
				mdast.Text("first"),
				mdast.SoftBreak(),
				mdast.Text("second"),
			)},
		},
		{
			name:   "hard break with spaces",
			source: "line1  \nline2",
			want: []mdast.Token{mdast.Paragraph(
				mdast.Text("line1"),
				mdast.LineBreak(),
				mdast.Text("line2"),
			)},
		},
		{
			name:   "hard break with backslash",
			source: "line1\\\nline2",
			want: []mdast.Token{mdast.Paragraph(
				mdast.Text("line1"),
				mdast.LineBreak(),
				mdast.Text("line2"),
			)},
		},
		{
			name:   "two paragraphs",
			source: "one\n\ntwo",
			want: []mdast.Token{
				mdast.Paragraph(mdast.Text("one")),
				mdast.Paragraph(mdast.Text("two")),
			},
		},
		{
			name:   "escaped punctuation",
			source: `a \*b\* c`,
			want:   []mdast.Token{mdast.Paragraph(mdast.Text("a *b* c"))},
		},
		{
			name:   "entity reference",
			source: "AT&amp;T &#36;5",
			want:   []mdast.Token{mdast.Paragraph(mdast.Text("AT&T $5"))},
		},
		{
			name:   "escaped ampersand keeps entity text",
			source: "\\&amp; x",
			want:   []mdast.Token{mdast.Paragraph(mdast.Text("&amp; x"))},
		},
		{
			name:   "numeric reference is decoded once",
			source: "&#38;amp; y",
			want:   []mdast.Token{mdast.Paragraph(mdast.Text("&amp; y"))},
		},
		{
			name:   "hex reference",
			source: "&#x41;BC",
			want:   []mdast.Token{mdast.Paragraph(mdast.Text("ABC"))},
		},
		{
			name:   "unknown entity kept",
			source: "&nosuch; z",
			want:   []mdast.Token{mdast.Paragraph(mdast.Text("&nosuch; z"))},
		},
		{
			name:   "empty source",
			source: "",
			want:   []mdast.Token{},
		},
	}

	p := New(FlavorCommonMark)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.source)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}

			if _, err := mdast.Validate(got); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestParser_Parse_Unsupported(t *testing.T) {
	tests := []struct {
		name     string
		flavor   string
		source   string
		wantType string
		wantPath string
	}{
		{"heading", FlavorCommonMark, "# Title", "heading", "root[0]"},
		{"list", FlavorCommonMark, "- item", "list", "root[0]"},
		{"emphasis", FlavorCommonMark, "some *em* text", "emphasis", "root[0].children[1]"},
		{"strong emphasis", FlavorCommonMark, "***both***", "emphasis", "root[0].children[0]"},
		{"link", FlavorCommonMark, "[site](https://example.com)", "link", "root[0].children[0]"},
		{"autolink", FlavorCommonMark, "<https://example.com>", "link", "root[0].children[0]"},
		{"image", FlavorCommonMark, "![alt](img.png)", "image", "root[0].children[0]"},
		{"code span", FlavorCommonMark, "use `go`", "codespan", "root[0].children[1]"},
		{"fenced code", FlavorCommonMark, "```\ncode\n```", "block_code", "root[0]"},
		{"blockquote", FlavorCommonMark, "> quoted", "block_quote", "root[0]"},
		{"thematic break", FlavorCommonMark, "a\n\n---", "thematic_break", "root[1]"},
		{"inline html", FlavorCommonMark, "a <b>x</b>", "inline_html", "root[0].children[1]"},
		{"strikethrough", FlavorGFM, "~~gone~~", "strikethrough", "root[0].children[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := New(tt.flavor).Parse(tt.source)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			_, err = mdast.Validate(tree)

			var markupErr *mdast.UnsupportedMarkupError
			if !errors.As(err, &markupErr) {
				t.Fatalf("Validate() error = %v, want UnsupportedMarkupError", err)
			}
			if markupErr.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", markupErr.Type, tt.wantType)
			}
			if markupErr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", markupErr.Path, tt.wantPath)
			}
		})
	}
}

func TestParser_Parse_ContextCancelled(t *testing.T) {
	parser := New(FlavorCommonMark)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.ParseContext(ctx, "# Hello")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParser_Parse_ContextTimeout(t *testing.T) {
	parser := New(FlavorCommonMark)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()

	time.Sleep(time.Millisecond)

	_, err := parser.ParseContext(ctx, "# Hello")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestParser_Parse_FieldIntegration(t *testing.T) {
	field, err := mdast.NewField(New(FlavorCommonMark), "  Built **fast** systems\n")
	if err != nil {
		t.Fatalf("NewField() error = %v", err)
	}

	if field.Text != "Built **fast** systems" {
		t.Errorf("Text = %q", field.Text)
	}
	if got := mdast.PlainText(field.AST); got != "Built fast systems" {
		t.Errorf("PlainText() = %q", got)
	}
}

func TestParser_Parse_Deterministic(t *testing.T) {
	parser := New(FlavorCommonMark)
	source := "Hello **World**\nnext line"

	first, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	for range 3 {
		got, err := parser.Parse(source)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !reflect.DeepEqual(got, first) {
			t.Errorf("Parse() not deterministic: %#v vs %#v", got, first)
		}
	}
}
