package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/pkg/render"
	"github.com/yaklabco/cvrender/pkg/resume"
	"github.com/yaklabco/cvrender/pkg/tmpltype"
)

// Template is a parsed resume template.
type Template struct {
	// Name is the template file name, e.g. "cv.tex.tmpl".
	Name string

	// Type is detected from Name.
	Type tmpltype.Type

	tmpl *template.Template
}

// Data is the value templates are executed with.
type Data struct {
	// Resume is the validated resume.
	Resume *resume.Resume

	// Context describes the template being rendered.
	Context Context

	// Static holds pre-rendered fragments.
	Static Static
}

// Context describes the template being rendered.
type Context struct {
	TemplateName string
	TemplateType string
}

// Static holds the disclaimer in every supported format. Disclaimer is the
// one matching the template type and is empty for unknown types.
type Static struct {
	Disclaimer      string
	DisclaimerLaTeX string
	DisclaimerHTML  string
}

// LoadTemplate reads and parses the template file at path.
func (e *Engine) LoadTemplate(path string) (*Template, error) {
	e.logger.Debug("Loading template", logging.FieldPath, path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	return e.ParseTemplate(filepath.Base(path), string(content))
}

// ParseTemplate parses template text under name. The type is detected from
// name; unknown types still parse and render, without a typed disclaimer.
func (e *Engine) ParseTemplate(name, text string) (*Template, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(e.Funcs()).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrTemplate, name, err)
	}

	typ := tmpltype.Detect(name)
	if !typ.Known() {
		e.logger.Warn("Unknown template type, no disclaimer will be provided", logging.FieldTemplate, name)
	}

	return &Template{Name: name, Type: typ, tmpl: tmpl}, nil
}

// Data builds the template data for tmpl.
func (e *Engine) Data(tmpl *Template, res *resume.Resume) Data {
	static := Static{
		DisclaimerLaTeX: e.Disclaimer(render.NameLaTeX, tmpl.Name),
		DisclaimerHTML:  e.Disclaimer(render.NameHTML, tmpl.Name),
	}

	switch tmpl.Type {
	case tmpltype.TeX:
		static.Disclaimer = static.DisclaimerLaTeX
	case tmpltype.HTML:
		static.Disclaimer = static.DisclaimerHTML
	case tmpltype.Unknown:
		// No type-specific disclaimer.
	}

	return Data{
		Resume: res,
		Context: Context{
			TemplateName: tmpl.Name,
			TemplateType: string(tmpl.Type),
		},
		Static: static,
	}
}

// Render executes tmpl with res and writes the result to w.
// Nothing is written if execution fails.
func (e *Engine) Render(ctx context.Context, w io.Writer, tmpl *Template, res *resume.Resume) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render %s: %w", tmpl.Name, err)
	}

	e.logger.Debug("Rendering template",
		logging.FieldTemplate, tmpl.Name, logging.FieldTemplateType, tmpl.Type.String())

	var buf bytes.Buffer
	if err := tmpl.tmpl.Execute(&buf, e.Data(tmpl, res)); err != nil {
		return fmt.Errorf("%w: execute %s: %w", ErrTemplate, tmpl.Name, err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render %s: %w", tmpl.Name, err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", tmpl.Name, err)
	}

	e.logger.Debug("Rendered template", logging.FieldTemplate, tmpl.Name, logging.FieldChars, buf.Len())

	return nil
}
