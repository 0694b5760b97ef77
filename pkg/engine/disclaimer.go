package engine

import (
	"github.com/lestrrat-go/strftime"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/pkg/render"
)

// DisclaimerLines returns the generated-file notice for templateName.
func (e *Engine) DisclaimerLines(templateName string) []string {
	return []string{
		"This file was automatically generated from a template.",
		"DO NOT EDIT THIS FILE DIRECTLY - your changes will be lost!",
		"Generated on: " + e.timestamp(),
		"Template: " + templateName,
		"Generator: " + e.generator,
	}
}

// Disclaimer renders the generated-file notice as a comment block of format.
// Unknown formats fall back to plain text.
func (e *Engine) Disclaimer(format, templateName string) string {
	f, ok := render.ByName(format)
	if !ok {
		f = render.Plain{}
	}
	return f.Comment(e.DisclaimerLines(templateName))
}

// timestamp formats the current time with the configured date format.
func (e *Engine) timestamp() string {
	now := e.now()
	out, err := strftime.Format(e.dateFormat, now)
	if err != nil {
		e.logger.Warn("Invalid date format, using default",
			logging.FieldDateFormat, e.dateFormat, logging.FieldError, err)
		return now.Format(fallbackLayout)
	}
	return out
}
