package configloader

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/yaklabco/cvrender/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "serve.addr").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
// Field errors come from the config's own rules and are reported in
// field order.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if err := cfg.Validate(); err != nil {
		collectErrors(result, "", fieldValues(cfg), err)
	}

	return result
}

// collectErrors flattens ozzo field errors into ValidationErrors.
func collectErrors(result *ValidationResult, prefix string, values map[string]any, err error) {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		result.Errors = append(result.Errors, ValidationError{Field: strings.TrimSuffix(prefix, "."), Message: err.Error()})
		return
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fieldErr := fieldErrs[field]
		path := prefix + field

		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			collectErrors(result, path+".", values, nested)
			continue
		}

		result.Errors = append(result.Errors, ValidationError{
			Field:   path,
			Value:   values[path],
			Message: fieldErr.Error(),
		})
	}
}

// fieldValues maps field paths to values for error reporting.
func fieldValues(cfg *config.Config) map[string]any {
	return map[string]any{
		"flavor":        cfg.Flavor,
		"log_level":     cfg.LogLevel,
		"templates_dir": cfg.TemplatesDir,
		"jobs":          cfg.Jobs,
		"date_format":   cfg.DateFormat,
		"generator":     cfg.Generator,
		"serve.addr":    cfg.Serve.Addr,
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	for _, known := range config.Flavors() {
		if f == known {
			return true
		}
	}
	return false
}

// IsValidLogLevel returns true if the log level is valid.
func IsValidLogLevel(level string) bool {
	for _, known := range config.LogLevels() {
		if level == known {
			return true
		}
	}
	return false
}
