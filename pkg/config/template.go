package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every key with its default value.
	// If false, generates a minimal commented template.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor of resume text fields: commonmark or gfm
flavor: commonmark

# Log level: debug, info, warn, error or silent
# log_level: info

# Directory searched for templates when none are given with --input
# templates_dir: templates

# Number of parallel renders (0 = auto)
# jobs: 0

# Overwrite existing output files
# force: false

`)
	fmt.Fprintf(&buf, "# strftime pattern of the \"Generated on\" disclaimer line\n# date_format: %q\n\n", DefaultDateFormat)
	fmt.Fprintf(&buf, "# Generator name written into disclaimers\n# generator: %s\n\n", DefaultGenerator)
	fmt.Fprintf(&buf, "# Preview server\n# serve:\n#   addr: %s\n", DefaultServeAddr)

	return buf.Bytes()
}

// generateFullTemplate writes the defaults as plain YAML.
func generateFullTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.TemplatesDir = "templates"
	cfg.Force = Bool(false)

	content, err := cfg.ToYAML(DefaultTemplateHeader())
	if err != nil {
		return nil, fmt.Errorf("generate full template: %w", err)
	}
	return content, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# cvrender configuration
# See: https://github.com/yaklabco/cvrender`
}
