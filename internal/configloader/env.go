package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/yaklabco/cvrender/pkg/config"
)

// envVarPrefix is the prefix for all cvrender environment variables.
const envVarPrefix = "CVRENDER_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":        {field: "flavor", typ: envTypeString, description: "Markdown flavor: commonmark or gfm"},
	"LOG_LEVEL":     {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn, error or silent"},
	"TEMPLATES_DIR": {field: "templates_dir", typ: envTypeString, description: "Directory searched for templates"},
	"JOBS":          {field: "jobs", typ: envTypeInt, description: "Number of parallel renders (0 = auto)"},
	"FORCE":         {field: "force", typ: envTypeBool, description: "Overwrite existing outputs: true or false"},
	"DATE_FORMAT":   {field: "date_format", typ: envTypeString, description: "strftime pattern of the disclaimer timestamp"},
	"GENERATOR":     {field: "generator", typ: envTypeString, description: "Generator name written into disclaimers"},
	"SERVE_ADDR":    {field: "serve.addr", typ: envTypeString, description: "Preview server listen address"},
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables that are already set keep their value.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with CVRENDER_ (e.g., CVRENDER_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "log_level":
		cfg.LogLevel = value
	case "templates_dir":
		cfg.TemplatesDir = value
	case "date_format":
		cfg.DateFormat = value
	case "generator":
		cfg.Generator = value
	case "serve.addr":
		cfg.Serve.Addr = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "force":
		cfg.Force = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
