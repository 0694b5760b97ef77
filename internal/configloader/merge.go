package configloader

import "github.com/yaklabco/cvrender/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if set, so false can win
//   - Nested structs: merged field by field
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.TemplatesDir != "" {
		result.TemplatesDir = override.TemplatesDir
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Force != nil {
		result.Force = config.Bool(*override.Force)
	}
	if override.DateFormat != "" {
		result.DateFormat = override.DateFormat
	}
	if override.Generator != "" {
		result.Generator = override.Generator
	}
	if override.Serve.Addr != "" {
		result.Serve.Addr = override.Serve.Addr
	}

	return result
}
