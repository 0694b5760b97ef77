// Package config defines core configuration types for cvrender.
// These types are pure data structures; discovery, merging and environment
// handling live in internal/configloader.
package config

// Flavor specifies the Markdown flavor used to parse resume text fields.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Defaults applied by NewConfig.
const (
	DefaultLogLevel   = "info"
	DefaultDateFormat = "%Y-%m-%d %H:%M:%S"
	DefaultGenerator  = "cvrender"
	DefaultServeAddr  = "127.0.0.1:8080"
)

// ServeConfig configures the preview server.
type ServeConfig struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr" json:"addr"`
}

// Config is the root configuration structure for cvrender.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	// Constructs outside the resume subset are rejected in either flavor.
	Flavor Flavor `yaml:"flavor" json:"flavor"`

	// LogLevel is one of debug, info, warn, error or silent.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// TemplatesDir is used when no templates are named on the command line.
	TemplatesDir string `yaml:"templates_dir" json:"templates_dir"`

	// Jobs specifies the number of parallel renders (0 = auto).
	Jobs int `yaml:"jobs" json:"jobs"`

	// Force allows overwriting existing outputs. Nil means unset.
	Force *bool `yaml:"force,omitempty" json:"force,omitempty"`

	// DateFormat is the strftime pattern of the disclaimer timestamp.
	DateFormat string `yaml:"date_format" json:"date_format"`

	// Generator is the generator name written into disclaimers.
	Generator string `yaml:"generator" json:"generator"`

	// Serve configures the preview server.
	Serve ServeConfig `yaml:"serve" json:"serve"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorCommonMark,
		LogLevel:   DefaultLogLevel,
		Jobs:       0, // 0 means one per usable CPU
		DateFormat: DefaultDateFormat,
		Generator:  DefaultGenerator,
		Serve: ServeConfig{
			Addr: DefaultServeAddr,
		},
	}
}

// ForceEnabled reports whether overwriting outputs is allowed.
func (c *Config) ForceEnabled() bool {
	return c != nil && c.Force != nil && *c.Force
}

// Bool returns a pointer to v, for optional fields such as Force.
func Bool(v bool) *bool {
	return &v
}
