package config

import (
	"errors"
	"net"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lestrrat-go/strftime"
)

// Limits on configuration values.
const (
	maxJobs      = 256
	maxGenerator = 64
)

// LogLevels lists the accepted log_level values.
func LogLevels() []string {
	return []string{"debug", "info", "warn", "error", "silent"}
}

// Flavors lists the accepted flavor values.
func Flavors() []Flavor {
	return []Flavor{FlavorCommonMark, FlavorGFM}
}

var errDateFormat = errors.New("must be a valid strftime pattern")

// strftimePattern accepts patterns lestrrat-go/strftime can compile.
//
//nolint:gochecknoglobals // Stateless validation rule.
var strftimePattern = validation.By(func(value any) error {
	pattern, _ := value.(string)
	if pattern == "" {
		return nil
	}
	if _, err := strftime.New(pattern); err != nil {
		return errDateFormat
	}
	return nil
})

// hostPort accepts listen addresses such as ":8080" or "127.0.0.1:8080".
//
//nolint:gochecknoglobals // Stateless validation rule.
var hostPort = validation.By(func(value any) error {
	addr, _ := value.(string)
	if addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return errors.New("must be a host:port address")
	}
	return nil
})

// Validate checks field values. Empty values are accepted; they mean
// "not configured" and are filled by defaults during merging.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Flavor, validation.In(toAny(Flavors())...).
			Error("must be one of: commonmark, gfm")),
		validation.Field(&c.LogLevel, validation.In(toAny(LogLevels())...).
			Error("must be one of: debug, info, warn, error, silent")),
		validation.Field(&c.Jobs, validation.Min(0), validation.Max(maxJobs)),
		validation.Field(&c.DateFormat, strftimePattern),
		validation.Field(&c.Generator, validation.RuneLength(0, maxGenerator)),
		validation.Field(&c.Serve),
	)
}

// Validate checks the preview server settings.
func (s ServeConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, hostPort),
	)
}

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
