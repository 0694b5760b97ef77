package config_test

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cvrender/pkg/config"
)

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.NewConfig().Validate())
	require.NoError(t, config.Config{}.Validate())
}

func TestValidate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *config.Config)
		field  string
	}{
		{name: "flavor", mutate: func(c *config.Config) { c.Flavor = "markdown" }, field: "flavor"},
		{name: "log level", mutate: func(c *config.Config) { c.LogLevel = "verbose" }, field: "log_level"},
		{name: "negative jobs", mutate: func(c *config.Config) { c.Jobs = -1 }, field: "jobs"},
		{name: "too many jobs", mutate: func(c *config.Config) { c.Jobs = 100000 }, field: "jobs"},
		{name: "date format", mutate: func(c *config.Config) { c.DateFormat = "%Y-%Q" }, field: "date_format"},
		{name: "serve addr", mutate: func(c *config.Config) { c.Serve.Addr = "localhost" }, field: "serve"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var fieldErrs validation.Errors
			require.True(t, errors.As(err, &fieldErrs), "got %T", err)
			assert.Contains(t, fieldErrs, tt.field)
		})
	}
}

func TestValidate_AcceptsListenAddresses(t *testing.T) {
	t.Parallel()

	for _, addr := range []string{":8080", "127.0.0.1:8080", "[::1]:8080", "localhost:0"} {
		cfg := config.NewConfig()
		cfg.Serve.Addr = addr
		assert.NoError(t, cfg.Validate(), addr)
	}
}
