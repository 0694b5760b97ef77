package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/cvrender/internal/configloader"
	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/pkg/config"
	"github.com/yaklabco/cvrender/pkg/engine"
	gmparser "github.com/yaklabco/cvrender/pkg/parser/goldmark"
)

// commandContext returns the command's context, or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for cmd. cliCfg holds the values of
// flags the user set explicitly; it takes precedence over every other layer.
// The configured log level is applied unless a global flag overrides it.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg := loadResult.Config

	if level := flagLevel(cmd); level != "" {
		logging.SetLevel(level)
	} else {
		logging.SetLevel(cfg.LogLevel)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("Loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	logger.Debug("Configuration resolved",
		"flavor", cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldForce, cfg.ForceEnabled(),
		logging.FieldDateFormat, cfg.DateFormat,
	)

	return cfg, nil
}

// newEngine creates the render engine for cfg.
func newEngine(cfg *config.Config, logger *log.Logger) *engine.Engine {
	return engine.New(
		engine.WithLogger(logger),
		engine.WithGenerator(cfg.Generator),
		engine.WithDateFormat(cfg.DateFormat),
	)
}

// newParser creates the Markdown parser for cfg.
func newParser(cfg *config.Config) *gmparser.Parser {
	return gmparser.New(string(cfg.Flavor))
}

// requireFlag fails when a mandatory string flag is empty.
func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: --%s is required", ErrInvalidUsage, name)
	}
	return nil
}
