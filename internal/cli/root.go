// Package cli provides the Cobra command structure for cvrender.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cvrender/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Global flag names, read back by subcommands.
const (
	flagDebug    = "debug"
	flagLogLevel = "log-level"
	flagSilent   = "silent"
	flagConfig   = "config"
	flagColor    = "color"
)

// NewRootCommand creates the root cvrender command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug      bool
		logLevel   string
		silent     bool
		configPath string
		color      string
	)

	rootCmd := &cobra.Command{
		Use:   "cvrender",
		Short: "Render a YAML resume through LaTeX, HTML and text templates",
		Long: `cvrender renders a resume kept as YAML into documents through templates.

Text fields may use a small Markdown subset: paragraphs, **strong** text and
line breaks. Templates turn those fields into LaTeX, HTML or plain text with
the markdown_latex, markdown_html and markdown_plain functions, and every
other value can be escaped with escape_latex and escape_html.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed(flagLogLevel) && !logging.ValidLevel(logLevel) {
				return fmt.Errorf("%w: invalid log level %q", ErrInvalidUsage, logLevel)
			}
			if level := flagLevel(cmd); level != "" {
				logging.SetLevel(level)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, flagDebug, false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, flagLogLevel, "",
		"log level: debug, info, warn, error, silent (default from config)")
	rootCmd.PersistentFlags().BoolVar(&silent, flagSilent, false, "only report failures")
	rootCmd.PersistentFlags().StringVar(&configPath, flagConfig, "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, flagColor, "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// flagLevel returns the log level requested by the global flags, or "" when
// the configured level applies. --silent wins over --debug, which wins over
// --log-level.
func flagLevel(cmd *cobra.Command) string {
	if silent, _ := cmd.Flags().GetBool(flagSilent); silent {
		return logging.LevelSilent
	}
	if debug, _ := cmd.Flags().GetBool(flagDebug); debug {
		return logging.LevelDebug
	}
	if cmd.Flags().Changed(flagLogLevel) {
		level, _ := cmd.Flags().GetString(flagLogLevel)
		return level
	}
	return ""
}

// isSilent reports whether --silent was given.
func isSilent(cmd *cobra.Command) bool {
	silent, _ := cmd.Flags().GetBool(flagSilent)
	return silent
}
