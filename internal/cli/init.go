package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cvrender/internal/configloader"
	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/pkg/config"
	"github.com/yaklabco/cvrender/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new cvrender configuration file",
		Long: `Create a new .cvrender.yml configuration file in the current directory
with sensible defaults.

Examples:
  cvrender init                   Create a minimal .cvrender.yml
  cvrender init --full            Create a config listing every setting
  cvrender init --output cv/      Create cv/.cvrender.yml
  cvrender init --output my.yml   Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate a template with every setting")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file or directory (default: "+configloader.ProjectConfigFile()+")")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	// Determine output path
	outputPath := flags.output
	switch {
	case outputPath == "":
		outputPath = configloader.ProjectConfigFile()
	case fsutil.IsDir(outputPath):
		outputPath = filepath.Join(outputPath, configloader.ProjectConfigFile())
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	force := flags.force
	if fsutil.Exists(absPath) {
		if !force {
			confirmed := false
			// Only the process's own terminal is prompted.
			if cmd.InOrStdin() == io.Reader(os.Stdin) {
				var err error
				confirmed, err = configloader.ConfirmOverwrite(outputPath, cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}
			if !confirmed {
				return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
			}
			force = true
		}
		logger.Warn("Overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfigFile(absPath, content, force); err != nil {
		return err
	}

	logger.Info("Created configuration file", logging.FieldPath, outputPath)
	logger.Info("Run 'cvrender render --help' to get started")

	return nil
}
