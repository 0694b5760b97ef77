package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/pkg/config"
	"github.com/yaklabco/cvrender/pkg/fsutil"
	"github.com/yaklabco/cvrender/pkg/resume"
)

func newCheckCommand() *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a resume data file",
		Long: `Load and validate a resume data file without rendering anything.

Every text field is parsed as Markdown, and constructs outside the supported
subset (headings, lists, links, emphasis, code and so on) are reported with
their position.

Examples:
  cvrender check -d resume.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, dataPath)
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "resume data file (YAML)")

	return cmd
}

func runCheck(cmd *cobra.Command, dataPath string) error {
	if err := requireFlag("data", dataPath); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}

	logger := logging.Default()

	if !fsutil.IsFile(dataPath) {
		return fmt.Errorf("%w: %s", fsutil.ErrNotFound, dataPath)
	}

	if _, err := resume.Load(dataPath, newParser(cfg)); err != nil {
		return err
	}

	logger.Info("Resume data is valid", logging.FieldData, dataPath)

	return nil
}
