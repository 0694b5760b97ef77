package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/internal/ui/pretty"
	"github.com/yaklabco/cvrender/internal/watch"
	"github.com/yaklabco/cvrender/pkg/config"
	"github.com/yaklabco/cvrender/pkg/runner"
)

type renderFlags struct {
	data   string
	inputs []string
	output string
	force  bool
	jobs   int
	watch  bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render resume templates",
		Long:  renderLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, flags)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Render one or more templates with a resume data file.

A single template is written to stdout unless --output is given. With
--output pointing at a directory, the output is named after the template
without its .j2 or .tmpl suffix. Several templates always need --output to be
an existing directory. Without --input, every template in the configured
templates_dir is rendered.

Examples:
  cvrender render -d resume.yml -i templates/cv.tex.j2 > cv.tex
  cvrender render -d resume.yml -i templates/cv.tex.j2 -o out/
  cvrender render -d resume.yml -i cv.tex.j2 -i cv.html.j2 -o out/ --force
  cvrender render -d resume.yml -o out/ --watch`

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVarP(&flags.data, "data", "d", "", "resume data file (YAML)")
	cmd.Flags().StringArrayVarP(&flags.inputs, "input", "i", nil, "template to render (repeatable)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file or directory (default: stdout)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing outputs")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel renders (0 = auto)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "render again whenever an input changes")
}

func runRender(cmd *cobra.Command, flags *renderFlags) error {
	if err := requireFlag("data", flags.data); err != nil {
		return err
	}

	if flags.watch {
		logging.SetDefault(logging.NewInteractive())
	}

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("force") {
		cliCfg.Force = config.Bool(flags.force)
	}
	if cmd.Flags().Changed("jobs") {
		cliCfg.Jobs = flags.jobs
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.Default()

	plan, err := runner.BuildPlan(ctx, runner.Options{
		DataPath:     flags.data,
		Templates:    flags.inputs,
		TemplatesDir: cfg.TemplatesDir,
		Output:       flags.output,
		Force:        cfg.ForceEnabled(),
		Jobs:         cfg.Jobs,
	}, logger)
	if err != nil {
		return err
	}

	renderRunner := runner.New(newEngine(cfg, logger), newParser(cfg), logger)
	renderRunner.Stdout = cmd.OutOrStdout()

	colorMode, err := cmd.Flags().GetString(flagColor)
	if err != nil {
		colorMode = "auto"
	}
	report := newReporter(cmd.ErrOrStderr(), colorMode, isSilent(cmd))

	err = renderPlan(ctx, renderRunner, plan, report)
	if !flags.watch {
		return err
	}
	if err != nil {
		logger.Error("Render failed", logging.FieldError, err)
	}

	return watchPlan(ctx, renderRunner, plan, report, logger)
}

// renderPlan runs plan once and reports the outcome.
func renderPlan(ctx context.Context, r *runner.Runner, plan *runner.Plan, report func(*runner.Result)) error {
	result, err := r.Run(ctx, plan)
	if err != nil {
		return err
	}

	report(result)

	if result.HasFailures() {
		return fmt.Errorf("%w: %w", ErrRenderFailed, result.Err())
	}
	return nil
}

// watchPlan renders plan again after every change to one of its inputs,
// until ctx is cancelled.
func watchPlan(
	ctx context.Context,
	r *runner.Runner,
	plan *runner.Plan,
	report func(*runner.Result),
	logger *log.Logger,
) error {
	watcher, err := watch.New(plan.Inputs(), watch.WithLogger(logger))
	if err != nil {
		return err
	}

	return watcher.Run(ctx, func(ctx context.Context, _ []string) error {
		return renderPlan(ctx, r, plan, report)
	})
}

// newReporter returns a function printing job outcomes and a summary to w.
// Runs that only print to stdout are not reported, and silent mode reports
// failures only.
func newReporter(w io.Writer, colorMode string, silent bool) func(*runner.Result) {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))

	return func(result *runner.Result) {
		if silent && !result.HasFailures() {
			return
		}
		if result.Stats.Written+result.Stats.Unchanged+result.Stats.Errored == 0 {
			return
		}

		_, _ = io.WriteString(w, styles.FormatOutcomes(result))
		_, _ = io.WriteString(w, styles.FormatSummaryOneLine(result.Stats))
	}
}
