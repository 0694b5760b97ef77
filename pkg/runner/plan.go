package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/pkg/fsutil"
)

// Job renders one template.
type Job struct {
	// Template is the absolute template path.
	Template string

	// Output is the absolute output path. Empty means stdout.
	Output string
}

// ToStdout reports whether the job writes to standard output.
func (j Job) ToStdout() bool {
	return j.Output == ""
}

// Plan is a validated set of render jobs sharing one data file.
type Plan struct {
	// DataPath is the absolute resume data path.
	DataPath string

	// TemplatesDir is the directory holding every template of the plan.
	TemplatesDir string

	// Jobs are rendered in this order.
	Jobs []Job

	// Workers is the maximum number of concurrent renders.
	Workers int
}

// Inputs returns every file the plan reads.
func (p *Plan) Inputs() []string {
	inputs := make([]string, 0, len(p.Jobs)+1)
	inputs = append(inputs, p.DataPath)
	for _, job := range p.Jobs {
		inputs = append(inputs, job.Template)
	}
	return inputs
}

// BuildPlan validates opts and resolves them into a Plan.
//
// The data file and every template must be existing files. No file may be
// used as an input twice, no output may overwrite an input or land in the
// templates directory, and all templates must share one directory. Existing
// outputs are only replaced when opts.Force is set.
func BuildPlan(ctx context.Context, opts Options, logger *log.Logger) (*Plan, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	if opts.DataPath == "" {
		return nil, fmt.Errorf("%w: a data file is required", ErrInvalidPlan)
	}
	dataPath := resolve(workDir, opts.DataPath)
	if !fsutil.IsFile(dataPath) {
		return nil, fmt.Errorf("%w: file '%s' not found", ErrInvalidPlan, dataPath)
	}

	templates, err := templatePaths(ctx, workDir, opts)
	if err != nil {
		return nil, err
	}

	jobs, err := planJobs(workDir, templates, opts.Output, logger)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		DataPath:     dataPath,
		TemplatesDir: filepath.Dir(jobs[0].Template),
		Jobs:         jobs,
		Workers:      opts.Jobs,
	}

	for _, job := range jobs {
		if err := checkOutput(job, opts.Force, logger); err != nil {
			return nil, err
		}
	}

	if err := checkPaths(plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// templatePaths resolves the explicit templates, or discovers them.
func templatePaths(ctx context.Context, workDir string, opts Options) ([]string, error) {
	templates := make([]string, 0, len(opts.Templates))
	for _, tmpl := range opts.Templates {
		templates = append(templates, resolve(workDir, tmpl))
	}

	if len(templates) == 0 && opts.TemplatesDir != "" {
		discovered, err := Discover(ctx, resolve(workDir, opts.TemplatesDir))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
		}
		templates = discovered
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: at least one input template is required", ErrInvalidPlan)
	}

	for _, tmpl := range templates {
		if !fsutil.IsFile(tmpl) {
			return nil, fmt.Errorf("%w: file '%s' not found", ErrInvalidPlan, tmpl)
		}
	}

	return templates, nil
}

// planJobs assigns an output to every template.
func planJobs(workDir string, templates []string, output string, logger *log.Logger) ([]Job, error) {
	if len(templates) == 1 {
		logger.Debug("Single input template file")

		job := Job{Template: templates[0]}
		if output == "" {
			logger.Info("Output path not provided, writing to stdout")
			return []Job{job}, nil
		}

		job.Output = resolve(workDir, output)
		if fsutil.IsDir(job.Output) {
			job.Output = filepath.Join(job.Output, OutputName(job.Template))
		}
		return []Job{job}, nil
	}

	logger.Debug("Multiple input template files", logging.FieldTemplates, len(templates))

	if output == "" {
		return nil, fmt.Errorf("%w: for multiple input template files, output path must be provided", ErrInvalidPlan)
	}

	outDir := resolve(workDir, output)
	if !fsutil.IsDir(outDir) {
		return nil, fmt.Errorf("%w: for multiple input template files, output path must be a directory", ErrInvalidPlan)
	}

	jobs := make([]Job, 0, len(templates))
	for _, tmpl := range templates {
		jobs = append(jobs, Job{
			Template: tmpl,
			Output:   filepath.Join(outDir, OutputName(tmpl)),
		})
	}

	return jobs, nil
}

// checkOutput applies the overwrite rules to an existing output.
func checkOutput(job Job, force bool, logger *log.Logger) error {
	if job.ToStdout() {
		logger.Debug("Output will be written to stdout", logging.FieldTemplate, job.Template)
		return nil
	}

	logger.Debug("Output path planned", logging.FieldTemplate, job.Template, logging.FieldOutput, job.Output)

	if !fsutil.Exists(job.Output) {
		return nil
	}
	if !force {
		return fmt.Errorf("%w: path '%s' already exists, use --force to overwrite", ErrInvalidPlan, job.Output)
	}
	if !fsutil.IsFile(job.Output) {
		return fmt.Errorf("%w: path '%s' already exists and is not a file, cannot overwrite", ErrInvalidPlan, job.Output)
	}

	logger.Warn("Output already exists, overwriting", logging.FieldOutput, job.Output)
	return nil
}

// checkPaths enforces the relations between inputs and outputs.
func checkPaths(plan *Plan) error {
	inputs := make(map[string]struct{}, len(plan.Jobs)+1)
	for _, input := range plan.Inputs() {
		if _, dup := inputs[input]; dup {
			return fmt.Errorf("%w: same input file path '%s' is used multiple times", ErrInvalidPlan, input)
		}
		inputs[input] = struct{}{}
	}

	outputs := make(map[string]struct{}, len(plan.Jobs))
	for _, job := range plan.Jobs {
		if filepath.Dir(job.Template) != plan.TemplatesDir {
			return fmt.Errorf("%w: input template path '%s' is not in the templates directory", ErrInvalidPlan, job.Template)
		}

		if job.ToStdout() {
			continue
		}

		if _, clash := inputs[job.Output]; clash {
			return fmt.Errorf("%w: output file path '%s' is also used as an input file path, cannot overwrite input file",
				ErrInvalidPlan, job.Output)
		}
		if _, dup := outputs[job.Output]; dup {
			return fmt.Errorf("%w: output file path '%s' is produced by more than one template", ErrInvalidPlan, job.Output)
		}
		outputs[job.Output] = struct{}{}

		if fsutil.IsWithin(job.Output, plan.TemplatesDir) {
			return fmt.Errorf("%w: cannot save output file '%s' to the templates directory", ErrInvalidPlan, job.Output)
		}

		if ancestor := fsutil.NearestExistingAncestor(job.Output); !fsutil.IsDir(ancestor) {
			return fmt.Errorf("%w: cannot save output file to '%s', '%s' is not a directory",
				ErrInvalidPlan, job.Output, ancestor)
		}
	}

	return nil
}
