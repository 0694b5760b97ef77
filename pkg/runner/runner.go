package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/cvrender/internal/logging"
	"github.com/yaklabco/cvrender/pkg/engine"
	"github.com/yaklabco/cvrender/pkg/fsutil"
	"github.com/yaklabco/cvrender/pkg/mdast"
	"github.com/yaklabco/cvrender/pkg/resume"
)

// Runner executes render plans.
type Runner struct {
	// Engine renders every template of a run.
	Engine *engine.Engine

	// Parser turns resume Markdown fields into token trees.
	Parser mdast.Parser

	// Stdout receives the output of stdout jobs.
	Stdout io.Writer

	// Logger receives progress messages.
	Logger *log.Logger

	stdoutMu sync.Mutex
}

// New creates a Runner writing stdout jobs to os.Stdout.
func New(eng *engine.Engine, parser mdast.Parser, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Engine: eng,
		Parser: parser,
		Stdout: os.Stdout,
		Logger: logger,
	}
}

// Run loads the plan's resume data once and renders every job.
//
// The runner:
//   - Fails fast if the resume data cannot be loaded or validated
//   - Renders jobs concurrently using a worker pool
//   - Reports outcomes in plan order
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, plan *Plan) (*Result, error) {
	r.Logger.Info("Loading data", logging.FieldData, plan.DataPath)

	data, err := resume.Load(plan.DataPath, r.Parser)
	if err != nil {
		return nil, err
	}

	return r.RunWith(ctx, plan, data)
}

// RunWith renders every job of plan with already loaded data.
func (r *Runner) RunWith(ctx context.Context, plan *Plan, data *resume.Resume) (*Result, error) {
	result := &Result{Outcomes: make([]JobOutcome, 0, len(plan.Jobs))}
	result.Stats.Templates = len(plan.Jobs)

	if len(plan.Jobs) == 0 {
		return result, nil
	}

	// Determine worker count.
	workers := plan.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	// Don't use more workers than jobs.
	if workers > len(plan.Jobs) {
		workers = len(plan.Jobs)
	}

	workCh := make(chan int)
	outCh := make(chan indexedOutcome)

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, plan, data, workCh, outCh)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for idx := range plan.Jobs {
			select {
			case <-ctx.Done():
				return
			case workCh <- idx:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers may complete out of order.
	outcomes := make([]*JobOutcome, len(plan.Jobs))
	for out := range outCh {
		outcomes[out.index] = &out.outcome
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

type indexedOutcome struct {
	index   int
	outcome JobOutcome
}

// worker renders jobs from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	plan *Plan,
	data *resume.Resume,
	workCh <-chan int,
	outCh chan<- indexedOutcome,
) {
	for idx := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.renderJob(ctx, plan.Jobs[idx], data)

		select {
		case <-ctx.Done():
			return
		case outCh <- indexedOutcome{index: idx, outcome: outcome}:
		}
	}
}

// renderJob renders a single template and writes its output.
func (r *Runner) renderJob(ctx context.Context, job Job, data *resume.Resume) JobOutcome {
	outcome := JobOutcome{Job: job}

	ctx, logger := logging.WithFields(logging.WithLogger(ctx, r.Logger),
		logging.FieldTemplate, filepath.Base(job.Template))

	tmpl, err := r.Engine.LoadTemplate(job.Template)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	logger.Info("Rendering CV")

	var buf bytes.Buffer
	if err := r.Engine.Render(ctx, &buf, tmpl, data); err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Bytes = buf.Len()

	if job.ToStdout() {
		logger.Info("Writing rendered content to stdout")

		r.stdoutMu.Lock()
		defer r.stdoutMu.Unlock()

		if _, err := r.Stdout.Write(buf.Bytes()); err != nil {
			outcome.Error = fmt.Errorf("write stdout: %w", err)
		}
		return outcome
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, job.Output, buf.Bytes(), 0)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", job.Output, err)
		return outcome
	}
	outcome.Written = written

	if written {
		logger.Info("Wrote rendered content", logging.FieldOutput, job.Output)
	} else {
		logger.Debug("Output unchanged", logging.FieldOutput, job.Output)
	}

	return outcome
}
