package runner

import "errors"

// JobOutcome is the result of rendering one job.
type JobOutcome struct {
	// Job is the job that was rendered.
	Job Job

	// Bytes is the size of the rendered document.
	Bytes int

	// Written is set when the output file was created or replaced.
	Written bool

	// Error is set if the job failed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// Templates is the number of jobs in the plan.
	Templates int

	// Rendered is the number of jobs rendered successfully.
	Rendered int

	// Written is the number of output files created or replaced.
	Written int

	// Unchanged is the number of output files that already held the
	// rendered content.
	Unchanged int

	// Errored is the number of failed jobs.
	Errored int
}

// Result is the overall runner result.
type Result struct {
	// Outcomes are ordered like the plan's jobs.
	Outcomes []JobOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any job failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.Errored > 0
}

// Err joins the errors of all failed jobs.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, outcome := range r.Outcomes {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errors.Join(errs...)
}

// accumulate updates the result with a job outcome.
func (r *Result) accumulate(outcome JobOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)

	if outcome.Error != nil {
		r.Stats.Errored++
		return
	}

	r.Stats.Rendered++

	switch {
	case outcome.Job.ToStdout():
	case outcome.Written:
		r.Stats.Written++
	default:
		r.Stats.Unchanged++
	}
}
