package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/cvrender/pkg/runner"
)

// FormatOutcome formats a single job outcome for terminal output.
//
//	written    out/cv.tex  (cv.tex.j2, 2048 bytes)
//	unchanged  out/cv.html  (cv.html.j2, 1024 bytes)
//	error      cv.tex.j2  template error: ...
func (s *Styles) FormatOutcome(outcome runner.JobOutcome) string {
	tmplName := filepath.Base(outcome.Job.Template)

	if outcome.Error != nil {
		return fmt.Sprintf("  %s  %s  %s\n",
			s.Error.Render("error    "),
			s.Template.Render(tmplName),
			s.Message.Render(firstLine(outcome.Error.Error())),
		)
	}

	target := "stdout"
	if !outcome.Job.ToStdout() {
		target = outcome.Job.Output
	}

	return fmt.Sprintf("  %s  %s  %s\n",
		s.FormatStatus(outcome),
		s.FilePath.Render(target),
		s.Dim.Render(fmt.Sprintf("(%s, %d bytes)", tmplName, outcome.Bytes)),
	)
}

// FormatStatus returns a styled, padded status word for a successful outcome.
func (s *Styles) FormatStatus(outcome runner.JobOutcome) string {
	switch {
	case outcome.Job.ToStdout():
		return s.Written.Render("printed  ")
	case outcome.Written:
		return s.Written.Render("written  ")
	default:
		return s.Unchanged.Render("unchanged")
	}
}

// FormatOutcomes formats every outcome of result, in plan order.
func (s *Styles) FormatOutcomes(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var builder strings.Builder
	for _, outcome := range result.Outcomes {
		builder.WriteString(s.FormatOutcome(outcome))
	}
	return builder.String()
}

func firstLine(msg string) string {
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		return msg[:idx]
	}
	return msg
}
