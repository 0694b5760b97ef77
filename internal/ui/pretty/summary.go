package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/cvrender/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordTemplate        = "template"
	wordTemplates       = "templates"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Rendered 3 templates: 2 written, 1 unchanged".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	word := wordTemplates
	if stats.Templates == 1 {
		word = wordTemplate
	}

	if stats.Errored == 0 {
		msg := s.Success.Render(fmt.Sprintf("Rendered %d %s", stats.Rendered, word))

		var parts []string
		if stats.Written > 0 {
			parts = append(parts, fmt.Sprintf("%d written", stats.Written))
		}
		if stats.Unchanged > 0 {
			parts = append(parts, fmt.Sprintf("%d unchanged", stats.Unchanged))
		}
		if len(parts) > 0 {
			msg += s.Dim.Render(": " + strings.Join(parts, ", "))
		}
		return msg + "\n"
	}

	return fmt.Sprintf("%s of %d %s, %s\n",
		s.Failure.Render(fmt.Sprintf("%d failed", stats.Errored)),
		stats.Templates, word,
		s.Success.Render(fmt.Sprintf("%d rendered", stats.Rendered)),
	)
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Templates:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.Templates)) + "\n")
	builder.WriteString("  Rendered:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.Rendered)) + "\n")

	if stats.Written > 0 {
		builder.WriteString("  Written:    " +
			s.Written.Render(strconv.Itoa(stats.Written)) + "\n")
	}
	if stats.Unchanged > 0 {
		builder.WriteString("  Unchanged:  " +
			s.Unchanged.Render(strconv.Itoa(stats.Unchanged)) + "\n")
	}
	if stats.Errored > 0 {
		builder.WriteString("  Failed:     " +
			s.Failure.Render(strconv.Itoa(stats.Errored)) + "\n")
	}

	builder.WriteString("\n")

	if stats.Errored > 0 {
		builder.WriteString(s.Failure.Render("Render failed"))
	} else {
		builder.WriteString(s.Success.Render("Render succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
