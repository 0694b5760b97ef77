package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/cvrender/internal/configloader"
	"github.com/yaklabco/cvrender/internal/ui/pretty"
	"github.com/yaklabco/cvrender/pkg/engine"
)

// flagColumnGap separates the flag column from the description in pflag
// usage output.
const flagColumnGap = "   "

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command lipgloss.Style
	Heading lipgloss.Style
	Name    lipgloss.Style // subcommands, env vars and template functions
	Flag    lipgloss.Style
	Dim     lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Command: plain, Heading: plain, Name: plain, Flag: plain, Dim: plain}
	}
	return &HelpStyles{
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for colorMode and the writer help
// is printed to.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{ extraSections . }}
{{- if .HasAvailableSubCommands}}
Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{end}}`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimTrailingWhitespaces . }}

{{end}}` + usageTemplate

// ApplyToCommand installs the styled help and usage output on cmd. Cobra
// falls back to the parent's functions, so applying it to the root covers
// every subcommand.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := template.FuncMap{
		"heading":                 h.styles.Heading.Render,
		"command":                 h.styles.Command.Render,
		"name":                    h.styles.Name.Render,
		"flags":                   h.styleFlags,
		"extraSections":           h.extraSections,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// extraSections returns the sections specific to a command: the environment
// variables on the root command and the template functions on render.
func (h *HelpFormatter) extraSections(cmd *cobra.Command) string {
	switch {
	case !cmd.HasParent():
		vars := configloader.ListEnvVars()
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		return h.section("Environment:", names, func(name string) string { return vars[name] })

	case cmd.Name() == "render":
		funcs := engine.New().Funcs()
		names := make([]string, 0, len(funcs))
		for name := range funcs {
			names = append(names, name)
		}
		return h.section("Template Functions:", names, nil)

	default:
		return ""
	}
}

// section renders a heading followed by names in sorted order, each with an
// optional description.
func (h *HelpFormatter) section(heading string, names []string, describe func(string) string) string {
	slices.Sort(names)

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	var sb strings.Builder
	sb.WriteString("\n" + h.styles.Heading.Render(heading) + "\n")
	for _, name := range names {
		if describe == nil {
			sb.WriteString("  " + h.styles.Name.Render(name) + "\n")
			continue
		}
		sb.WriteString("  " + h.styles.Name.Render(rpad(name, width)) + flagColumnGap + describe(name) + "\n")
	}
	return sb.String()
}

// styleFlags styles pflag usage output, keeping its column alignment.
func (h *HelpFormatter) styleFlags(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles one "  -d, --data string   description" line.
// Lines without a flag column, such as wrapped descriptions, are kept as is.
func (h *HelpFormatter) styleFlagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	flagPart, rest, found := strings.Cut(body, flagColumnGap)
	if !found || !strings.HasPrefix(flagPart, "-") {
		return line
	}
	desc := strings.TrimLeft(rest, " ")
	padding := flagColumnGap + rest[:len(rest)-len(desc)]

	tokens := strings.Fields(flagPart)
	for i, token := range tokens {
		name, comma := strings.CutSuffix(token, ",")
		if strings.HasPrefix(name, "-") {
			name = h.styles.Flag.Render(name)
		} else {
			name = h.styles.Dim.Render(name)
		}
		if comma {
			name += ","
		}
		tokens[i] = name
	}

	return indent + strings.Join(tokens, " ") + padding + desc
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
