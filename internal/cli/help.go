package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
)

// helpSections are the lines of a Long description rendered as headings.
//
//nolint:gochecknoglobals // Read-only lookup table.
var helpSections = map[string]bool{
	"Examples:":   true,
	"Exit codes:": true,
}

// HelpFormatter renders command help with the terminal palette used for
// lint output.
type HelpFormatter struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpFormatter creates a formatter; colorMode is auto, always or never.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	return &HelpFormatter{
		heading: styles.Warning,
		command: styles.Bold,
		flag:    styles.FilePath,
		dim:     styles.Dim,
	}
}

const helpTemplate = `{{with (or .Long .Short)}}{{ description . }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (rpad .Name .NamePadding) }}  {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end}}
`

// ApplyToCommand installs the help and usage renderers on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	tmpl := template.Must(template.New("help").Funcs(template.FuncMap{
		"heading":     h.heading.Render,
		"command":     h.command.Render,
		"description": h.description,
		"flags":       h.flags,
		"rpad":        rpad,
	}).Parse(helpTemplate))

	render := func(c *cobra.Command) error {
		if err := tmpl.Execute(c.OutOrStdout(), c); err != nil {
			return fmt.Errorf("render help: %w", err)
		}
		return nil
	}

	cmd.SetUsageFunc(render)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := render(c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// description styles the section headings of a Long text and trims
// trailing blanks from every line.
func (h *HelpFormatter) description(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if helpSections[line] {
			line = h.heading.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// flags styles pflag usage lines: flag names stand out, value types are
// dimmed, descriptions stay plain.
func (h *HelpFormatter) flags(usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		names, desc, ok := splitFlagLine(line)
		if !ok {
			continue
		}
		var b strings.Builder
		b.WriteString("  ")
		for j, token := range strings.Fields(names) {
			if j > 0 {
				b.WriteByte(' ')
			}
			name, comma := strings.CutSuffix(token, ",")
			if strings.HasPrefix(name, "-") {
				b.WriteString(h.flag.Render(name))
			} else {
				b.WriteString(h.dim.Render(name))
			}
			if comma {
				b.WriteByte(',')
			}
		}
		lines[i] = b.String() + "   " + desc
	}
	return strings.Join(lines, "\n")
}

// splitFlagLine splits "  -f, --fix   description" at the first run of
// two or more spaces after the flag names.
func splitFlagLine(line string) (string, string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return "", "", false
	}
	idx := strings.Index(trimmed, "  ")
	if idx < 0 {
		return "", "", false
	}
	return trimmed[:idx], strings.TrimLeft(trimmed[idx:], " "), true
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
