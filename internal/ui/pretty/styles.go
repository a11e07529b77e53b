// Package pretty renders lint failures, tables and summaries for a
// terminal with Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/gotslint/pkg/config"
)

// defaultTermWidth is used when the terminal width cannot be determined.
const defaultTermWidth = 100

// ANSI colors of the palette.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorCyan   = lipgloss.Color("14")
	colorGray   = lipgloss.Color("8")
	colorLight  = lipgloss.Color("7")
)

// Styles holds one style per element of the output. With color disabled
// every style renders text unchanged.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Prose and stylish lines.
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Rule       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Unified diffs of fixes.
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableFixable   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates the styles; colorEnabled false yields plain text.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	style := func(c lipgloss.Color, bold bool) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		st := plain.Bold(bold)
		if c != "" {
			st = st.Foreground(c)
		}
		return st
	}
	legend := style(colorGray, false)
	if colorEnabled {
		legend = legend.Italic(true)
	}

	return &Styles{
		Error:   style(colorRed, true),
		Warning: style(colorYellow, true),

		FilePath:   style("", true),
		Location:   style(colorGray, false),
		Rule:       style(colorGray, false),
		Message:    plain,
		SourceLine: style(colorLight, false),
		Caret:      style(colorRed, false),

		DiffHeader:  style("", true),
		DiffHunk:    style(colorCyan, false),
		DiffAdd:     style(colorGreen, false),
		DiffRemove:  style(colorRed, false),
		DiffContext: style(colorGray, false),

		SummaryTitle: style("", true),
		SummaryValue: plain,
		Success:      style(colorGreen, true),
		Failure:      style(colorRed, true),

		TableHeader:    style(colorLight, true),
		TableErrorRow:  style(colorRed, false),
		TableWarnRow:   style(colorYellow, false),
		TableFixable:   style(colorGreen, false),
		TableLegend:    legend,
		TableSeparator: style(colorGray, false),

		Dim:  style(colorGray, false),
		Bold: style("", true),
	}
}

// Severity returns the label style of a failure severity.
func (s *Styles) Severity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	default:
		return lipgloss.NewStyle()
	}
}

// IsColorEnabled resolves a color mode of auto, always or never. Auto
// colors only terminals, and never when NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// TerminalWidth returns the column count of writer when it is a terminal,
// and a default width otherwise.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
