package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gotslint/pkg/analysis"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// Table formatting constants.
const (
	fixableSymbol      = "+"
	tablePadding       = 2
	tableColumnCount   = 5 // FILE, LOC, MESSAGE, RULE, FIXABLE
	perFileColumnCount = 4 // LOC, MESSAGE, RULE, FIXABLE
	fixableColumnWidth = 3
	minFileWidth       = 20
	minLocWidth        = 10
	minMessageWidth    = 35
	minRuleWidth       = 8
	heavySeparator     = "="
	lightSeparator     = "-"
)

// TableRow is one failure in a table.
type TableRow struct {
	File     string
	Location string
	Message  string
	Rule     string
	Severity config.Severity
	Fixable  bool
}

// NewTableRow converts a failure entry to a table row.
func NewTableRow(entry analysis.FailureEntry) TableRow {
	return TableRow{
		File:     entry.FilePath,
		Location: fmt.Sprintf("%d:%d", entry.StartLine, entry.StartColumn),
		Message:  entry.Message,
		Rule:     entry.RuleName,
		Severity: config.Severity(entry.Severity),
		Fixable:  entry.Fixable,
	}
}

// TableFormatter formats failures as styled tables.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	file    int
	loc     int
	message int
	rule    int
}

func (w columnWidths) total(columns int) int {
	return w.file + w.loc + w.message + w.rule + tablePadding*columns + fixableColumnWidth
}

// FormatTable formats failures of many files as one table. Entries of
// the same file must be adjacent.
func (t *TableFormatter) FormatTable(entries []analysis.FailureEntry) string {
	if len(entries) == 0 {
		return ""
	}

	rows := make([]TableRow, len(entries))
	for i, e := range entries {
		rows[i] = NewTableRow(e)
	}
	widths := t.widths(rows, true)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths, true) + "\n")
	builder.WriteString(t.formatSeparator(widths, tableColumnCount, heavySeparator) + "\n")

	for i, row := range rows {
		if i > 0 && row.File != rows[i-1].File {
			builder.WriteString(t.formatSeparator(widths, tableColumnCount, lightSeparator) + "\n")
		}
		builder.WriteString(t.formatRow(row, widths, true) + "\n")
	}

	builder.WriteString(t.formatSeparator(widths, tableColumnCount, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")

	return builder.String()
}

// FormatFileTable formats the failures of one file. The file path is
// expected in a header printed by the caller, so there is no FILE column.
func (t *TableFormatter) FormatFileTable(entries []analysis.FailureEntry) string {
	if len(entries) == 0 {
		return ""
	}

	rows := make([]TableRow, len(entries))
	for i, e := range entries {
		rows[i] = NewTableRow(e)
	}
	widths := t.widths(rows, false)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths, false) + "\n")
	builder.WriteString(t.formatSeparator(widths, perFileColumnCount, heavySeparator) + "\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths, false) + "\n")
	}
	builder.WriteString(t.formatSeparator(widths, perFileColumnCount, heavySeparator) + "\n")
	builder.WriteString(t.formatFileSummary(rows) + "\n")

	return builder.String()
}

// widths sizes the columns to their content, then shrinks the message
// and file columns to fit the terminal.
func (t *TableFormatter) widths(rows []TableRow, withFile bool) columnWidths {
	widths := columnWidths{loc: minLocWidth, message: minMessageWidth, rule: minRuleWidth}
	columns := perFileColumnCount
	if withFile {
		widths.file = minFileWidth
		columns = tableColumnCount
	}

	for _, row := range rows {
		if withFile {
			widths.file = max(widths.file, len(row.File))
		}
		widths.loc = max(widths.loc, len(row.Location))
		widths.message = max(widths.message, len(row.Message))
		widths.rule = max(widths.rule, len(row.Rule))
	}

	if excess := widths.total(columns) - t.termWidth; excess > 0 {
		shrink := min(excess, widths.message-minMessageWidth)
		widths.message -= shrink
		excess -= shrink
		if withFile && excess > 0 {
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths, withFile bool) string {
	var header string
	if withFile {
		header = fmt.Sprintf(" %-*s  ", widths.file, "FILE")
	} else {
		header = " "
	}
	header += fmt.Sprintf("%-*s  %-*s  %-*s   ",
		widths.loc, "LOC",
		widths.message, "MESSAGE",
		widths.rule, "RULE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, columns int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total(columns)))
}

// formatRow formats a single row with severity-based styling.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths, withFile bool) string {
	fixable := " "
	if row.Fixable {
		fixable = t.styles.TableFixable.Render(fixableSymbol)
	}

	content := " "
	if withFile {
		content += fmt.Sprintf("%-*s  ", widths.file, truncateFilePath(row.File, widths.file))
	}
	content += fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		widths.loc, truncateString(row.Location, widths.loc),
		widths.message, truncateString(row.Message, widths.message),
		widths.rule, truncateString(row.Rule, widths.rule),
		fixable,
	)

	return t.rowStyle(row.Severity).Render(content)
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	default:
		return lipgloss.NewStyle()
	}
}

// formatLegend explains the table symbols and colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: E = error | W = warning | %s = fixable", fixableSymbol),
		)
	}

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s = error  %s = warning  %s = fixable",
			t.styles.TableErrorRow.Render(" error "),
			t.styles.TableWarnRow.Render(" warning "),
			t.styles.TableFixable.Render(fixableSymbol)),
	)
}

func (t *TableFormatter) formatFileSummary(rows []TableRow) string {
	var errs, warnings, fixable int
	for _, row := range rows {
		switch row.Severity {
		case config.SeverityError:
			errs++
		case config.SeverityWarning:
			warnings++
		}
		if row.Fixable {
			fixable++
		}
	}
	return " " + strings.Join(t.countParts(errs, warnings, fixable), " | ")
}

func (t *TableFormatter) countParts(errs, warnings, fixable int) []string {
	var parts []string
	if errs > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d %s", errs, plural(errs, "error", "errors"))))
	}
	if warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings"))))
	}
	if fixable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d fixable", fixable)))
	}
	return parts
}

// FormatTableSummary formats the closing line of table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d %s checked", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))}
	parts = append(parts, t.countParts(
		stats.FailuresBySeverity[config.SeverityError],
		stats.FailuresBySeverity[config.SeverityWarning],
		stats.FailuresFixable,
	)...)
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a path from the front, keeping the file name.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
