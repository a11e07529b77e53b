package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
	"github.com/yaklabco/gotslint/pkg/analysis"
)

const (
	summaryRuleWidth = 32
	summaryPathWidth = 60
)

// SummaryRenderer prints failure counts per rule and per file, followed by
// a one-line total.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No failures found"))
		return nil
	}

	sections := []string{r.ruleSection(report.ByRule), r.fileSection(report.ByFile)}
	if r.opts.SummaryFilesFirst {
		sections[0], sections[1] = sections[1], sections[0]
	}
	for _, section := range sections {
		if section != "" {
			fmt.Fprintln(r.out, section)
			fmt.Fprintln(r.out)
		}
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+r.totalsLine(report.Totals))
	return nil
}

func (r *SummaryRenderer) ruleSection(rules []analysis.RuleAnalysis) string {
	if len(rules) == 0 {
		return ""
	}

	tbl := r.newTable("Rule", "Count", "Errors", "Warnings", "Fixable")
	for _, rule := range rules {
		fixable := ""
		if rule.Fixable {
			fixable = "✓"
		}
		tbl.Row(
			truncateEnd(rule.RuleName, summaryRuleWidth),
			strconv.Itoa(rule.Issues),
			strconv.Itoa(rule.Errors),
			strconv.Itoa(rule.Warnings),
			fixable,
		)
	}
	tbl.StyleFunc(r.cellStyle(func(row int) (int, int) {
		return rules[row].Errors, rules[row].Warnings
	}))

	return r.styles.Bold.Render("Rules Summary") + "\n" + tbl.Render()
}

func (r *SummaryRenderer) fileSection(files []analysis.FileAnalysis) string {
	if len(files) == 0 {
		return ""
	}

	tbl := r.newTable("File", "Count", "Errors", "Warnings")
	for _, file := range files {
		tbl.Row(
			truncateStart(file.Path, summaryPathWidth),
			strconv.Itoa(file.Issues),
			strconv.Itoa(file.Errors),
			strconv.Itoa(file.Warnings),
		)
	}
	tbl.StyleFunc(r.cellStyle(func(row int) (int, int) {
		return files[row].Errors, files[row].Warnings
	}))

	return r.styles.Bold.Render("Files Summary") + "\n" + tbl.Render()
}

func (r *SummaryRenderer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.TableSeparator).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...)
}

// cellStyle colors the name column by the worst severity in the row and
// right-aligns the numeric columns.
func (r *SummaryRenderer) cellStyle(counts func(row int) (errs, warnings int)) table.StyleFunc {
	return func(row, col int) lipgloss.Style {
		base := lipgloss.NewStyle().PaddingRight(2)
		if row == table.HeaderRow {
			return r.styles.TableHeader.PaddingRight(2)
		}
		if col > 0 {
			return base.Align(lipgloss.Right)
		}
		errs, warnings := counts(row)
		switch {
		case errs > 0:
			return r.styles.TableErrorRow.PaddingRight(2)
		case warnings > 0:
			return r.styles.TableWarnRow.PaddingRight(2)
		default:
			return base
		}
	}
}

func (r *SummaryRenderer) totalsLine(totals analysis.Totals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s", totals.Issues, plural(totals.Issues, "failure", "failures"))

	var bySeverity []string
	if totals.Errors > 0 {
		bySeverity = append(bySeverity,
			r.styles.Error.Render(countNoun(totals.Errors, "error", "errors")))
	}
	if totals.Warnings > 0 {
		bySeverity = append(bySeverity,
			r.styles.Warning.Render(countNoun(totals.Warnings, "warning", "warnings")))
	}
	if len(bySeverity) > 0 {
		b.WriteString(" (" + strings.Join(bySeverity, ", ") + ")")
	}
	fmt.Fprintf(&b, " in %s", countNoun(totals.FilesWithIssues, "file", "files"))

	if totals.Fixable > 0 {
		b.WriteString(", " + r.styles.Success.Render(strconv.Itoa(totals.Fixable)+" fixable"))
	}
	if totals.Fixed > 0 {
		b.WriteString(", " + r.styles.Success.Render(strconv.Itoa(totals.Fixed)+" fixed"))
	}
	if totals.ParseErrors > 0 {
		b.WriteString(", " + r.styles.Error.Render(strconv.Itoa(totals.ParseErrors)+" with syntax errors"))
	}
	return b.String()
}

func countNoun(n int, singular, pluralForm string) string {
	return strconv.Itoa(n) + " " + plural(n, singular, pluralForm)
}

// truncateEnd shortens s to limit runes, marking the cut with an ellipsis.
func truncateEnd(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// truncateStart keeps the tail of a path, which carries the file name.
func truncateStart(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return "…" + string(runes[len(runes)-(limit-1):])
}
