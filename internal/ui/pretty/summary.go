package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 failures (8 errors, 4 warnings) in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	errs := stats.FailuresBySeverity[config.SeverityError]
	warnings := stats.FailuresBySeverity[config.SeverityWarning]

	if stats.FailuresTotal == 0 {
		msg := s.Success.Render("No failures found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
		if stats.FixesApplied > 0 {
			msg += ", " + s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
				stats.FixesApplied, stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles)))
		}
		return msg + "\n"
	}

	var severityParts []string
	if errs > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", errs, plural(errs, "error", "errors"))))
	}
	if warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings"))))
	}

	var parts []string
	main := fmt.Sprintf("%d %s", stats.FailuresTotal, plural(stats.FailuresTotal, "failure", "failures"))
	if len(severityParts) > 0 {
		main += " (" + strings.Join(severityParts, ", ") + ")"
	}
	main += fmt.Sprintf(" in %d %s", stats.FilesWithFailures, plural(stats.FilesWithFailures, wordFile, wordFiles))
	parts = append(parts, main)

	if stats.FailuresFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.FailuresFixable)))
	}
	if stats.FixesApplied > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			stats.FixesApplied, stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label, value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked:", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithFailures > 0 {
		row("Files with issues:", s.Failure.Render(strconv.Itoa(stats.FilesWithFailures)))
	}
	if stats.FilesParseFailed > 0 {
		row("Syntax errors:", s.Failure.Render(strconv.Itoa(stats.FilesParseFailed)))
	}
	if stats.FilesErrored > 0 {
		row("Files errored:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	if stats.FilesModified > 0 {
		row("Files modified:", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.FilesCached > 0 {
		row("Files cached:", s.Dim.Render(strconv.Itoa(stats.FilesCached)))
	}

	builder.WriteString("\n")

	row("Total failures:", s.SummaryValue.Render(strconv.Itoa(stats.FailuresTotal)))
	errs := stats.FailuresBySeverity[config.SeverityError]
	warnings := stats.FailuresBySeverity[config.SeverityWarning]
	if errs > 0 {
		row("  Errors:", s.Error.Render(strconv.Itoa(errs)))
	}
	if warnings > 0 {
		row("  Warnings:", s.Warning.Render(strconv.Itoa(warnings)))
	}
	if stats.FailuresFixable > 0 {
		row("  Fixable:", s.Success.Render(strconv.Itoa(stats.FailuresFixable)))
	}
	if stats.FixesApplied > 0 {
		row("Fixes applied:", s.Success.Render(strconv.Itoa(stats.FixesApplied)))
	}

	builder.WriteString("\n")

	switch {
	case errs > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case warnings > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
