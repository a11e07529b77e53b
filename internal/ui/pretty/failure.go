package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotslint/pkg/analysis"
	"github.com/yaklabco/gotslint/pkg/config"
)

// FormatFailure formats one failure in prose style:
//
//	ERROR: src/app.ts:3:5 - Missing semicolon (semicolon)
//
// When sourceLine is non-empty it is printed below with the failure
// range underlined.
func (s *Styles) FormatFailure(entry analysis.FailureEntry, sourceLine string, showRule bool) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(entry.FilePath), entry.StartLine, entry.StartColumn)
	builder.WriteString(s.FormatSeverityLabel(entry.Severity))
	builder.WriteString(": ")
	builder.WriteString(location)
	builder.WriteString(" - ")
	builder.WriteString(s.Message.Render(entry.Message))
	if showRule {
		builder.WriteString(" " + s.Rule.Render("("+entry.RuleName+")"))
	}
	builder.WriteString("\n")

	if sourceLine != "" {
		width := 1
		if entry.EndLine == entry.StartLine && entry.EndColumn > entry.StartColumn {
			width = entry.EndColumn - entry.StartColumn
		}
		builder.WriteString(s.FormatSourceContext(sourceLine, entry.StartColumn, width))
	}

	return builder.String()
}

// FormatSeverityLabel returns the upper-case severity prefix of a prose line.
func (s *Styles) FormatSeverityLabel(sev string) string {
	return s.Severity(config.Severity(sev)).Render(strings.ToUpper(sev))
}

// FormatSeverity returns a styled lower-case severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	return s.Severity(sev).Render(string(sev))
}

// FormatSourceContext formats the source line with the failure underlined.
// column is 1-based; width is the number of marked characters.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	const indent = "    "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		width = max(1, min(width, len(line)-column+1))
		marker := "^" + strings.Repeat("~", width-1)
		builder.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render(marker) + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, failureCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case failureCount == 1:
		header += s.Dim.Render(" (1 failure)")
	case failureCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d failures)", failureCount))
	}
	return header
}
