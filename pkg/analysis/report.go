package analysis

import (
	"time"

	"github.com/yaklabco/gotslint/pkg/fix"
)

// Report contains pre-computed views of lint results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Failures is the flat list for detailed output, in file then
	// position order.
	Failures []FailureEntry `json:"failures,omitempty"`

	// ByFile groups failures by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups failures by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// FailureEntry is one failure with display positions. Lines and columns
// are 1-based; offsets are 0-based bytes.
type FailureEntry struct {
	FilePath    string            `json:"filePath"`
	RuleName    string            `json:"ruleName"`
	Severity    string            `json:"severity"`
	Message     string            `json:"message"`
	StartLine   int               `json:"startLine"`
	StartColumn int               `json:"startColumn"`
	EndLine     int               `json:"endLine"`
	EndColumn   int               `json:"endColumn"`
	StartOffset int               `json:"startOffset"`
	EndOffset   int               `json:"endOffset"`
	Fixable     bool              `json:"fixable"`
	Fix         []fix.Replacement `json:"fix,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	FilesModified   int `json:"filesModified"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Fixable         int `json:"fixable"`
	Fixed           int `json:"fixed"`
	ParseErrors     int `json:"parseErrors"`
	RuleErrors      int `json:"ruleErrors"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleName string   `json:"ruleName"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
