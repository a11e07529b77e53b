package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/runner"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

func failure(rule string, sev config.Severity, line int, fixes ...fix.Replacement) *lint.RuleFailure {
	return &lint.RuleFailure{
		RuleName: rule,
		Severity: sev,
		Message:  rule + " message",
		Range:    tsast.TextRange{Pos: line * 10, End: line*10 + 2},
		Start:    tsast.LineAndCharacter{Line: line, Character: 0},
		End:      tsast.LineAndCharacter{Line: line, Character: 2},
		Fix:      fixes,
	}
}

func outcome(path string, failures ...*lint.RuleFailure) runner.FileOutcome {
	return runner.FileOutcome{
		Path:   path,
		Result: &lint.FileResult{Path: path, Lint: &lint.Result{Failures: failures}},
	}
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{}, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, 0, report.Totals.Issues)
	assert.Empty(t, report.Failures)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByRule)

	assert.NotNil(t, Analyze(nil, DefaultOptions()))
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	fixed := outcome("fixed.ts")
	fixed.Result.Written = true
	fixed.Result.Fix = &lint.FixResult{Applied: make([]lint.AppliedFix, 3)}

	broken := outcome("broken.ts", failure(lint.ParseErrorRule, config.SeverityError, 0))
	broken.Result.Lint.ParseFailed = true

	flaky := outcome("flaky.ts")
	flaky.Result.Lint.RuleErrors = []*lint.RuleError{{Rule: "semicolon", Err: errors.New("boom")}}

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("a.ts",
			failure("semicolon", config.SeverityError, 0, fix.AppendText(2, ";")),
			failure("semicolon", config.SeverityError, 1),
			failure("quotemark", config.SeverityWarning, 2),
		),
		outcome("b.ts", failure("quotemark", "", 0)),
		broken,
		fixed,
		flaky,
		{Path: "gone.ts", Error: fmt.Errorf("read: %w", lint.ErrFileNotFound)},
	}}

	totals := Analyze(result, DefaultOptions()).Totals

	assert.Equal(t, Totals{
		Files:           6,
		FilesWithIssues: 3,
		FilesErrored:    1,
		FilesModified:   1,
		Issues:          5,
		Errors:          3,
		Warnings:        2,
		Fixable:         1,
		Fixed:           3,
		ParseErrors:     1,
		RuleErrors:      1,
	}, totals)
}

func TestAnalyze_FailureEntries(t *testing.T) {
	t.Parallel()

	rep := fix.AppendText(2, ";")
	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("/work/src/a.ts", failure("semicolon", config.SeverityError, 3, rep)),
	}}

	opts := DefaultOptions()
	opts.WorkingDir = "/work"
	report := Analyze(result, opts)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, FailureEntry{
		FilePath:    "src/a.ts",
		RuleName:    "semicolon",
		Severity:    "error",
		Message:     "semicolon message",
		StartLine:   4,
		StartColumn: 1,
		EndLine:     4,
		EndColumn:   3,
		StartOffset: 30,
		EndOffset:   32,
		Fixable:     true,
		Fix:         []fix.Replacement{rep},
	}, report.Failures[0])
}

func TestAnalyze_GroupsByRule(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("a.ts",
			failure("semicolon", config.SeverityError, 0, fix.AppendText(2, ";")),
			failure("semicolon", config.SeverityError, 1),
			failure("quotemark", config.SeverityWarning, 2),
		),
		outcome("b.ts", failure("semicolon", config.SeverityWarning, 0)),
	}}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByRule, 2)
	assert.Equal(t, RuleAnalysis{
		RuleName: "semicolon",
		Issues:   3,
		Errors:   2,
		Warnings: 1,
		Fixable:  true,
		Files:    []string{"a.ts", "b.ts"},
	}, report.ByRule[0])
	assert.Equal(t, RuleAnalysis{
		RuleName: "quotemark",
		Issues:   1,
		Warnings: 1,
		Files:    []string{"a.ts"},
	}, report.ByRule[1])
}

func TestAnalyze_GroupsByFile(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("a.ts", failure("semicolon", config.SeverityError, 0)),
		outcome("clean.ts"),
		outcome("b.ts",
			failure("semicolon", config.SeverityError, 0),
			failure("quotemark", config.SeverityWarning, 1),
			failure("quotemark", config.SeverityWarning, 2),
		),
	}}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByFile, 2, "clean files are omitted")
	assert.Equal(t, FileAnalysis{
		Path:     "b.ts",
		Issues:   3,
		Errors:   1,
		Warnings: 2,
		Rules:    []string{"quotemark", "semicolon"},
	}, report.ByFile[0])
	assert.Equal(t, "a.ts", report.ByFile[1].Path)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("z.ts", failure("curly", config.SeverityError, 0)),
		outcome("a.ts",
			failure("indent", config.SeverityWarning, 0),
			failure("indent", config.SeverityWarning, 1),
		),
		outcome("m.ts",
			failure("indent", config.SeverityWarning, 0),
			failure("indent", config.SeverityWarning, 1),
		),
	}}

	tests := []struct {
		name  string
		sort  SortField
		desc  bool
		files []string
		rules []string
	}{
		{name: "count descending", sort: SortByCount, desc: true, files: []string{"a.ts", "m.ts", "z.ts"}, rules: []string{"indent", "curly"}},
		{name: "count ascending", sort: SortByCount, files: []string{"z.ts", "a.ts", "m.ts"}, rules: []string{"curly", "indent"}},
		{name: "alpha", sort: SortByAlpha, desc: true, files: []string{"a.ts", "m.ts", "z.ts"}, rules: []string{"curly", "indent"}},
		{name: "severity", sort: SortBySeverity, files: []string{"z.ts", "a.ts", "m.ts"}, rules: []string{"curly", "indent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.SortBy = tt.sort
			opts.SortDesc = tt.desc
			report := Analyze(result, opts)

			var files, rules []string
			for _, fa := range report.ByFile {
				files = append(files, fa.Path)
			}
			for _, ra := range report.ByRule {
				rules = append(rules, ra.RuleName)
			}
			assert.Equal(t, tt.files, files)
			assert.Equal(t, tt.rules, rules)
		})
	}
}

func TestAnalyze_ExcludeViews(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("file.ts", failure("curly", config.SeverityError, 0)),
	}}

	opts := Options{IncludeByRule: true, SortBy: SortByCount, SortDesc: true}
	report := Analyze(result, opts)

	assert.Empty(t, report.Failures, "failures should be excluded")
	assert.Empty(t, report.ByFile, "byFile should be excluded")
	assert.NotEmpty(t, report.ByRule, "byRule should be included")
	assert.Equal(t, 1, report.Totals.Issues, "totals always computed")
}
