// Package analysis turns a runner result into the aggregated views that
// reporters render.
package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// RelativePath returns absPath relative to workDir, or absPath unchanged
// when workDir is empty or unrelated.
func RelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	if rel, err := filepath.Rel(workDir, absPath); err == nil {
		return rel
	}
	return absPath
}

// NewFailureEntry converts a failure for display under path.
func NewFailureEntry(path string, f *lint.RuleFailure) FailureEntry {
	return FailureEntry{
		FilePath:    path,
		RuleName:    f.RuleName,
		Severity:    string(effectiveSeverity(f.Severity)),
		Message:     f.Message,
		StartLine:   f.Start.Line + 1,
		StartColumn: f.Start.Character + 1,
		EndLine:     f.End.Line + 1,
		EndColumn:   f.End.Character + 1,
		StartOffset: f.Range.Pos,
		EndOffset:   f.Range.End,
		Fixable:     f.HasFix(),
		Fix:         f.Fix,
	}
}

// effectiveSeverity treats an unset severity as a warning.
func effectiveSeverity(sev config.Severity) config.Severity {
	return cmp.Or(sev, config.SeverityWarning)
}

// tally counts failures for one row of a ByRule or ByFile view and
// remembers which names of the other view it touched.
type tally struct {
	issues, errors, warnings int
	fixable                  bool
	related                  map[string]struct{}
}

func (t *tally) add(f *lint.RuleFailure, other string) {
	t.issues++
	switch effectiveSeverity(f.Severity) {
	case config.SeverityError:
		t.errors++
	case config.SeverityWarning:
		t.warnings++
	}
	t.fixable = t.fixable || f.HasFix()
	t.related[other] = struct{}{}
}

func (t *tally) relatedNames() []string {
	return slices.Sorted(maps.Keys(t.related))
}

type tallies map[string]*tally

func (ts tallies) get(name string) *tally {
	t, ok := ts[name]
	if !ok {
		t = &tally{related: make(map[string]struct{})}
		ts[name] = t
	}
	return t
}

// Analyze walks every failure once and fills the views opts selects.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Version: ReportVersion, Timestamp: time.Now()}
	if result == nil {
		return report
	}

	byRule, byFile := tallies{}, tallies{}
	totals := &report.Totals

	for _, file := range result.Files {
		totals.Files++
		if file.Failed() {
			totals.FilesErrored++
		}
		if file.Result == nil || file.Result.Lint == nil {
			continue
		}
		if file.Result.Written {
			totals.FilesModified++
		}
		if file.Result.Fix != nil {
			totals.Fixed += len(file.Result.Fix.Applied)
		}

		lr := file.Result.Lint
		totals.RuleErrors += len(lr.RuleErrors)
		if lr.ParseFailed {
			totals.ParseErrors++
		}
		if len(lr.Failures) == 0 {
			continue
		}
		totals.FilesWithIssues++

		path := RelativePath(file.Path, opts.WorkingDir)
		for _, f := range lr.Failures {
			totals.Issues++
			switch effectiveSeverity(f.Severity) {
			case config.SeverityError:
				totals.Errors++
			case config.SeverityWarning:
				totals.Warnings++
			}
			if f.HasFix() {
				totals.Fixable++
			}

			byRule.get(f.RuleName).add(f, path)
			byFile.get(path).add(f, f.RuleName)

			if opts.IncludeFailures {
				report.Failures = append(report.Failures, NewFailureEntry(path, f))
			}
		}
	}

	if opts.IncludeByRule {
		for name, t := range byRule {
			report.ByRule = append(report.ByRule, RuleAnalysis{
				RuleName: name,
				Issues:   t.issues,
				Errors:   t.errors,
				Warnings: t.warnings,
				Fixable:  t.fixable,
				Files:    t.relatedNames(),
			})
		}
		sortRows(report.ByRule, opts, func(r RuleAnalysis) rowKey {
			return rowKey{r.RuleName, r.Issues, r.Errors, r.Warnings}
		})
	}
	if opts.IncludeByFile {
		for path, t := range byFile {
			report.ByFile = append(report.ByFile, FileAnalysis{
				Path:     path,
				Issues:   t.issues,
				Errors:   t.errors,
				Warnings: t.warnings,
				Rules:    t.relatedNames(),
			})
		}
		sortRows(report.ByFile, opts, func(f FileAnalysis) rowKey {
			return rowKey{f.Path, f.Issues, f.Errors, f.Warnings}
		})
	}

	return report
}

type rowKey struct {
	name                     string
	issues, errors, warnings int
}

// sortRows orders rows by opts.SortBy, falling back to the name so map
// iteration order never leaks into output. Alphabetical order is always
// ascending and severity order always puts errors first.
func sortRows[T any](rows []T, opts Options, key func(T) rowKey) {
	slices.SortFunc(rows, func(a, b T) int {
		l, r := key(a), key(b)
		byName := cmp.Compare(l.name, r.name)
		switch opts.SortBy {
		case SortByAlpha:
			return byName
		case SortBySeverity:
			return cmp.Or(
				cmp.Compare(r.errors, l.errors),
				cmp.Compare(r.warnings, l.warnings),
				cmp.Compare(r.issues, l.issues),
				byName,
			)
		}
		byCount := cmp.Compare(l.issues, r.issues)
		if opts.SortDesc {
			byCount = -byCount
		}
		return cmp.Or(byCount, byName)
	})
}
