package runner

import (
	"errors"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// Result is nil when the file could not be processed at all.
	Result *lint.FileResult

	// Error is set if processing failed. With lint.ErrFixesRemain the
	// Result is still complete.
	Error error
}

// FixesRemain reports whether fixing stopped at the pass limit.
func (o FileOutcome) FixesRemain() bool {
	return errors.Is(o.Error, lint.ErrFixesRemain)
}

// Failed reports whether the file could not be processed.
func (o FileOutcome) Failed() bool {
	return o.Error != nil && !o.FixesRemain()
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped were not written because they changed during processing.
	FilesSkipped int

	FilesErrored int

	// FilesCached were answered from the lint cache.
	FilesCached int

	// FilesParseFailed had syntax errors.
	FilesParseFailed int

	// FilesFixesRemain reached the fix pass limit.
	FilesFixesRemain int

	FilesWithFailures int
	FilesModified     int

	FailuresTotal      int
	FailuresFixable    int
	FailuresBySeverity map[config.Severity]int

	// FixesApplied counts fixes applied across every pass and file.
	FixesApplied int

	// RuleErrors counts rules that failed on some file.
	RuleErrors int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any error-severity failure occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FailuresBySeverity[config.SeverityError] > 0
}

// HasIssues reports whether any failure was found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.FailuresTotal > 0
}

// Errors returns the per-file processing errors, excluding the pass limit.
func (r *Result) Errors() []error {
	var errs []error
	for _, f := range r.Files {
		if f.Failed() {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

func newStats() Stats {
	return Stats{FailuresBySeverity: make(map[config.Severity]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Failed() {
		r.Stats.FilesErrored++
		return
	}
	if outcome.FixesRemain() {
		r.Stats.FilesFixesRemain++
	}

	res := outcome.Result
	if res == nil {
		return
	}
	r.Stats.FilesProcessed++

	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Written {
		r.Stats.FilesModified++
	}
	if res.Fix != nil {
		r.Stats.FixesApplied += len(res.Fix.Applied)
	}

	lr := res.Lint
	if lr == nil {
		return
	}
	if lr.Cached {
		r.Stats.FilesCached++
	}
	if lr.ParseFailed {
		r.Stats.FilesParseFailed++
	}
	r.Stats.RuleErrors += len(lr.RuleErrors)

	r.Stats.FailuresTotal += len(lr.Failures)
	r.Stats.FailuresFixable += lr.FixableCount()
	if len(lr.Failures) > 0 {
		r.Stats.FilesWithFailures++
	}
	for _, f := range lr.Failures {
		severity := f.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.FailuresBySeverity[severity]++
	}
}
