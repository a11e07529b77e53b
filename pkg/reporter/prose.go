package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
	"github.com/yaklabco/gotslint/pkg/analysis"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// ProseReporter prints one line per failure:
//
//	ERROR: src/app.ts:3:5 - Missing semicolon
type ProseReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewProseReporter creates a new prose reporter.
func NewProseReporter(opts Options) *ProseReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &ProseReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *ProseReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if file.Error != nil && !file.FixesRemain() {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}

		lr := fileLint(file)
		if lr == nil {
			continue
		}
		for _, entry := range fileEntries(r.opts, file) {
			var line string
			if r.opts.ShowContext {
				line = sourceLine(lr, entry.StartLine)
			}
			fmt.Fprint(r.bw, r.styles.FormatFailure(entry, line, r.opts.ShowRule))
			total++
		}
		for _, ruleErr := range lr.RuleErrors {
			fmt.Fprintln(r.bw, r.styles.Warning.Render(ruleErr.Error()))
		}
		if file.FixesRemain() {
			fmt.Fprintln(r.bw, r.styles.Warning.Render(file.Error.Error()))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// fileLint returns the final lint result of an outcome, or nil.
func fileLint(file runner.FileOutcome) *lint.Result {
	if file.Result == nil {
		return nil
	}
	return file.Result.Lint
}

// fileEntries converts the failures of one outcome for display.
func fileEntries(opts Options, file runner.FileOutcome) []analysis.FailureEntry {
	lr := fileLint(file)
	if lr == nil || len(lr.Failures) == 0 {
		return nil
	}
	path := opts.displayPath(file.Path)
	entries := make([]analysis.FailureEntry, len(lr.Failures))
	for i, f := range lr.Failures {
		entries[i] = analysis.NewFailureEntry(path, f)
	}
	return entries
}

// sourceLine returns the text of a 1-based line. Cached results carry no
// source and yield "".
func sourceLine(lr *lint.Result, line int) string {
	if lr == nil || lr.File == nil || line < 1 || line > lr.File.Lines.LineCount() {
		return ""
	}
	return lr.File.Lines.LineText(line - 1)
}
