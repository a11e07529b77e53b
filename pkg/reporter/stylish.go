package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
	"github.com/yaklabco/gotslint/pkg/analysis"
	"github.com/yaklabco/gotslint/pkg/runner"
)

const overallSeparatorWidth = 80

// StylishReporter prints failures as color-coded tables, one per file by
// default.
type StylishReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewStylishReporter creates a new stylish reporter.
func NewStylishReporter(opts Options) *StylishReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &StylishReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, pretty.TerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *StylishReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	var groups [][]analysis.FailureEntry
	var total int
	for _, file := range result.Files {
		if entries := fileEntries(r.opts, file); len(entries) > 0 {
			groups = append(groups, entries)
			total += len(entries)
		}
	}
	r.reportErrors(result)

	if total == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw)
			fmt.Fprintln(r.bw, r.styles.Success.Render("All files passed!"))
			fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf("%d files checked", result.Stats.FilesProcessed)))
		}
		return 0, nil
	}

	if r.opts.PerFile {
		r.reportPerFile(groups)
	} else {
		var all []analysis.FailureEntry
		for _, g := range groups {
			all = append(all, g...)
		}
		fmt.Fprint(r.bw, r.formatter.FormatTable(all))
	}

	if r.opts.ShowSummary {
		if r.opts.PerFile {
			fmt.Fprintln(r.bw)
			fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("═", overallSeparatorWidth)))
			fmt.Fprintln(r.bw, r.styles.Bold.Render("Overall Summary"))
		}
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
		if result.Stats.FailuresFixable > 0 {
			fmt.Fprintln(r.bw)
			fmt.Fprintln(r.bw, r.styles.Dim.Render("Run with --fix to auto-repair fixable failures"))
		}
	}

	return total, nil
}

func (r *StylishReporter) reportPerFile(groups [][]analysis.FailureEntry) {
	for _, entries := range groups {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(entries[0].FilePath, len(entries)))
		fmt.Fprint(r.bw, r.formatter.FormatFileTable(entries))
	}
}

// reportErrors lists files that could not be processed.
func (r *StylishReporter) reportErrors(result *runner.Result) {
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
			r.styles.Error.Render(file.Error.Error()))
	}
}
