// Package reporter formats lint results for terminals and tools.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gotslint/pkg/analysis"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// Reporter writes one run's failures in some output format and returns
// how many failures it reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

var _ Reporter = (*analyzedReporter)(nil)

// analyzedReporter aggregates a result into an analysis.Report before
// handing it to a Renderer. Formats that stream failures directly
// implement Reporter themselves.
type analyzedReporter struct {
	renderer Renderer
	opts     analysis.Options
}

func newAnalyzedReporter(renderer Renderer, opts Options) *analyzedReporter {
	analysisOpts := analysis.DefaultOptions()
	analysisOpts.IncludeFailures = false
	analysisOpts.WorkingDir = opts.WorkingDir
	if opts.SummarySort.IsValid() {
		analysisOpts.SortBy = opts.SummarySort
	}
	return &analyzedReporter{renderer: renderer, opts: analysisOpts}
}

func (r *analyzedReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, r.opts)
	if err := r.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render %T: %w", r.renderer, err)
	}
	return report.Totals.Issues, nil
}

// New returns the Reporter for opts.Format. An empty format means prose
// and a nil Writer means stdout.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatProse
	}

	switch opts.Format {
	case FormatProse:
		return NewProseReporter(opts), nil
	case FormatStylish:
		return NewStylishReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return newAnalyzedReporter(NewSummaryRenderer(opts), opts), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", opts.Format)
}
