package reporter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/analysis"
)

func renderSummary(t *testing.T, opts Options, report *analysis.Report) string {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	require.NoError(t, NewSummaryRenderer(opts).Render(context.Background(), report))
	return buf.String()
}

func summaryReport() *analysis.Report {
	return &analysis.Report{
		ByRule: []analysis.RuleAnalysis{
			{RuleName: "no-trailing-whitespace", Issues: 5, Errors: 3, Warnings: 2, Fixable: true},
			{RuleName: "no-var-keyword", Issues: 2, Errors: 2},
		},
		ByFile: []analysis.FileAnalysis{
			{Path: "src/app.ts", Issues: 4, Errors: 3, Warnings: 1},
			{Path: "src/util.js", Issues: 3, Errors: 2, Warnings: 1},
		},
		Totals: analysis.Totals{Issues: 7, Errors: 5, Warnings: 2, Files: 2, FilesWithIssues: 2},
	}
}

func TestSummaryRenderer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     Options
		report   *analysis.Report
		contains []string
		absent   []string
	}{
		{
			name:     "clean run",
			report:   &analysis.Report{},
			contains: []string{"No failures found"},
			absent:   []string{"Rules Summary", "Files Summary", "Total:"},
		},
		{
			name:   "both tables",
			report: summaryReport(),
			contains: []string{
				"Rules Summary", "no-trailing-whitespace", "no-var-keyword", "✓",
				"Files Summary", "src/app.ts", "src/util.js",
				"Total: 7 failures (5 errors, 2 warnings) in 2 files",
			},
		},
		{
			name: "totals only",
			report: &analysis.Report{
				Totals: analysis.Totals{Issues: 1, Errors: 1, FilesWithIssues: 1, Fixable: 1, Fixed: 2, ParseErrors: 1},
			},
			contains: []string{"Total: 1 failure (1 error) in 1 file, 1 fixable, 2 fixed, 1 with syntax errors"},
			absent:   []string{"Rules Summary", "Files Summary"},
		},
		{
			name: "long names are truncated",
			report: &analysis.Report{
				ByRule: []analysis.RuleAnalysis{{RuleName: strings.Repeat("r", 40), Issues: 1}},
				ByFile: []analysis.FileAnalysis{{Path: strings.Repeat("d/", 40) + "index.ts", Issues: 1}},
				Totals: analysis.Totals{Issues: 1, FilesWithIssues: 1},
			},
			contains: []string{strings.Repeat("r", summaryRuleWidth-1) + "…", "…", "index.ts"},
			absent:   []string{strings.Repeat("r", summaryRuleWidth+1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output := renderSummary(t, tt.opts, tt.report)
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, output, unwanted)
			}
		})
	}
}

func TestSummaryRenderer_SectionOrder(t *testing.T) {
	t.Parallel()

	for _, filesFirst := range []bool{false, true} {
		output := renderSummary(t, Options{SummaryFilesFirst: filesFirst}, summaryReport())

		rulesIdx := strings.Index(output, "Rules Summary")
		filesIdx := strings.Index(output, "Files Summary")
		totalIdx := strings.Index(output, "Total:")
		require.NotEqual(t, -1, rulesIdx)
		require.NotEqual(t, -1, filesIdx)

		if filesFirst {
			assert.Less(t, filesIdx, rulesIdx)
		} else {
			assert.Less(t, rulesIdx, filesIdx)
		}
		assert.Greater(t, totalIdx, max(rulesIdx, filesIdx), "totals come last")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateEnd("short", 10))
	assert.Equal(t, "abcd…", truncateEnd("abcdefgh", 5))
	assert.Equal(t, "…efgh", truncateStart("abcdefgh", 5))
	assert.Equal(t, "ü…", truncateEnd("üüü", 2), "counts runes, not bytes")
}
