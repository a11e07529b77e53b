package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalsPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		totals     Totals
		wantIssues bool
		wantErrors bool
	}{
		{name: "empty"},
		{name: "warnings only", totals: Totals{Issues: 5, Warnings: 5}, wantIssues: true},
		{name: "errors", totals: Totals{Issues: 3, Errors: 3}, wantIssues: true, wantErrors: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantIssues, tt.totals.HasIssues())
			assert.Equal(t, tt.wantErrors, tt.totals.HasErrors())
		})
	}
}

func TestDefaultOptionsFillEverySection(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Options{
		IncludeFailures: true,
		IncludeByFile:   true,
		IncludeByRule:   true,
		SortBy:          SortByCount,
		SortDesc:        true,
	}, DefaultOptions())
}

func TestParseSortField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    SortField
		wantErr bool
	}{
		{in: "", want: SortByCount},
		{in: "count", want: SortByCount},
		{in: "alpha", want: SortByAlpha},
		{in: "severity", want: SortBySeverity},
		{in: "size", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSortField(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, SortField(tt.in).IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
