package analysis

import "fmt"

// SortField orders the per-file and per-rule rows of a Report.
type SortField string

// Sort orders. Ties always fall back to the row name.
const (
	SortByCount    SortField = "count"
	SortByAlpha    SortField = "alpha"
	SortBySeverity SortField = "severity"
)

// IsValid reports whether s names a known order.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha || s == SortBySeverity
}

// ParseSortField converts user input to a SortField. An empty string selects
// SortByCount.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortByCount, nil
	}
	field := SortField(s)
	if !field.IsValid() {
		return "", fmt.Errorf("unknown sort order %q (want count, alpha or severity)", s)
	}
	return field, nil
}

// Options selects which sections Analyze fills and how rows are ordered.
type Options struct {
	IncludeFailures bool // flat Failures list
	IncludeByFile   bool
	IncludeByRule   bool

	SortBy   SortField
	SortDesc bool

	// WorkingDir, when set, makes reported paths relative to it.
	WorkingDir string
}

// DefaultOptions fills every section, busiest rows first.
func DefaultOptions() Options {
	return Options{
		IncludeFailures: true,
		IncludeByFile:   true,
		IncludeByRule:   true,
		SortBy:          SortByCount,
		SortDesc:        true,
	}
}
