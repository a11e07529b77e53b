package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotslint/pkg/config"
)

// Format represents an output format.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatProse   = config.FormatProse
	FormatStylish = config.FormatStylish
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatDiff    = config.FormatDiff
	FormatSummary = config.FormatSummary
)

// Formats lists every supported format, default first.
func Formats() []Format {
	return []Format{FormatProse, FormatStylish, FormatJSON, FormatSARIF, FormatDiff, FormatSummary}
}

// IsValidFormat reports whether f is a known format.
func IsValidFormat(f Format) bool {
	for _, known := range Formats() {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFormat parses a format name. The empty string selects prose.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatProse, nil
	}
	f := Format(strings.ToLower(name))
	if !IsValidFormat(f) {
		names := make([]string, 0, len(Formats()))
		for _, known := range Formats() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(names, ", "))
	}
	return f, nil
}
