package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gotslint/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext prints the source line under each prose failure.
	ShowContext bool

	// ShowRule appends the rule name to prose failures.
	ShowRule bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified output where applicable.
	Compact bool

	// SummaryFilesFirst prints the file table before the rule table in
	// summary output.
	SummaryFilesFirst bool

	// SummarySort orders the rows of both summary tables.
	SummarySort analysis.SortField

	// PerFile prints one stylish table per file instead of one for the run.
	PerFile bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// Version is reported as the tool version in SARIF output.
	Version string

	// RuleDescriptions maps rule names to one-line descriptions for
	// SARIF rule metadata.
	RuleDescriptions map[string]string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatProse,
		Color:       "auto",
		ShowSummary: true,
		PerFile:     true,
	}
}

func (o Options) displayPath(path string) string {
	return analysis.RelativePath(path, o.WorkingDir)
}
