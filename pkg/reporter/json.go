package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// JSONReporter writes every failure of the run as one JSON array in the
// failure interchange format.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	failures := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(failures); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return len(failures), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) []lint.FailureJSON {
	failures := make([]lint.FailureJSON, 0)
	if result == nil {
		return failures
	}

	for _, file := range result.Files {
		lr := fileLint(file)
		if lr == nil {
			continue
		}
		for _, f := range lr.Failures {
			out := f.ToJSON()
			out.Name = r.opts.displayPath(file.Path)
			failures = append(failures, out)
		}
	}
	return failures
}
