package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/lint"
)

// Runner lints files concurrently through a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them with at most
// opts.Jobs files in flight. Outcomes are reported in path order
// regardless of completion order.
//
// File-level errors are recorded in the outcomes. The error return is
// reserved for discovery failures and cancellation; on cancellation the
// outcomes gathered so far are returned with it.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts)
}

// RunFiles processes the given files without discovery.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range files {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.process(gctx, path, pipelineOpts)
			done[i] = true
			return nil
		})
	}
	waitErr := group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}

	logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithFailures,
		logging.FieldFailuresTotal, result.Stats.FailuresTotal,
		logging.FieldFilesModified, result.Stats.FilesModified)
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, opts lint.PipelineOptions) FileOutcome {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	res, err := r.Pipeline.ProcessFile(ctx, path, opts)
	outcome := FileOutcome{Path: path, Result: res, Error: err}
	if outcome.Failed() {
		logging.FromContext(ctx).Debug("file failed", logging.FieldError, err)
	}
	return outcome
}
