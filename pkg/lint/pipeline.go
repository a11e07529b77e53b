package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop. Rules that keep undoing each
// other's fixes would otherwise loop forever.
const DefaultMaxFixPasses = 10

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// AppliedFix records a fix applied in one pass.
type AppliedFix struct {
	Pass    int
	Failure *RuleFailure
}

// SkippedFix records a fix that was not applied in one pass.
type SkippedFix struct {
	Pass    int
	Failure *RuleFailure
	Reason  fix.SkipReason

	// ConflictsWith is the accepted failure it overlapped, for SkipConflict.
	ConflictsWith *RuleFailure

	// Err is the validation error, for SkipInvalid.
	Err error
}

// FixResult is the outcome of fixing one file to convergence.
type FixResult struct {
	Path string

	// Original is the input content; Content the fixed content.
	Original []byte
	Content  []byte

	// Passes is the number of fix passes applied.
	Passes int

	Applied []AppliedFix
	Skipped []SkippedFix

	// Result is the lint result of the final content.
	Result *Result

	// CapReached is set when fixable failures remained after the last
	// allowed pass.
	CapReached bool

	// Reverted is set when a pass produced syntax errors and was discarded.
	Reverted bool

	// Diff is set when diffs are requested and the content changed.
	Diff *fix.Diff
}

// Modified reports whether fixing changed the content.
func (r *FixResult) Modified() bool {
	return r.Passes > 0
}

// Pipeline fixes files by alternating conflict resolution, application
// and re-linting.
type Pipeline struct {
	// Linter runs each pass.
	Linter *Linter

	// MaxFixPasses limits the fix loop. Zero means DefaultMaxFixPasses.
	MaxFixPasses int

	// Diff requests a unified diff in every FixResult.
	Diff bool

	// Cache, when set, short-circuits lint-only runs of unchanged files.
	// Fix mode never reads or writes it.
	Cache *Cache
}

// NewPipeline creates a pipeline over linter.
func NewPipeline(linter *Linter) *Pipeline {
	return &Pipeline{Linter: linter}
}

// Fix lints content and applies fixes until no fixable failure remains.
//
// Each pass resolves conflicts between the pass's fixes (fix.Resolve),
// applies the accepted ones in one rewrite and re-lints the new text. A
// pass that introduces syntax errors is discarded and the loop stops.
// When the pass limit is reached with fixable failures left, the result
// is returned together with an error wrapping ErrFixesRemain.
func (p *Pipeline) Fix(ctx context.Context, path string, content []byte) (*FixResult, error) {
	logger := logging.FromContext(ctx)

	maxPasses := p.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	out := &FixResult{Path: path, Original: content, Content: content}

	res, err := p.Linter.Lint(ctx, path, content)
	if err != nil {
		return nil, err
	}

	for {
		fixable := res.Fixable()
		if len(fixable) == 0 {
			break
		}
		if out.Passes == maxPasses {
			out.CapReached = true
			break
		}
		pass := out.Passes + 1

		candidates := make([]fix.Candidate, len(fixable))
		for i, f := range fixable {
			candidates[i] = fix.Candidate{ID: i, Fix: f.Fix}
		}
		resolution := fix.Resolve(candidates, len(content))

		for _, rej := range resolution.Rejected {
			skipped := SkippedFix{Pass: pass, Failure: fixable[rej.ID], Reason: rej.Reason, Err: rej.Err}
			if rej.ConflictsWith >= 0 {
				skipped.ConflictsWith = fixable[rej.ConflictsWith]
			}
			out.Skipped = append(out.Skipped, skipped)
		}
		if len(resolution.Accepted) == 0 {
			break
		}

		next := fix.Apply(content, resolution.Replacements())
		nextRes, err := p.Linter.Lint(ctx, path, next)
		if err != nil {
			return nil, err
		}
		if nextRes.ParseFailed && !res.ParseFailed {
			logger.Warn("discarding fixes that break the syntax", logging.FieldPath, path, logging.FieldPass, pass)
			out.Reverted = true
			break
		}

		for _, c := range resolution.Accepted {
			out.Applied = append(out.Applied, AppliedFix{Pass: pass, Failure: fixable[c.ID]})
		}
		logger.Debug("fix pass applied",
			logging.FieldPath, path,
			logging.FieldPass, pass,
			logging.FieldAccepted, len(resolution.Accepted),
			logging.FieldSkipped, len(resolution.Rejected))

		content, res = next, nextRes
		out.Passes = pass
	}

	out.Content = content
	out.Result = res

	if p.Diff && out.Modified() {
		diff, err := fix.GenerateDiff(path, out.Original, content)
		if err != nil {
			return nil, fmt.Errorf("generate diff: %w", err)
		}
		out.Diff = diff
	}

	if out.CapReached {
		return out, fmt.Errorf("%s: %w after %d iterations", path, ErrFixesRemain, out.Passes)
	}
	return out, nil
}

// PipelineOptions controls file processing.
type PipelineOptions struct {
	// Fix enables auto-fix mode.
	Fix bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// Backup saves originals before fixed files are written.
	Backup fsutil.Backups

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return PipelineOptions{Backup: fsutil.Backups{Mode: fsutil.BackupModeSidecar}, StrictRaceDetection: true}
	}
	return PipelineOptions{
		Fix:    cfg.Fix,
		DryRun: cfg.DryRun,
		Backup: fsutil.Backups{
			Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
		StrictRaceDetection: true,
	}
}

// FileResult is the outcome of processing one file on disk.
type FileResult struct {
	// Path is the file path that was processed.
	Path string

	// Lint is the final lint result.
	Lint *Result

	// Fix is set in fix mode.
	Fix *FixResult

	// Skipped is true if the file was not written, e.g. because it
	// changed on disk while being processed.
	Skipped    bool
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool
}

// ProcessFile lints a file on disk and, in fix mode, writes the fixed
// content back.
//
// The steps are:
//  1. Read and hash the original file.
//  2. Lint, or fix to convergence in fix mode.
//  3. In dry-run mode, stop after computing the diff.
//  4. Check for concurrent modifications.
//  5. Create a backup (if enabled).
//  6. Write the fixed content atomically.
//
// ErrFixesRemain is returned alongside a complete result; the file is
// still written.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*FileResult, error) {
	content, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result := &FileResult{Path: path}

	if !opts.Fix {
		res, err := p.lintCached(ctx, path, content)
		if err != nil {
			return nil, err
		}
		result.Lint = res
		return result, nil
	}

	pipeline := *p
	pipeline.Diff = p.Diff || opts.DryRun
	fixed, fixErr := pipeline.Fix(ctx, path, content)
	if fixed == nil {
		return nil, fixErr
	}
	result.Fix = fixed
	result.Lint = fixed.Result

	if !fixed.Modified() || opts.DryRun {
		return result, fixErr
	}

	modified, err := snap.Changed(ctx, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, fixErr
	}

	if opts.Backup.Active() {
		created, err := opts.Backup.Save(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteFile(ctx, path, fixed.Content, snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, fixErr
}

// lintCached lints content, consulting and filling the cache when one is set.
func (p *Pipeline) lintCached(ctx context.Context, path string, content []byte) (*Result, error) {
	if p.Cache == nil {
		return p.Linter.Lint(ctx, path, content)
	}

	if failures, ok := p.Cache.Get(path, content); ok {
		logging.FromContext(ctx).Debug("lint result", logging.FieldPath, path, logging.FieldCacheHit, true)
		res := &Result{Failures: failures, Cached: true}
		for _, f := range failures {
			if f.RuleName == ParseErrorRule {
				res.ParseFailed = true
			}
		}
		return res, nil
	}

	res, err := p.Linter.Lint(ctx, path, content)
	if err != nil {
		return nil, err
	}
	if err := p.Cache.Put(ctx, path, content, res); err != nil {
		logging.FromContext(ctx).Warn("cache write failed", logging.FieldPath, path, logging.FieldError, err)
	}
	return res, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}
