package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
	"github.com/yaklabco/gotslint/pkg/parser/treesitter"
	"github.com/yaklabco/gotslint/pkg/runner"
)

func newRunner(t *testing.T) *runner.Runner {
	t.Helper()
	debugger, err := lint.NewConfiguredRule(rules.NewNoDebuggerRule())
	require.NoError(t, err)
	linter := lint.NewLinterFor(treesitter.New(), debugger)
	return runner.New(lint.NewPipeline(linter))
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewLinterFor(treesitter.New()))
	assert.Same(t, pipeline, runner.New(pipeline).Pipeline)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"readme.md": "# hi\n"})
	res, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Empty(t, res.Files)
	assert.Equal(t, 0, res.Stats.FilesDiscovered)
	assert.False(t, res.HasIssues())
}

func TestRunner_Run_Stats(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"c.ts":        "debugger;\ndebugger;\n",
		"a.ts":        "debugger;\n",
		"b.js":        "let a = 1;\n",
		"sub/bad.ts":  "let = ;\n",
		"sub/good.ts": "export {};\n",
	})

	res, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	var paths []string
	for _, f := range res.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{
		filepath.Join(dir, "a.ts"),
		filepath.Join(dir, "b.js"),
		filepath.Join(dir, "c.ts"),
		filepath.Join(dir, "sub", "bad.ts"),
		filepath.Join(dir, "sub", "good.ts"),
	}, paths)

	stats := res.Stats
	assert.Equal(t, 5, stats.FilesDiscovered)
	assert.Equal(t, 5, stats.FilesProcessed)
	assert.Equal(t, 0, stats.FilesErrored)
	assert.Equal(t, 1, stats.FilesParseFailed)
	assert.Equal(t, 3, stats.FilesWithFailures)
	assert.Equal(t, 4, stats.FailuresTotal, "three debugger statements and one parse error")
	assert.Equal(t, 3, stats.FailuresFixable)
	assert.Equal(t, 4, stats.FailuresBySeverity[config.SeverityError])
	assert.True(t, res.HasFailures())
	assert.Empty(t, res.Errors())
}

func TestRunner_Run_SerialVsParallel(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".ts"] = "function " + name + "() {\n  debugger;\n}\n"
	}
	dir := writeFiles(t, files)

	serial, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Result.Lint.Failures, parallel.Files[i].Result.Lint.Failures)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_Fix(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.ts": "debugger;\nlet a = 1;\n",
		"b.ts": "let b = 2;\n",
	})
	cfg := config.NewConfig()
	cfg.Fix = true

	res, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.FilesModified)
	assert.Equal(t, 1, res.Stats.FixesApplied)
	assert.Equal(t, 0, res.Stats.FailuresTotal)

	got, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, "let a = 1;\n", string(got))
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.ts": "debugger;\n"})
	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true

	res, err := newRunner(t).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	require.Len(t, res.Files, 1)
	assert.NotNil(t, res.Files[0].Result.Fix.Diff)
	assert.Equal(t, 0, res.Stats.FilesModified)

	got, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, "debugger;\n", string(got))
}

func TestRunner_Run_Cache(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.ts": "debugger;\n", "b.ts": "let b;\n"})
	r := newRunner(t)
	cache, err := lint.NewCache(t.TempDir(), r.Pipeline.Linter.Rules, "test")
	require.NoError(t, err)
	r.Pipeline.Cache = cache

	first, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Stats.FilesCached)

	second, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Stats.FilesCached)
	assert.Equal(t, first.Stats.FailuresTotal, second.Stats.FailuresTotal)
}

func TestRunner_RunFiles_MissingFile(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.ts": "debugger;\n"})
	files := []string{filepath.Join(dir, "a.ts"), filepath.Join(dir, "gone.ts")}

	res, err := newRunner(t).RunFiles(context.Background(), files, runner.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.FilesProcessed)
	assert.Equal(t, 1, res.Stats.FilesErrored)
	require.Len(t, res.Errors(), 1)
	assert.ErrorIs(t, res.Errors()[0], lint.ErrFileNotFound)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.ts": "debugger;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Watch(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.ts": "let a = 1;\n"})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := newRunner(t)
	results := make(chan *runner.Result, 64)
	done := make(chan error, 1)
	go func() {
		opts := runner.WatchOptions{Options: runner.Options{WorkingDir: dir}, Debounce: 20 * time.Millisecond}
		done <- r.Watch(ctx, opts, func(res *runner.Result) {
			select {
			case results <- res:
			default:
			}
		})
	}()

	initial := <-results
	assert.Equal(t, 0, initial.Stats.FailuresTotal)

	// The watcher is registered after the initial run; keep touching the
	// file until a change is seen.
	path := filepath.Join(dir, "a.ts")
	var changed *runner.Result
	for changed == nil {
		require.NoError(t, os.WriteFile(path, []byte("debugger;\n"), 0o600))
		select {
		case changed = <-results:
		case <-time.After(200 * time.Millisecond):
		case <-ctx.Done():
			t.Fatal("no result after change")
		}
	}
	assert.Equal(t, 1, changed.Stats.FailuresTotal)

	cancel()
	require.NoError(t, <-done)
}

func TestRunner_Watch_ExplicitFileIgnoresSiblings(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.ts": "let a = 1;\n", "b.ts": "let b = 1;\n"})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := newRunner(t)
	results := make(chan *runner.Result, 64)
	done := make(chan error, 1)
	go func() {
		opts := runner.WatchOptions{
			Options:  runner.Options{WorkingDir: dir, Paths: []string{"a.ts"}},
			Debounce: 20 * time.Millisecond,
		}
		done <- r.Watch(ctx, opts, func(res *runner.Result) {
			select {
			case results <- res:
			default:
			}
		})
	}()

	initial := <-results
	require.Len(t, initial.Files, 1)

	// The sibling is written first in every round; a watcher that reacts
	// to it would report both files in one run.
	target := filepath.Join(dir, "a.ts")
	var changed *runner.Result
	for changed == nil {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ts"), []byte("debugger;\n"), 0o600))
		require.NoError(t, os.WriteFile(target, []byte("debugger;\n"), 0o600))
		select {
		case changed = <-results:
		case <-time.After(200 * time.Millisecond):
		case <-ctx.Done():
			t.Fatal("no result after change")
		}
	}
	require.Len(t, changed.Files, 1)
	assert.Equal(t, target, changed.Files[0].Path)

	cancel()
	require.NoError(t, <-done)
}
