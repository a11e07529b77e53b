package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// writeTree creates files (slash-separated, relative to dir) with small
// valid contents and returns dir.
func writeTree(t *testing.T, dir string, files ...string) string {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("let a = 1;\n"), 0o600))
	}
	return dir
}

func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := []string{
		"index.ts",
		"src/app.tsx",
		"src/util.js",
		"src/legacy.mjs",
		"src/types.d.ts",
		"src/notes.md",
		"src/main.go",
		"node_modules/lib/index.js",
		"dist/bundle.min.js",
		".cache/tmp.ts",
		"src/.hidden.ts",
		"test/unit/bad.ts",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			want: []string{
				"index.ts", "src/app.tsx", "src/legacy.mjs", "src/types.d.ts", "src/util.js", "test/unit/bad.ts",
			},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".TSX"}},
			want: []string{"src/app.tsx"},
		},
		{
			name: "exclude globs",
			opts: runner.Options{ExcludeGlobs: []string{"test/**", "*.js"}},
			want: []string{"index.ts", "src/app.tsx", "src/legacy.mjs", "src/types.d.ts"},
		},
		{
			name: "config excludes",
			opts: runner.Options{Config: &config.Config{
				LinterOptions: config.LinterOptions{Exclude: []string{"**/*.d.ts", "test"}},
			}},
			want: []string{"index.ts", "src/app.tsx", "src/legacy.mjs", "src/util.js"},
		},
		{
			name: "include globs",
			opts: runner.Options{IncludeGlobs: []string{"src/**/*.ts"}},
			want: []string{"src/types.d.ts"},
		},
		{
			name: "vendored code",
			opts: runner.Options{IncludeVendored: true, Paths: []string{"node_modules", "dist"}},
			want: []string{"dist/bundle.min.js", "node_modules/lib/index.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeTree(t, t.TempDir(), tree...)
			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_BraceGlobs(t *testing.T) {
	t.Parallel()

	tree := []string{"src/a.ts", "src/a.spec.ts", "src/deep/b.test.ts", "src/c.test.tsx", "lib/d.spec.ts"}
	const pattern = "src/**/*.{spec,test}.ts"

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "include",
			opts: runner.Options{IncludeGlobs: []string{pattern}},
			want: []string{"src/a.spec.ts", "src/deep/b.test.ts"},
		},
		{
			name: "exclude",
			opts: runner.Options{ExcludeGlobs: []string{pattern}},
			want: []string{"lib/d.spec.ts", "src/a.ts", "src/c.test.tsx"},
		},
		{
			name: "base name alternatives",
			opts: runner.Options{ExcludeGlobs: []string{"*.{spec,test}.*"}},
			want: []string{"src/a.ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeTree(t, t.TempDir(), tree...)
			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_SkipsGenerated(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, t.TempDir(), "src/index.ts", "lib/index.js")
	generated := filepath.Join(dir, "lib", "index.js")
	require.NoError(t, os.WriteFile(generated,
		[]byte("export const a = 1;\n//# sourceMappingURL=index.js.map\n"), 0o600))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/index.ts"}, relAll(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, IncludeVendored: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/index.js", "src/index.ts"}, relAll(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{generated}})
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/index.js"}, relAll(t, dir, files), "explicit files are not sniffed")
}

func TestDiscover_ExplicitFiles(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, t.TempDir(), "a.ts", "b.ts", "readme.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"b.ts", "a.ts", "./b.ts", filepath.Join(dir, "a.ts"), "readme.md"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ts", "b.ts"}, relAll(t, dir, files), "sorted, deduplicated, filtered by extension")
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, t.TempDir(), "a.ts")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, t.TempDir(), "real/a.ts")
	external := writeTree(t, t.TempDir(), "external.ts")

	if err := os.Symlink(filepath.Join(dir, "real", "a.ts"), filepath.Join(dir, "link.ts")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(external, filepath.Join(dir, "linked")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"link.ts", "real/a.ts"}, relAll(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(external, "external.ts"))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	exts := runner.DefaultExtensions()
	assert.Contains(t, exts, ".ts")
	assert.Contains(t, exts, ".tsx")
	assert.Contains(t, exts, ".js")
	assert.NotContains(t, exts, ".md")
}
