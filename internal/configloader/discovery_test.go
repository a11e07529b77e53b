package configloader

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		start string
		want  string
	}{
		{name: "same directory", files: []string{"repo/.git/HEAD", "repo/tslint.json"}, start: "repo", want: "repo/tslint.json"},
		{name: "parent directory", files: []string{"repo/.git/HEAD", "repo/tslint.yaml"}, start: "repo/src/app", want: "repo/tslint.yaml"},
		{name: "nearest wins", files: []string{"repo/.git/HEAD", "repo/tslint.json", "repo/src/.gotslint.toml"}, start: "repo/src", want: "repo/src/.gotslint.toml"},
		{name: "json preferred over yaml", files: []string{"repo/.git/HEAD", "repo/tslint.yaml", "repo/tslint.json"}, start: "repo", want: "repo/tslint.json"},
		{name: "stops at repository root", files: []string{"tslint.json", "repo/.git/HEAD"}, start: "repo/src"},
		{name: "git file marks a worktree", files: []string{"tslint.json", "repo/.git"}, start: "repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			for _, f := range tt.files {
				touch(t, filepath.Join(root, f))
			}
			start := filepath.Join(root, tt.start)
			require.NoError(t, os.MkdirAll(start, 0o755))

			got, err := FindProjectConfig(context.Background(), start)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, filepath.Join(root, tt.want), got)
		})
	}
}

func TestFindProjectConfig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindProjectConfig(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestConfigPathsSelected(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a", (&ConfigPaths{Explicit: "a", Project: "b", User: "c"}).Selected())
	assert.Equal(t, "b", (&ConfigPaths{Project: "b", User: "c"}).Selected())
	assert.Equal(t, "c", (&ConfigPaths{User: "c"}).Selected())
	assert.Empty(t, (&ConfigPaths{}).Selected())
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	for path, want := range map[string]Format{
		"tslint.json":    FormatJSON,
		"tslint.JSONC":   FormatJSON,
		"tslint.yaml":    FormatYAML,
		"a/b/tslint.yml": FormatYAML,
		".gotslint.toml": FormatTOML,
		"tslint.js":      FormatUnknown,
		"no-extension":   FormatUnknown,
	} {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}

func TestAncestors(t *testing.T) {
	t.Parallel()

	root := filepath.VolumeName(t.TempDir()) + string(filepath.Separator)
	start := filepath.Join(root, "a", "b")
	got := slices.Collect(ancestors(start))
	assert.Equal(t, []string{start, filepath.Join(root, "a"), root}, got)
}
