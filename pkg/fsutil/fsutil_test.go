package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/fsutil"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.ts")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func TestRead(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "const a = 1;\n")

	content, snap, err := fsutil.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\n", string(content))
	assert.Equal(t, path, snap.Path)
	assert.Equal(t, int64(len(content)), snap.Size)
	assert.Equal(t, os.FileMode(0o640), snap.Mode.Perm())
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		path string
		want error
	}{
		{name: "missing", ctx: context.Background(), path: filepath.Join(dir, "missing.ts"), want: fsutil.ErrNotFound},
		{name: "directory", ctx: context.Background(), path: dir, want: fsutil.ErrIsDirectory},
		{name: "cancelled", ctx: cancelled, path: filepath.Join(dir, "any.ts"), want: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := fsutil.Read(tt.ctx, tt.path)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSnapshot_Changed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(t *testing.T, path string)
		strict bool
		want   bool
	}{
		{name: "untouched", mutate: func(*testing.T, string) {}, want: false},
		{name: "untouched strict", mutate: func(*testing.T, string) {}, strict: true, want: false},
		{
			name: "content grew",
			mutate: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("const a = 1;\nconst b = 2;\n"), 0o640))
			},
			want: true,
		},
		{
			name:   "deleted",
			mutate: func(t *testing.T, path string) { require.NoError(t, os.Remove(path)) },
			want:   true,
		},
		{
			// Same size and mtime: only the hash can tell.
			name: "same size rewritten",
			mutate: func(t *testing.T, path string) {
				stat, err := os.Stat(path)
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(path, []byte("const b = 1;\n"), 0o640))
				require.NoError(t, os.Chtimes(path, time.Now(), stat.ModTime()))
			},
			strict: true,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeSource(t, "const a = 1;\n")
			_, snap, err := fsutil.Read(context.Background(), path)
			require.NoError(t, err)

			tt.mutate(t, path)

			changed, err := snap.Changed(context.Background(), tt.strict)
			require.NoError(t, err)
			assert.Equal(t, tt.want, changed)
		})
	}
}

func TestSnapshot_ChangedNil(t *testing.T) {
	t.Parallel()

	var snap *fsutil.Snapshot
	_, err := snap.Changed(context.Background(), true)
	require.ErrorIs(t, err, fsutil.ErrNoSnapshot)
}
