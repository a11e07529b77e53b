package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/fsutil"
)

func TestBackups_PathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode fsutil.BackupMode
		want string
	}{
		{mode: fsutil.BackupModeSidecar, want: "src/app.ts" + fsutil.BackupSuffix},
		{mode: "", want: "src/app.ts" + fsutil.BackupSuffix},
		{mode: fsutil.BackupModeNone, want: ""},
	}

	for _, tt := range tests {
		got := fsutil.Backups{Enabled: true, Mode: tt.mode}.PathFor("src/app.ts")
		assert.Equal(t, tt.want, got, "mode %q", tt.mode)
	}
}

func TestBackups_Save(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("inactive", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "var a = 1\n")
		for _, b := range []fsutil.Backups{{}, {Enabled: true, Mode: fsutil.BackupModeNone}} {
			saved, err := b.Save(ctx, path)
			require.NoError(t, err)
			assert.False(t, saved)
		}
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("keeps first backup", func(t *testing.T) {
		t.Parallel()

		b := fsutil.Backups{Enabled: true, Mode: fsutil.BackupModeSidecar}
		path := writeSource(t, "var a = 1\n")

		saved, err := b.Save(ctx, path)
		require.NoError(t, err)
		assert.True(t, saved)

		require.NoError(t, os.WriteFile(path, []byte("let a = 1;\n"), 0o640))
		saved, err = b.Save(ctx, path)
		require.NoError(t, err)
		assert.False(t, saved)

		backup, err := os.ReadFile(b.PathFor(path))
		require.NoError(t, err)
		assert.Equal(t, "var a = 1\n", string(backup))
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		b := fsutil.Backups{Enabled: true, Mode: fsutil.BackupModeSidecar}
		saved, err := b.Save(ctx, writeSource(t, "")+".gone")
		require.NoError(t, err)
		assert.False(t, saved)
	})
}

func TestBackups_Restore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b := fsutil.Backups{Enabled: true, Mode: fsutil.BackupModeSidecar}
	path := writeSource(t, "var a = 1\n")

	restored, err := b.Restore(ctx, path)
	require.NoError(t, err)
	assert.False(t, restored, "no backup yet")

	_, err = b.Save(ctx, path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("let a = 1;\n"), 0o640))

	restored, err = b.Restore(ctx, path)
	require.NoError(t, err)
	assert.True(t, restored)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var a = 1\n", string(got))
}
