package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups of fixed files are kept.
type BackupMode string

const (
	// BackupModeSidecar keeps the backup next to the source file.
	BackupModeSidecar BackupMode = "sidecar"

	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to the source path to name a sidecar backup.
const BackupSuffix = ".gotslint.bak"

// Backups saves the original content of files before fixes are written.
// The zero value saves nothing.
type Backups struct {
	Enabled bool
	Mode    BackupMode
}

// Active reports whether Save writes anything.
func (b Backups) Active() bool {
	return b.Enabled && b.Mode != BackupModeNone
}

// PathFor returns the backup location of path, or "" when backups are
// turned off by mode. Unknown modes fall back to sidecar.
func (b Backups) PathFor(path string) string {
	if b.Mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// Save copies path to its backup location. An existing backup is kept so
// that repeated fix runs preserve the content from before the first one.
// It reports whether a backup was written.
func (b Backups) Save(ctx context.Context, path string) (bool, error) {
	if !b.Active() {
		return false, nil
	}
	target := b.PathFor(path)

	_, err := os.Stat(target)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup: %w", err)
	}

	return copyFile(ctx, path, target)
}

// Restore copies the backup of path over it. It reports false when there
// is no backup.
func (b Backups) Restore(ctx context.Context, path string) (bool, error) {
	source := b.PathFor(path)
	if source == "" {
		return false, nil
	}
	return copyFile(ctx, source, path)
}

// copyFile copies from to to atomically, keeping the mode of from. A
// missing source copies nothing.
func copyFile(ctx context.Context, from, to string) (bool, error) {
	content, snap, err := Read(ctx, from)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := WriteFile(ctx, to, content, snap.Mode); err != nil {
		return false, err
	}
	return true, nil
}
