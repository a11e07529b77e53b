package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gotslint/internal/logging"
)

// DefaultWatchDebounce is how long Watch waits for changes to settle.
const DefaultWatchDebounce = 150 * time.Millisecond

// WatchOptions controls Watch.
type WatchOptions struct {
	Options

	// Debounce delays a re-run until no change arrived for this long.
	// Zero means DefaultWatchDebounce.
	Debounce time.Duration
}

// Watch runs once over every discovered file, then re-lints changed files
// until ctx is cancelled. onResult is called after every run from the
// watching goroutine. Watch returns nil on cancellation.
func (r *Runner) Watch(ctx context.Context, opts WatchOptions, onResult func(*Result)) error {
	logger := logging.FromContext(ctx)

	result, err := r.Run(ctx, opts.Options)
	if err != nil {
		return err
	}
	onResult(result)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	w := &watchSet{
		discoverer: &discoverer{
			workDir:    workDir,
			extensions: opts.effectiveExtensions(),
			excludes:   opts.excludeGlobs(),
			opts:       opts.Options,
		},
		files: make(map[string]struct{}),
	}

	for _, p := range opts.effectivePaths() {
		if !filepath.IsAbs(p) {
			p = filepath.Join(workDir, p)
		}
		if err := w.add(watcher, filepath.Clean(p)); err != nil {
			return err
		}
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					if err := w.watchTree(watcher, event.Name); err != nil {
						logger.Warn("cannot watch directory", logging.FieldPath, event.Name, logging.FieldError, err)
					}
				}
				continue
			}
			if !w.accepts(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case <-timer.C:
			var files []string
			for path := range pending {
				if _, err := os.Stat(path); err == nil {
					files = append(files, path)
				}
			}
			clear(pending)
			if len(files) == 0 {
				continue
			}
			slices.Sort(files)
			logger.Debug("change detected", logging.FieldPaths, files)

			result, err := r.RunFiles(ctx, files, opts.Options)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			onResult(result)
		}
	}
}

// watchSet tracks the roots a Watch was started with. A file root is
// watched through its parent directory, so events for its siblings are
// filtered out here.
type watchSet struct {
	*discoverer

	files map[string]struct{}
	dirs  []string
}

func (w *watchSet) add(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if info.IsDir() {
		w.dirs = append(w.dirs, root)
		return w.watchTree(watcher, root)
	}
	w.files[root] = struct{}{}
	if err := watcher.Add(filepath.Dir(root)); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}

// accepts reports whether a change to path is re-linted, applying the
// same filters as Discover for the root that path belongs to.
func (w *watchSet) accepts(path string) bool {
	if _, ok := w.files[path]; ok {
		return w.matches(path)
	}
	if !slices.ContainsFunc(w.dirs, func(dir string) bool { return within(dir, path) }) {
		return false
	}
	return w.acceptsWalked(path)
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// watchTree adds root and every directory below it that discovery would
// descend into.
func (d *discoverer) watchTree(watcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && d.skipDir(d.rel(path), entry.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}
