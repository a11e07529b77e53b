package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	pathpkg "path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/gotslint/pkg/langdetect"
)

// Discover finds lintable files under opts.Paths. It returns a sorted,
// deduplicated list of absolute paths.
//
// Explicitly named files are returned whenever their extension matches,
// even when vendored or generated; exclude globs still apply to them.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   opts.excludeGlobs(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}
		if d.matches(absPath) {
			d.add(absPath)
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	excludes   []string
	opts       Options

	seen  map[string]struct{}
	files []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// walk collects matching files below root.
func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := d.rel(path)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if d.skipDir(relPath, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(realPath)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not follow a symlinked root.
				return d.walk(ctx, realPath)
			}
		}

		if d.acceptsWalked(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// skipDir reports whether discovery stays out of a directory.
func (d *discoverer) skipDir(relPath, name string) bool {
	if strings.HasPrefix(name, ".") || matchesAny(relPath, d.excludes) {
		return true
	}
	return !d.opts.IncludeVendored && langdetect.IsVendored(relPath+"/")
}

// acceptsWalked reports whether a file found below a directory root is
// linted. Unlike explicitly named files, hidden, vendored and generated
// files are skipped.
func (d *discoverer) acceptsWalked(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") || !d.matches(path) {
		return false
	}
	if d.opts.IncludeVendored {
		return true
	}
	return !langdetect.IsVendored(d.rel(path)) && !generated(path)
}

// generatedSniffLen bounds how much of a file is read to detect
// generated code.
const generatedSniffLen = 64 << 10

func generated(path string) bool {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from directory discovery
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, generatedSniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false
	}
	return langdetect.IsGenerated(path, head[:n])
}

// matches applies the extension, exclude and include filters.
func (d *discoverer) matches(path string) bool {
	if !hasExtension(path, d.extensions) {
		return false
	}
	relPath := d.rel(path)
	if matchesAny(relPath, d.excludes) {
		return false
	}
	if len(d.opts.IncludeGlobs) > 0 && !matchesAny(relPath, d.opts.IncludeGlobs) {
		return false
	}
	return true
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(e string) bool { return strings.EqualFold(e, ext) })
}

func matchesAny(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(p string) bool { return matchGlob(relPath, p) })
}

// matchGlob matches a relative path against a doublestar glob. Patterns
// without a slash also match the base name, and a pattern naming a
// directory covers everything below it.
func matchGlob(relPath, pattern string) bool {
	path := filepath.ToSlash(relPath)
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")

	if ok, err := doublestar.Match(pattern, path); err == nil && ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, err := doublestar.Match(pattern, pathpkg.Base(path))
		return err == nil && ok
	}
	dir := strings.TrimSuffix(pattern, "/")
	ok, err := doublestar.Match(dir+"/**", path)
	return err == nil && ok
}
