// Package runner lints many files concurrently and aggregates the results.
package runner

import (
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/langdetect"
)

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match globs. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// that are linted. Defaults to langdetect.Extensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching files, relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs skip files or directories. Config linterOptions.exclude
	// patterns are added to these.
	ExcludeGlobs []string

	// IncludeVendored lints node_modules, bundles, generated files and
	// other third-party code that directory discovery skips by default.
	IncludeVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs limits the number of files processed at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the extensions linted by default.
func DefaultExtensions() []string {
	return langdetect.Extensions()
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) excludeGlobs() []string {
	if o.Config == nil || len(o.Config.LinterOptions.Exclude) == 0 {
		return o.ExcludeGlobs
	}
	out := make([]string, 0, len(o.ExcludeGlobs)+len(o.Config.LinterOptions.Exclude))
	out = append(out, o.ExcludeGlobs...)
	return append(out, o.Config.LinterOptions.Exclude...)
}
