package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// ConfigPaths holds the candidate configuration files of a run. Empty
// fields mean nothing was found there.
type ConfigPaths struct {
	Explicit string // --config
	Project  string // nearest file above the working directory
	User     string // $XDG_CONFIG_HOME/gotslint or the home directory
}

// Selected returns the single file that configures the run.
func (p *ConfigPaths) Selected() string {
	for _, path := range []string{p.Explicit, p.Project, p.User} {
		if path != "" {
			return path
		}
	}
	return ""
}

// ConfigFileNames are looked up in each directory, first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ConfigFileNames = []string{
	"tslint.json",
	"tslint.yaml",
	"tslint.yml",
	".gotslint.toml",
}

// Format is the syntax of a configuration file.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatUnknown Format = "unknown"
)

// DetectFormat picks the syntax from the file extension. JSON files may
// carry comments.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatUnknown
}

// DiscoverPaths fills the project and user entries of ConfigPaths.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{Project: project, User: findUserConfig()}, nil
}

// FindProjectConfig returns the nearest config file in startDir or one of
// its parents. The walk ends at a repository root or at the home
// directory, which belongs to the user config.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for current := range ancestors(dir) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if current == home {
			break
		}
		if path := findConfigInDir(current); path != "" {
			return path, nil
		}
		if isRepositoryRoot(current) {
			break
		}
	}
	return "", nil
}

// ancestors yields dir and then each parent up to the filesystem root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

func findUserConfig() string {
	home, homeErr := os.UserHomeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" && homeErr == nil {
		configHome = filepath.Join(home, ".config")
	}
	if configHome != "" {
		if path := findConfigInDir(filepath.Join(configHome, "gotslint")); path != "" {
			return path
		}
	}
	if homeErr != nil {
		return ""
	}
	return findConfigInDir(home)
}

func findConfigInDir(dir string) string {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isRepositoryRoot(dir string) bool {
	for _, marker := range []string{".git", ".hg", ".svn"} {
		// .git is a file inside worktrees and submodules.
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
