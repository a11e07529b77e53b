// Package configloader provides configuration loading and resolution.
// It finds the configuration file that applies to a run, resolves the
// files and presets it extends, layers environment variables and flags
// on top, and validates the result.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
)

// DefaultExtends is what a run without any configuration file extends.
const DefaultExtends = rules.PresetPrefix + "recommended"

// ErrExtendsCycle is returned when configuration files extend each other.
var ErrExtendsCycle = errors.New("extends cycle")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, discovery is skipped.
	ExplicitPath string

	// IgnoreUserConfig skips the user-level configuration fallback.
	IgnoreUserConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files and presets that were loaded, bases first.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration.
//
// Exactly one configuration file applies: the explicit path, else the
// nearest tslint.json, tslint.yaml, tslint.yml or .gotslint.toml above the
// working directory, else the user configuration. Without any file the
// configuration extends DefaultExtends. Environment variables (GOTSLINT_*)
// and then CLI flags are layered on top.
//
// Every extends and validation problem is returned together.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	result := &LoadResult{Paths: &ConfigPaths{Explicit: opts.ExplicitPath}}
	if opts.ExplicitPath == "" {
		paths, err := DiscoverPaths(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover paths: %w", err)
		}
		result.Paths = paths
		if opts.IgnoreUserConfig {
			result.Paths.User = ""
		}
	}

	res := &resolver{result: result}
	var cfg *config.Config
	if path := result.Paths.Selected(); path != "" {
		logger.Debug("loading config", logging.FieldConfig, path)
		resolved, err := res.resolveFile(ctx, path, nil)
		if err != nil {
			return nil, err
		}
		cfg = resolved
	} else {
		logger.Debug("no config file found", logging.FieldConfig, DefaultExtends)
		resolved, err := res.resolveExtends(ctx, workDir, []string{DefaultExtends}, nil)
		if err != nil {
			return nil, err
		}
		cfg = resolved
	}

	cfg = withDefaults(cfg)

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, err
		}
	}
	cfg = applyCLI(cfg, opts.CLIConfig)

	validation := ValidateWithFile(cfg, cfg.Source)
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}
	if err := validation.Err(); err != nil {
		return nil, err
	}

	result.Config = cfg
	return result, nil
}

// LoadFile resolves one configuration file and everything it extends,
// without discovery, environment or flags.
func LoadFile(ctx context.Context, path string) (*config.Config, error) {
	res := &resolver{result: &LoadResult{}}
	cfg, err := res.resolveFile(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return withDefaults(cfg), nil
}

// resolver follows extends chains for one Load call.
type resolver struct {
	result *LoadResult
}

// resolveFile loads path and layers it over the configurations it
// extends. stack holds the absolute paths currently being resolved.
func (r *resolver) resolveFile(ctx context.Context, path string, stack []string) (*config.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	if slices.Contains(stack, absPath) {
		chain := append(slices.Clone(stack), absPath)
		return nil, fmt.Errorf("%w: %s", ErrExtendsCycle, strings.Join(chain, " -> "))
	}
	stack = append(stack, absPath)

	fc, err := parseFile(absPath)
	if err != nil {
		return nil, err
	}
	for _, key := range fc.Unused {
		r.result.Warnings = append(r.result.Warnings, fmt.Sprintf("%s: unknown key %q", absPath, key))
	}

	child := fc.Config
	dir := filepath.Dir(absPath)
	if err := localize(child, dir); err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}

	base, err := r.resolveExtends(ctx, dir, child.Extends, stack)
	if err != nil {
		return nil, err
	}
	child.Extends = nil

	r.result.LoadedFrom = append(r.result.LoadedFrom, absPath)
	return extend(base, child), nil
}

// resolveExtends merges the extends entries of one file in order. Every
// failing entry is reported.
func (r *resolver) resolveExtends(ctx context.Context, dir string, entries []string, stack []string) (*config.Config, error) {
	var (
		base *config.Config
		errs []error
	)
	for _, entry := range entries {
		var parent *config.Config
		var err error
		if rules.IsPresetName(entry) {
			parent, err = r.resolvePreset(entry)
		} else {
			parent, err = r.resolveExtendsPath(ctx, dir, entry, stack)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		base = extend(base, parent)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return base, nil
}

func (r *resolver) resolvePreset(name string) (*config.Config, error) {
	preset := rules.PresetByName(name)
	if preset == nil {
		return nil, fmt.Errorf("unknown preset %q in extends; available: %s",
			name, strings.Join(rules.PresetNames(), ", "))
	}
	r.result.LoadedFrom = append(r.result.LoadedFrom, preset.Name)

	cfg := &config.Config{Rules: preset.Rules, JSRules: preset.JSRules, Source: preset.Name}
	return cfg.Clone(), nil
}

func (r *resolver) resolveExtendsPath(ctx context.Context, dir, entry string, stack []string) (*config.Config, error) {
	path := entry
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		found := findConfigInDir(path)
		if found == "" {
			return nil, fmt.Errorf("extends %q: no configuration file in directory", entry)
		}
		path = found
	} else if err != nil {
		return nil, fmt.Errorf("extends %q: %w", entry, err)
	}

	return r.resolveFile(ctx, path, stack)
}

// localize applies the file-level settings that only concern the file's
// own entries: rulesDirectory is made absolute against the file's
// directory and defaultSeverity fills in rule severities.
func localize(cfg *config.Config, dir string) error {
	for i, rulesDir := range cfg.RulesDirectory {
		if !filepath.IsAbs(rulesDir) {
			cfg.RulesDirectory[i] = filepath.Join(dir, rulesDir)
		}
	}

	if cfg.DefaultSeverity == "" {
		return nil
	}
	sev, err := config.ParseSeverity(string(cfg.DefaultSeverity), config.SeverityError)
	if err != nil {
		return fmt.Errorf("defaultSeverity: %w", err)
	}
	cfg.DefaultSeverity = sev
	fillSeverity(cfg.Rules, sev)
	fillSeverity(cfg.JSRules, sev)
	return nil
}

func fillSeverity(entries map[string]config.RuleConfig, sev config.Severity) {
	for name, entry := range entries {
		if entry.Severity == "" {
			entry.Severity = sev
			entries[name] = entry
		}
	}
}

// withDefaults layers cfg over the built-in defaults.
func withDefaults(cfg *config.Config) *config.Config {
	defaults := config.NewConfig()
	if cfg == nil {
		return defaults
	}
	out := cfg.Clone()
	if out.Rules == nil {
		out.Rules = make(map[string]config.RuleConfig)
	}
	if out.DefaultSeverity == "" {
		out.DefaultSeverity = defaults.DefaultSeverity
	}
	if out.Backups.Mode == "" {
		out.Backups.Mode = defaults.Backups.Mode
	}
	if out.Format == "" {
		out.Format = defaults.Format
	}
	return out
}
