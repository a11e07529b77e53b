package configloader

import (
	"slices"

	"github.com/yaklabco/gotslint/pkg/config"
)

// extend layers a configuration file over the configuration it extends.
// The merge follows these rules:
//   - Rules: per rule and per field; a child entry overrides the parent's
//     enabled flag, severity and arguments only where it sets them
//   - rulesDirectory: concatenated, duplicates removed
//   - linterOptions.exclude: the child's list replaces the parent's
//   - defaultSeverity and backups: the child's value wins when set
func extend(base, child *config.Config) *config.Config {
	if base == nil {
		return child
	}
	if child == nil {
		return base
	}

	result := base.Clone()
	result.Source = child.Source
	result.Extends = nil

	result.Rules = mergeRules(result.Rules, child.Rules)
	if child.JSRules != nil || result.JSRules != nil {
		result.JSRules = mergeRules(result.JSRules, child.JSRules)
	}

	for _, dir := range child.RulesDirectory {
		if !slices.Contains(result.RulesDirectory, dir) {
			result.RulesDirectory = append(result.RulesDirectory, dir)
		}
	}

	if child.LinterOptions.Exclude != nil {
		result.LinterOptions.Exclude = slices.Clone(child.LinterOptions.Exclude)
	}
	if child.DefaultSeverity != "" {
		result.DefaultSeverity = child.DefaultSeverity
	}
	if child.Backups.Mode != "" {
		result.Backups.Mode = child.Backups.Mode
	}
	if child.Backups.Enabled {
		result.Backups.Enabled = true
	}

	return result
}

// mergeRules overlays child entries onto base. base is modified.
func mergeRules(base, child map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil {
		base = make(map[string]config.RuleConfig, len(child))
	}
	for name, entry := range child {
		merged, ok := base[name]
		if !ok {
			base[name] = entry
			continue
		}
		if entry.Enabled != nil {
			merged.Enabled = entry.Enabled
		}
		if entry.Severity != "" {
			merged.Severity = entry.Severity
		}
		if entry.Args != nil {
			merged.Args = slices.Clone(entry.Args)
		}
		base[name] = merged
	}
	return base
}

// applyCLI overlays command-line settings onto cfg. Only options the
// command line actually set are carried in cli, so every non-zero field
// wins.
func applyCLI(cfg, cli *config.Config) *config.Config {
	if cli == nil {
		return cfg
	}
	result := cfg.Clone()

	if cli.Format != "" {
		result.Format = cli.Format
	}
	if cli.Jobs != 0 {
		result.Jobs = cli.Jobs
	}
	if cli.MaxFixPasses != 0 {
		result.MaxFixPasses = cli.MaxFixPasses
	}
	if cli.CacheDir != "" {
		result.CacheDir = cli.CacheDir
	}
	if cli.DefaultSeverity != "" {
		result.DefaultSeverity = cli.DefaultSeverity
	}

	// Booleans can only be switched on from the command line.
	result.Fix = result.Fix || cli.Fix
	result.DryRun = result.DryRun || cli.DryRun
	result.NoBackups = result.NoBackups || cli.NoBackups
	result.Cache = result.Cache || cli.Cache
	if cli.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.RulesDirectory = append(result.RulesDirectory, cli.RulesDirectory...)
	result.LinterOptions.Exclude = append(result.LinterOptions.Exclude, cli.LinterOptions.Exclude...)
	result.EnableRules = append(result.EnableRules, cli.EnableRules...)
	result.DisableRules = append(result.DisableRules, cli.DisableRules...)
	result.FixRules = append(result.FixRules, cli.FixRules...)

	return result
}
