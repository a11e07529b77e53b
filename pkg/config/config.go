// Package config defines the configuration value consumed by the rule
// loader. These types are pure data structures; discovery and layering live
// in internal/configloader.
package config

import (
	"fmt"
	"strings"
)

// Severity is the severity of a configured rule.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityOff     Severity = "off"
)

// ParseSeverity normalizes a configured severity. "none" means off and
// "default" (or empty) means the configuration's default severity.
func ParseSeverity(s string, def Severity) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return def, nil
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "off", "none":
		return SeverityOff, nil
	default:
		return "", fmt.Errorf("invalid severity %q: must be one of error, warning, off", s)
	}
}

// OutputFormat specifies the output format for failures.
type OutputFormat string

const (
	FormatProse   OutputFormat = "prose"
	FormatStylish OutputFormat = "stylish"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Mode    string `yaml:"mode" mapstructure:"mode" validate:"omitempty,oneof=sidecar"`
}

// LinterOptions holds options that apply to every rule.
type LinterOptions struct {
	// Exclude lists glob patterns of files that are never linted.
	Exclude []string `yaml:"exclude,omitempty" mapstructure:"exclude"`
}

// Config is the root configuration structure.
type Config struct {
	// Extends lists configuration files this one builds on, relative to it.
	Extends StringList `yaml:"extends,omitempty"`

	// RulesDirectory lists directories holding custom rule scripts.
	RulesDirectory StringList `yaml:"rulesDirectory,omitempty"`

	// Rules configures rules for TypeScript files, keyed by rule name.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// JSRules configures rules for JavaScript files. When nil, Rules applies.
	JSRules map[string]RuleConfig `yaml:"jsRules,omitempty"`

	// DefaultSeverity is the severity of rules that do not set one.
	DefaultSeverity Severity `yaml:"defaultSeverity,omitempty" validate:"omitempty,oneof=error warning off"`

	LinterOptions LinterOptions `yaml:"linterOptions,omitempty"`

	Backups BackupsConfig `yaml:"backups,omitempty"`

	// Source is the file the configuration was loaded from, if any.
	Source string `yaml:"-"`

	// CLI-level options (not persisted to config files).

	Fix          bool         `yaml:"-" koanf:"fix"`
	DryRun       bool         `yaml:"-" koanf:"dry_run"`
	Format       OutputFormat `yaml:"-" koanf:"format" validate:"omitempty,oneof=prose stylish json sarif diff summary"`
	Jobs         int          `yaml:"-" koanf:"jobs" validate:"gte=0"`
	MaxFixPasses int          `yaml:"-" koanf:"max_fix_passes" validate:"gte=0,lte=100"`
	EnableRules  []string     `yaml:"-"`
	DisableRules []string     `yaml:"-"`
	FixRules     []string     `yaml:"-"`
	NoBackups    bool         `yaml:"-" koanf:"no_backups"`
	Cache        bool         `yaml:"-" koanf:"cache"`
	CacheDir     string       `yaml:"-" koanf:"cache_dir"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Rules:           make(map[string]RuleConfig),
		DefaultSeverity: SeverityError,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format: FormatProse,
	}
}

// RulesFor returns the rule map that applies to a dialect: JSRules for
// JavaScript when configured, Rules otherwise.
func (c *Config) RulesFor(javascript bool) map[string]RuleConfig {
	if javascript && c.JSRules != nil {
		return c.JSRules
	}
	return c.Rules
}

// StringList accepts either a single string or a list of strings.
type StringList []string
