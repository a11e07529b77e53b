package rules

import (
	"strings"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
)

// PresetPrefix marks an extends entry that names a built-in preset rather
// than a file.
const PresetPrefix = "gotslint:"

// Preset describes a named group of rule settings. Presets are
// configuration fragments that a configuration file extends.
type Preset struct {
	// Name is the identifier used in extends, including PresetPrefix.
	Name string

	// Description explains the purpose and characteristics of the preset.
	Description string

	// Rules contains rule configurations keyed by rule name.
	Rules map[string]config.RuleConfig

	// JSRules contains the JavaScript rule configurations.
	JSRules map[string]config.RuleConfig
}

// RecommendedPreset returns the rules most TypeScript projects agree on.
func RecommendedPreset() Preset {
	rules := map[string]config.RuleConfig{
		"curly":                      config.Enabled(),
		"eofline":                    config.Enabled(),
		"max-line-length":            config.Enabled(float64(defaultMaxLineLength)),
		"no-consecutive-blank-lines": config.Enabled(),
		"no-debugger":                config.Enabled(),
		"no-trailing-whitespace":     config.Enabled(),
		"no-var-keyword":             config.Enabled(),
		"prefer-const":               config.Enabled(),
		"quotemark":                  config.Enabled("double", "avoid-escape"),
		"semicolon":                  config.Enabled("always"),
		"trailing-comma":             config.Enabled(map[string]any{"multiline": "always", "singleline": "never"}),
		"triple-equals":              config.Enabled("allow-null-check"),
		"no-unused-variable":         warning(config.Enabled()),
		"no-console":                 warning(config.Enabled("log", "debug", "info", "time", "timeEnd", "trace")),
	}
	return Preset{
		Name:        PresetPrefix + "recommended",
		Description: "Recommended rules: consistent formatting and the common correctness checks",
		Rules:       rules,
		JSRules:     withoutTypeScriptOnly(rules),
	}
}

// AllPreset returns every built-in rule with its default options.
func AllPreset() Preset {
	rules := map[string]config.RuleConfig{
		"curly":                      config.Enabled(),
		"eofline":                    config.Enabled(),
		"indent":                     config.Enabled("spaces"),
		"max-line-length":            config.Enabled(float64(defaultMaxLineLength)),
		"no-console":                 config.Enabled(),
		"no-consecutive-blank-lines": config.Enabled(),
		"no-debugger":                config.Enabled(),
		"no-trailing-whitespace":     config.Enabled(),
		"no-unused-variable":         config.Enabled(),
		"no-var-keyword":             config.Enabled(),
		"prefer-const":               config.Enabled(),
		"quotemark":                  config.Enabled("double"),
		"semicolon":                  config.Enabled("always"),
		"trailing-comma":             config.Enabled(map[string]any{"multiline": "always", "singleline": "never"}),
		"triple-equals":              config.Enabled(),
	}
	return Preset{
		Name:        PresetPrefix + "all",
		Description: "Every built-in rule, enabled with its default options",
		Rules:       rules,
		JSRules:     withoutTypeScriptOnly(rules),
	}
}

// Presets returns all built-in presets.
func Presets() []Preset {
	return []Preset{
		RecommendedPreset(),
		AllPreset(),
	}
}

// PresetByName returns a preset by name, or nil if not found.
func PresetByName(name string) *Preset {
	for _, p := range Presets() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PresetNames returns the names of all available presets.
func PresetNames() []string {
	presets := Presets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// IsPresetName reports whether an extends entry refers to a preset.
func IsPresetName(name string) bool {
	return strings.HasPrefix(name, PresetPrefix)
}

// warning sets the severity of a rule entry to warning.
func warning(rc config.RuleConfig) config.RuleConfig {
	rc.Severity = config.SeverityWarning
	return rc
}

// withoutTypeScriptOnly derives the JavaScript rules of a preset.
func withoutTypeScriptOnly(rules map[string]config.RuleConfig) map[string]config.RuleConfig {
	js := make(map[string]config.RuleConfig, len(rules))
	for name, rc := range rules {
		if rule, ok := lint.DefaultRegistry.Get(name); ok && rule.Metadata().TypeScriptOnly {
			continue
		}
		js[name] = rc
	}
	return js
}
