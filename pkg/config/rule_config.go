package config

import (
	"fmt"
	"slices"
)

// RuleConfig is one entry of the rules map. Its source form is one of
//
//	true | false
//	[true, arg1, arg2, ...]
//	{severity: warning, options: [arg1, ...] | arg}
type RuleConfig struct {
	// Enabled is nil when the entry did not say (object form without severity).
	Enabled *bool

	// Severity is the explicit severity, empty for the default.
	Severity Severity

	// Args are the positional rule arguments.
	Args []any
}

// IsEnabled reports whether the rule runs.
func (rc RuleConfig) IsEnabled() bool {
	if rc.Severity == SeverityOff {
		return false
	}
	return rc.Enabled == nil || *rc.Enabled
}

// Enabled builds an enabled rule entry with args.
func Enabled(args ...any) RuleConfig {
	on := true
	return RuleConfig{Enabled: &on, Args: args}
}

// Disabled builds a disabled rule entry.
func Disabled() RuleConfig {
	off := false
	return RuleConfig{Enabled: &off}
}

// RuleConfigFromValue converts a decoded configuration value (YAML, JSON
// or TOML) into a RuleConfig.
func RuleConfigFromValue(v any) (RuleConfig, error) {
	switch val := v.(type) {
	case bool:
		return RuleConfig{Enabled: &val}, nil

	case []any:
		if len(val) == 0 {
			return RuleConfig{}, fmt.Errorf("empty rule array: first element must be true or false")
		}
		enabled, ok := val[0].(bool)
		if !ok {
			return RuleConfig{}, fmt.Errorf("first element of rule array must be true or false, got %T", val[0])
		}
		return RuleConfig{Enabled: &enabled, Args: slices.Clone(val[1:])}, nil

	case map[string]any:
		return ruleConfigFromMap(val)

	case nil:
		return RuleConfig{}, fmt.Errorf("rule value is empty")

	default:
		return RuleConfig{}, fmt.Errorf("rule value must be a boolean, array or object, got %T", v)
	}
}

func ruleConfigFromMap(m map[string]any) (RuleConfig, error) {
	var rc RuleConfig
	for key := range m {
		switch key {
		case "severity", "options":
		default:
			return RuleConfig{}, fmt.Errorf("unknown key %q in rule object: expected severity or options", key)
		}
	}

	if raw, ok := m["severity"]; ok {
		s, ok := raw.(string)
		if !ok {
			return RuleConfig{}, fmt.Errorf("severity must be a string, got %T", raw)
		}
		sev, err := ParseSeverity(s, "")
		if err != nil {
			return RuleConfig{}, err
		}
		rc.Severity = sev
	}

	if opts, ok := m["options"]; ok {
		switch o := opts.(type) {
		case []any:
			rc.Args = slices.Clone(o)
		case nil:
		default:
			rc.Args = []any{o}
		}
	}
	return rc, nil
}

// Value converts the entry back to its most compact source form.
func (rc RuleConfig) Value() any {
	if rc.Severity != "" {
		m := map[string]any{"severity": string(rc.Severity)}
		if len(rc.Args) > 0 {
			m["options"] = rc.Args
		}
		return m
	}
	enabled := rc.IsEnabled()
	if len(rc.Args) == 0 {
		return enabled
	}
	return append([]any{enabled}, rc.Args...)
}
