package config

import (
	"bytes"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts every RuleConfig source form.
func (rc *RuleConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := RuleConfigFromValue(normalize(raw))
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*rc = parsed
	return nil
}

// MarshalYAML writes the compact source form.
func (rc RuleConfig) MarshalYAML() (any, error) {
	return rc.Value(), nil
}

// UnmarshalYAML accepts a string or a list of strings.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// normalize converts yaml.v3's map[string]interface{} and integer types
// into the shapes produced by JSON decoding, so rule options see one form.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	default:
		return v
	}
}

// Normalize exposes normalize for loaders decoding other formats (TOML).
func Normalize(v any) any {
	return normalize(v)
}

// ToYAML serializes the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML or JSON bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// Clone returns a deep copy of the configuration. Rule arguments are
// copied one level deep; nested option values are shared and must be
// treated as read-only.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Extends = append(StringList(nil), c.Extends...)
	clone.RulesDirectory = append(StringList(nil), c.RulesDirectory...)
	clone.LinterOptions.Exclude = append([]string(nil), c.LinterOptions.Exclude...)
	clone.EnableRules = append([]string(nil), c.EnableRules...)
	clone.DisableRules = append([]string(nil), c.DisableRules...)
	clone.FixRules = append([]string(nil), c.FixRules...)
	clone.Rules = cloneRules(c.Rules)
	clone.JSRules = cloneRules(c.JSRules)
	return &clone
}

func cloneRules(rules map[string]RuleConfig) map[string]RuleConfig {
	if rules == nil {
		return nil
	}
	out := make(map[string]RuleConfig, len(rules))
	for name, rc := range maps.All(rules) {
		cp := rc
		if rc.Enabled != nil {
			enabled := *rc.Enabled
			cp.Enabled = &enabled
		}
		cp.Args = append([]any(nil), rc.Args...)
		out[name] = cp
	}
	return out
}
