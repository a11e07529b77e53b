package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gotslint/pkg/config"
)

// fileConfig is one decoded configuration file, before extends are
// resolved.
type fileConfig struct {
	Config *config.Config

	// Unused lists top-level keys the decoder did not recognize.
	Unused []string
}

// ParseFile reads and decodes a configuration file. extends and
// rulesDirectory are returned as written, relative to the file.
func ParseFile(path string) (*config.Config, error) {
	fc, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return fc.Config, nil
}

func parseFile(path string) (*fileConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	raw, err := decodeRaw(DetectFormat(path), content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fc, err := decodeConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fc.Config.Source = path
	return fc, nil
}

// decodeRaw parses content into generic values shaped like decoded JSON:
// objects are map[string]any and every number is float64.
func decodeRaw(format Format, content []byte) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		if err := parseJSONC(content, &raw); err != nil {
			return nil, err
		}
	case FormatYAML, FormatUnknown:
		// Unknown extensions are read as YAML, which accepts JSON too.
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(content), &raw); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	}

	if raw == nil {
		return map[string]any{}, nil
	}
	normalized, ok := config.Normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object at the top level")
	}
	return normalized, nil
}

// decodeConfig maps generic values onto config.Config through the
// struct's yaml tags, so every file format shares one set of key names.
func decodeConfig(raw map[string]any) (*fileConfig, error) {
	cfg := &config.Config{}

	// jsRules: true means the TypeScript rules also apply to JavaScript,
	// which is what a nil JSRules map expresses.
	jsRulesOff := false
	if v, ok := raw["jsRules"].(bool); ok {
		jsRulesOff = !v
		raw = cloneWithout(raw, "jsRules")
	}

	var meta mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     cfg,
		TagName:    "yaml",
		Metadata:   &meta,
		DecodeHook: configDecodeHook,
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}
	if jsRulesOff {
		cfg.JSRules = make(map[string]config.RuleConfig)
	}

	unused := slices.Clone(meta.Unused)
	slices.Sort(unused)
	return &fileConfig{Config: cfg, Unused: unused}, nil
}

//nolint:gochecknoglobals // Read-only type handles for the decode hook.
var (
	ruleConfigType = reflect.TypeOf(config.RuleConfig{})
	stringListType = reflect.TypeOf(config.StringList{})
)

// configDecodeHook decodes the forms that do not follow the struct shape:
// rule entries and string-or-list fields.
func configDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case ruleConfigType:
		return config.RuleConfigFromValue(data)
	case stringListType:
		if s, ok := data.(string); ok {
			return config.StringList{s}, nil
		}
	}
	return data, nil
}

func cloneWithout(m map[string]any, key string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// parseJSONC parses JSON that may contain comments.
func parseJSONC(content []byte, target any) error {
	// Most files are plain JSON.
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	stripped := stripJSONComments(content)
	if err := json.Unmarshal(stripped, target); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes line and block comments outside of strings.
// Newlines inside comments are kept so decoder offsets stay on the same
// line.
func stripJSONComments(content []byte) []byte {
	result := make([]byte, 0, len(content))
	inString := false
	inLineComment := false
	inBlockComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inLineComment {
			if char == '\n' {
				inLineComment = false
				result = append(result, char)
			}
			continue
		}

		if inBlockComment {
			switch {
			case char == '*' && idx+1 < len(content) && content[idx+1] == '/':
				inBlockComment = false
				idx++
			case char == '\n':
				result = append(result, char)
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
			result = append(result, char)
			continue
		}

		if char == '/' && idx+1 < len(content) {
			switch content[idx+1] {
			case '/':
				inLineComment = true
				idx++
				continue
			case '*':
				inBlockComment = true
				idx++
				continue
			}
		}

		result = append(result, char)
	}

	return result
}
