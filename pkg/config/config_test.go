package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/config"
)

func TestRuleConfigFromValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    any
		enabled  bool
		severity config.Severity
		args     []any
		wantErr  string
	}{
		{name: "true", value: true, enabled: true},
		{name: "false", value: false, enabled: false},
		{name: "array with args", value: []any{true, "never"}, enabled: true, args: []any{"never"}},
		{name: "array disabled", value: []any{false, float64(80)}, enabled: false, args: []any{float64(80)}},
		{
			name:     "object with options array",
			value:    map[string]any{"severity": "warning", "options": []any{"as-needed"}},
			enabled:  true,
			severity: config.SeverityWarning,
			args:     []any{"as-needed"},
		},
		{
			name:    "object with single option",
			value:   map[string]any{"options": float64(120)},
			enabled: true,
			args:    []any{float64(120)},
		},
		{name: "severity none", value: map[string]any{"severity": "none"}, enabled: false, severity: config.SeverityOff},
		{name: "empty array", value: []any{}, wantErr: "empty rule array"},
		{name: "non-bool head", value: []any{"never"}, wantErr: "first element"},
		{name: "bad severity", value: map[string]any{"severity": "loud"}, wantErr: "invalid severity"},
		{name: "unknown key", value: map[string]any{"level": 1}, wantErr: "unknown key"},
		{name: "number", value: float64(3), wantErr: "must be a boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rc, err := config.RuleConfigFromValue(tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.enabled, rc.IsEnabled())
			assert.Equal(t, tt.severity, rc.Severity)
			assert.Equal(t, tt.args, rc.Args)
		})
	}
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
extends: ./base.yaml
rulesDirectory:
  - rules
defaultSeverity: warning
rules:
  trailing-comma: [true, {multiline: never, singleline: never}]
  curly: [true, as-needed]
  no-console: false
  max-line-length:
    severity: error
    options: [120]
jsRules:
  semicolon: true
linterOptions:
  exclude:
    - "**/*.d.ts"
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, config.StringList{"./base.yaml"}, cfg.Extends)
	assert.Equal(t, config.StringList{"rules"}, cfg.RulesDirectory)
	assert.Equal(t, config.SeverityWarning, cfg.DefaultSeverity)
	assert.Equal(t, []string{"**/*.d.ts"}, cfg.LinterOptions.Exclude)

	require.Len(t, cfg.Rules, 4)
	assert.Equal(t, []any{map[string]any{"multiline": "never", "singleline": "never"}}, cfg.Rules["trailing-comma"].Args)
	assert.Equal(t, []any{"as-needed"}, cfg.Rules["curly"].Args)
	assert.False(t, cfg.Rules["no-console"].IsEnabled())
	assert.Equal(t, []any{float64(120)}, cfg.Rules["max-line-length"].Args)
	assert.Equal(t, config.SeverityError, cfg.Rules["max-line-length"].Severity)

	assert.Contains(t, cfg.RulesFor(true), "semicolon")
	assert.Contains(t, cfg.RulesFor(false), "curly")
}

func TestFromYAML_JSON(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`{"rules": {"no-consecutive-blank-lines": [true, 2]}}`))
	require.NoError(t, err)
	assert.Equal(t, []any{float64(2)}, cfg.Rules["no-consecutive-blank-lines"].Args)
}

func TestFromYAML_InvalidRule(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("rules:\n  curly: [as-needed]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["curly"] = config.Enabled("as-needed")
	cfg.Rules["no-console"] = config.Disabled()

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	back, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []any{"as-needed"}, back.Rules["curly"].Args)
	assert.False(t, back.Rules["no-console"].IsEnabled())
	assert.Equal(t, config.SeverityError, back.DefaultSeverity)
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["curly"] = config.Enabled("as-needed")
	cfg.LinterOptions.Exclude = []string{"a"}

	clone := cfg.Clone()
	clone.Rules["curly"].Args[0] = "always"
	clone.LinterOptions.Exclude[0] = "b"
	*clone.Rules["curly"].Enabled = false

	assert.Equal(t, "as-needed", cfg.Rules["curly"].Args[0])
	assert.Equal(t, "a", cfg.LinterOptions.Exclude[0])
	assert.True(t, cfg.Rules["curly"].IsEnabled())
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	sev, err := config.ParseSeverity("default", config.SeverityWarning)
	require.NoError(t, err)
	assert.Equal(t, config.SeverityWarning, sev)

	sev, err = config.ParseSeverity("Warn", config.SeverityError)
	require.NoError(t, err)
	assert.Equal(t, config.SeverityWarning, sev)
}
