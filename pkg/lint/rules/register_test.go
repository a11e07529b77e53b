package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
)

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	assert.Equal(t, []string{
		"curly", "eofline", "indent", "max-line-length", "no-console",
		"no-consecutive-blank-lines", "no-debugger", "no-trailing-whitespace",
		"no-unused-variable", "no-var-keyword", "prefer-const", "quotemark",
		"semicolon", "trailing-comma", "triple-equals",
	}, registry.Names())
}

func TestRegisterAll_Metadata(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	for _, rule := range registry.Rules() {
		meta := rule.Metadata()
		t.Run(meta.Name, func(t *testing.T) {
			t.Parallel()

			assert.NotEmpty(t, meta.Description)
			assert.NotEmpty(t, meta.Category)
			if meta.RequiresTypeInfo {
				assert.Implements(t, (*lint.TypedRule)(nil), rule)
			}
			if meta.OptionsSchema != nil {
				assert.NotEmpty(t, meta.OptionsDescription, "configurable rules describe their options")
				assert.NotEmpty(t, meta.OptionExamples)
			}
		})
	}
}

func TestRegisterCompatAliases(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	rules.RegisterCompatAliases(registry)

	tests := []struct {
		alias string
		want  string
	}{
		{alias: "eol-last", want: "eofline"},
		{alias: "no-var", want: "no-var-keyword"},
		{alias: "no-trailing-spaces", want: "no-trailing-whitespace"},
		{alias: "no-unused-vars", want: "no-unused-variable"},
		{alias: "semicolon", want: "semicolon"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			t.Parallel()

			name, rule, ok := registry.Resolve(tt.alias)
			require.True(t, ok)
			assert.Equal(t, tt.want, name)
			assert.Equal(t, tt.want, rule.Metadata().Name)
		})
	}

	_, _, ok := registry.Resolve("nonexistent-alias")
	assert.False(t, ok)
}

func TestDefaultRegistryHasAllRules(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"trailing-comma", "curly", "prefer-const", "no-unused-variable"} {
		_, ok := lint.DefaultRegistry.Get(name)
		assert.True(t, ok, "%s should be registered by init", name)
	}
	_, _, ok := lint.DefaultRegistry.Resolve("eol-last")
	assert.True(t, ok)
}
