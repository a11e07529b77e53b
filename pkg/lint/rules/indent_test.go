package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/lint/linttest"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
)

func TestIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []any
		markup string
	}{
		{
			name:   "tab where spaces are expected",
			args:   []any{"spaces"},
			markup: "function f() {\n\treturn 1;\n~ [space indentation expected]\n}",
		},
		{
			name:   "spaces where tabs are expected",
			args:   []any{"tabs"},
			markup: "function f() {\n    return 1;\n~~~~ [tab indentation expected]\n}",
		},
		{
			name:   "alignment after tabs",
			args:   []any{"tabs", float64(4)},
			markup: "f(a,\n\t  b);",
		},
		{
			name:   "comments are skipped",
			args:   []any{"tabs"},
			markup: "/**\n * doc\n */\nx;",
		},
		{
			name:   "template literals are skipped",
			args:   []any{"tabs"},
			markup: "const s = `\n    a\n`;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			linttest.Check(t, "test.ts", tt.markup, linttest.Rule(t, rules.NewIndentRule(), tt.args...))
		})
	}
}

func TestIndent_Fix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []any
		source string
		want   string
	}{
		{name: "tabs to four spaces", args: []any{"spaces"}, source: "if (x) {\n\ty();\n}\n", want: "if (x) {\n    y();\n}\n"},
		{name: "tabs to two spaces", args: []any{"spaces", float64(2)}, source: "if (x) {\n\ty();\n}\n", want: "if (x) {\n  y();\n}\n"},
		{name: "spaces to tabs", args: []any{"tabs"}, source: "if (x) {\n    y();\n}\n", want: "if (x) {\n\ty();\n}\n"},
		{name: "two space indent to tabs", args: []any{"tabs", float64(2)}, source: "if (x) {\n    y();\n}\n", want: "if (x) {\n\t\ty();\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rule := linttest.Rule(t, rules.NewIndentRule(), tt.args...)
			assert.Equal(t, tt.want, linttest.Fix(t, "test.ts", tt.source, rule))
		})
	}
}

func TestIndent_Options(t *testing.T) {
	t.Parallel()

	_, err := lint.NewConfiguredRule(rules.NewIndentRule(), "spaces", float64(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not one of [2, 4]")
}
