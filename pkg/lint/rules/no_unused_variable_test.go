package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotslint/pkg/lint/linttest"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
)

func TestNoUnusedVariable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []any
		markup string
	}{
		{
			name: "unused variable",
			markup: `const a = 1;
      ~ ['a' is declared but its value is never read.]
const b = 2;
foo(b);`,
		},
		{
			name: "unused function and class",
			markup: `function helper() {}
         ~~~~~~ ['helper' is declared but its value is never read.]
class K {}
      ~ ['K' is declared but its value is never read.]`,
		},
		{
			name: "unused type",
			markup: `interface I {}
          ~ ['I' is declared but never used.]
type T = string;
export const t: T = "";`,
		},
		{
			name: "whole import unused",
			markup: `import { a, b } from "m";
~~~~~~~~~~~~~~~~~~~~~~~~~ [All imports on this line are unused.]
foo();`,
		},
		{
			name: "partially used import",
			markup: `import { a, b } from "m";
            ~ ['b' is declared but its value is never read.]
foo(a);`,
		},
		{
			name:   "ignored declarations",
			markup: "export const c = 1;\nconst _d = 2;\nexport function p(x: number) {}\nexport const f = function named() {};\ndeclare const g: number;\ntry {} catch (e) {}",
		},
		{
			name:   "ignore-pattern",
			args:   []any{map[string]any{"ignore-pattern": "^React$"}},
			markup: "import React from \"react\";",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			linttest.Check(t, "test.ts", tt.markup, linttest.Rule(t, rules.NewNoUnusedVariableRule(), tt.args...))
		})
	}
}

func TestNoUnusedVariable_Fix(t *testing.T) {
	t.Parallel()

	rule := linttest.Rule(t, rules.NewNoUnusedVariableRule())

	got := linttest.Fix(t, "test.ts", "import { a } from \"m\";\nimport b from \"n\";\nfoo(b);\n", rule)
	assert.Equal(t, "import b from \"n\";\nfoo(b);\n", got)
}
