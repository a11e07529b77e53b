package linttest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/parser/treesitter"
)

// Rule binds rule to args and fails the test on an options error.
func Rule(t testing.TB, rule lint.Rule, args ...any) *lint.ConfiguredRule {
	t.Helper()

	cr, err := lint.NewConfiguredRule(rule, args...)
	require.NoError(t, err)
	return cr
}

// Lint runs the rules over source and fails the test on a rule error.
func Lint(t testing.TB, path, source string, rules ...*lint.ConfiguredRule) *lint.Result {
	t.Helper()

	linter := lint.NewLinterFor(treesitter.New(), rules...)
	res, err := linter.Lint(context.Background(), path, []byte(source))
	require.NoError(t, err)
	require.Empty(t, res.RuleErrors)
	return res
}

// Check lints the code in markup and asserts that the failures match the
// annotations exactly.
func Check(t testing.TB, path, markup string, rules ...*lint.ConfiguredRule) *lint.Result {
	t.Helper()

	source, expected, err := Parse(markup)
	require.NoError(t, err)

	res := Lint(t, path, source, rules...)
	assert.Equal(t, expected, Actual(res.Failures))
	return res
}

// Actual converts failures to expectations for comparison.
func Actual(failures []*lint.RuleFailure) []Expectation {
	var out []Expectation
	for _, f := range failures {
		out = append(out, Expectation{Start: f.Start, End: f.End, Message: f.Message})
	}
	SortExpectations(out)
	return out
}

// Fix fixes source to convergence and returns the result. It fails the
// test when the pass limit is hit or the fixed text is not stable under
// a second run.
func Fix(t testing.TB, path, source string, rules ...*lint.ConfiguredRule) string {
	t.Helper()

	pipeline := lint.NewPipeline(lint.NewLinterFor(treesitter.New(), rules...))
	first, err := pipeline.Fix(context.Background(), path, []byte(source))
	require.NoError(t, err)

	second, err := pipeline.Fix(context.Background(), path, first.Content)
	require.NoError(t, err)
	assert.Zero(t, second.Passes, "fixed output is not stable")
	assert.Empty(t, second.Result.Fixable())

	return string(first.Content)
}
