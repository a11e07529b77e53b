package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/parser/treesitter"
	"github.com/yaklabco/gotslint/pkg/semantic"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

var errBoom = errors.New("boom")

func failureStrings(failures []*lint.RuleFailure) []string {
	out := make([]string, len(failures))
	for i, f := range failures {
		out[i] = f.String()
	}
	return out
}

func TestLinter_FailuresSorted(t *testing.T) {
	t.Parallel()

	reverse := newFuncRule("b-reverse", false, func(ctx *lint.WalkContext) error {
		ctx.AddFailure(20, 25, "late")
		ctx.AddFailure(0, 10, "wide")
		ctx.AddFailure(0, 3, "narrow")
		return nil
	})
	same := newFuncRule("a-same", false, func(ctx *lint.WalkContext) error {
		ctx.AddFailure(0, 3, "narrow")
		return nil
	})

	linter := lint.NewLinterFor(treesitter.New(), mustRule(reverse), mustRule(same))
	res, err := linter.Lint(context.Background(), "sort.ts", []byte("let a = 1;\nlet b = 2;\nlet c = 3;\n"))
	require.NoError(t, err)
	require.Len(t, res.Failures, 4)

	type key struct {
		start, end int
		rule       string
	}
	got := make([]key, len(res.Failures))
	for i, f := range res.Failures {
		got[i] = key{f.Range.Pos, f.Range.End, f.RuleName}
	}
	assert.Equal(t, []key{
		{0, 3, "a-same"},
		{0, 3, "b-reverse"},
		{0, 10, "b-reverse"},
		{20, 25, "b-reverse"},
	}, got)
}

func TestLinter_Deterministic(t *testing.T) {
	t.Parallel()

	rules := []*lint.ConfiguredRule{
		mustRule(kindRule("idents", tsast.KindIdentifier, "identifier", nil)),
		mustRule(kindRule("numbers", tsast.KindNumber, "number", ptr("0"))),
	}
	source := []byte("const x = 1, y = 2;\nfunction f(a) { return a + x + y; }\n")

	first, err := lint.NewLinterFor(treesitter.New(), rules...).Lint(context.Background(), "det.ts", source)
	require.NoError(t, err)

	for range 5 {
		again, err := lint.NewLinterFor(treesitter.New(), rules...).Lint(context.Background(), "det.ts", source)
		require.NoError(t, err)
		assert.Equal(t, failureStrings(first.Failures), failureStrings(again.Failures))
	}
}

func TestLinter_RuleErrorsIsolated(t *testing.T) {
	t.Parallel()

	failing := newFuncRule("failing", false, func(ctx *lint.WalkContext) error {
		ctx.AddFailure(0, 1, "discarded")
		return errBoom
	})
	panicking := newFuncRule("panicking", false, func(*lint.WalkContext) error {
		panic("unexpected node")
	})
	healthy := kindRule("healthy", tsast.KindIdentifier, "identifier", nil)

	linter := lint.NewLinterFor(treesitter.New(), mustRule(failing), mustRule(panicking), mustRule(healthy))
	res, err := linter.Lint(context.Background(), "iso.ts", []byte("let a = b;"))
	require.NoError(t, err)

	require.Len(t, res.RuleErrors, 2)
	assert.Equal(t, "failing", res.RuleErrors[0].Rule)
	assert.ErrorIs(t, res.RuleErrors[0], errBoom)
	assert.False(t, res.RuleErrors[0].Panicked)
	assert.Equal(t, "panicking", res.RuleErrors[1].Rule)
	assert.True(t, res.RuleErrors[1].Panicked)
	assert.Contains(t, res.RuleErrors[1].Error(), "unexpected node")

	require.Len(t, res.Failures, 2)
	for _, f := range res.Failures {
		assert.Equal(t, "healthy", f.RuleName)
	}
}

func TestLinter_ParseError(t *testing.T) {
	t.Parallel()

	called := false
	rule := newFuncRule("never", false, func(*lint.WalkContext) error {
		called = true
		return nil
	})

	res, err := lint.NewLinterFor(treesitter.New(), mustRule(rule)).
		Lint(context.Background(), "broken.ts", []byte("let = ;\n"))
	require.NoError(t, err)

	assert.True(t, res.ParseFailed)
	assert.False(t, called)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, lint.ParseErrorRule, res.Failures[0].RuleName)
	assert.NotEmpty(t, res.Failures[0].Message)
}

func TestLinter_ProgramBuiltOnce(t *testing.T) {
	t.Parallel()

	var seen []*semantic.Program
	linter := lint.NewLinterFor(treesitter.New(),
		mustRule(newTypedRule("typed-a", &seen)),
		mustRule(newTypedRule("typed-b", &seen)),
	)

	_, err := linter.Lint(context.Background(), "prog.ts", []byte("let a = 1;\nexport const b = a;\n"))
	require.NoError(t, err)

	require.Len(t, seen, 2)
	require.NotNil(t, seen[0])
	assert.Same(t, seen[0], seen[1])
}

func TestLinter_DialectRuleSets(t *testing.T) {
	t.Parallel()

	tsOnly := kindRule("ts-idents", tsast.KindIdentifier, "ts", nil)
	shared := kindRule("idents", tsast.KindIdentifier, "any", nil)
	set := &lint.RuleSet{
		TypeScript: []*lint.ConfiguredRule{mustRule(shared), mustRule(tsOnly)},
		JavaScript: []*lint.ConfiguredRule{mustRule(shared)},
	}
	linter := lint.NewLinter(treesitter.New(), set)

	tests := []struct {
		path  string
		rules []string
	}{
		{path: "a.ts", rules: []string{"idents", "ts-idents"}},
		{path: "a.tsx", rules: []string{"idents", "ts-idents"}},
		{path: "a.js", rules: []string{"idents"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			res, err := linter.Lint(context.Background(), tt.path, []byte("x;"))
			require.NoError(t, err)

			var got []string
			for _, f := range res.Failures {
				got = append(got, f.RuleName)
			}
			assert.Equal(t, tt.rules, got)
		})
	}
}

func TestLinter_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rule := kindRule("idents", tsast.KindIdentifier, "identifier", nil)
	_, err := lint.NewLinterFor(treesitter.New(), mustRule(rule)).Lint(ctx, "c.ts", []byte("x;"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_Fixable(t *testing.T) {
	t.Parallel()

	fixing := mustRule(kindRule("fixing", tsast.KindNumber, "number", ptr("0")))
	manual := mustRule(kindRule("manual", tsast.KindNumber, "number", ptr("1")))
	manual.AutoFix = false

	res, err := lint.NewLinterFor(treesitter.New(), fixing, manual).
		Lint(context.Background(), "f.ts", []byte("let a = 5;"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.FixableCount())
	require.Len(t, res.Fixable(), 1)
	assert.Equal(t, "fixing", res.Fixable()[0].RuleName)
}
