package lint_test

import (
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/semantic"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// funcRule is a test rule whose Apply is a closure.
type funcRule struct {
	lint.BaseRule
	apply func(ctx *lint.WalkContext) error
}

func newFuncRule(name string, hasFix bool, apply func(ctx *lint.WalkContext) error) *funcRule {
	return &funcRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{Name: name, HasFix: hasFix}),
		apply:    apply,
	}
}

func (r *funcRule) Apply(ctx *lint.WalkContext) error {
	return r.apply(ctx)
}

// typedRule records the program it was handed.
type typedRule struct {
	lint.BaseRule
	seen *[]*semantic.Program
}

func newTypedRule(name string, seen *[]*semantic.Program) *typedRule {
	return &typedRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{Name: name, RequiresTypeInfo: true}),
		seen:     seen,
	}
}

func (r *typedRule) ApplyWithProgram(ctx *lint.WalkContext, program *semantic.Program) error {
	*r.seen = append(*r.seen, program)
	for _, sym := range program.Unused() {
		ctx.AddFailureAtNode(sym.Ident, "unused "+sym.Name)
	}
	return nil
}

// kindRule reports every node of a kind, optionally replacing its text.
func kindRule(name string, kind tsast.Kind, message string, replacement *string) *funcRule {
	return newFuncRule(name, replacement != nil, func(ctx *lint.WalkContext) error {
		for _, n := range ctx.NodesOfKind(kind) {
			if replacement != nil {
				ctx.AddFailureAtNode(n, message, fix.ReplaceFromTo(n.Start, n.End, *replacement))
				continue
			}
			ctx.AddFailureAtNode(n, message)
		}
		return nil
	})
}

func ptr[T any](v T) *T {
	return &v
}

func mustRule(rule lint.Rule, args ...any) *lint.ConfiguredRule {
	cr, err := lint.NewConfiguredRule(rule, args...)
	if err != nil {
		panic(err)
	}
	return cr
}
