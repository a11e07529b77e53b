package rules

import (
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// Triple-equals messages.
const (
	TripleEqualsMessage    = "== should be ==="
	TripleNotEqualsMessage = "!= should be !=="
)

// TripleEqualsOptions configures triple-equals.
type TripleEqualsOptions struct {
	AllowNullCheck      bool `mapstructure:"allow-null-check"`
	AllowUndefinedCheck bool `mapstructure:"allow-undefined-check"`
}

// TripleEqualsRule requires === and !== in place of == and !=.
type TripleEqualsRule struct {
	lint.BaseRule
}

// NewTripleEqualsRule creates the triple-equals rule.
func NewTripleEqualsRule() *TripleEqualsRule {
	return &TripleEqualsRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "triple-equals",
			Description: "Requires `===` and `!==` in place of `==` and `!=`.",
			Category:    lint.CategoryFunctionality,
			HasFix:      true,
			OptionsDescription: "`\"allow-null-check\"` allows `==` and `!=` when comparing to `null`, " +
				"`\"allow-undefined-check\"` allows them when comparing to `undefined`.",
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MaxLength: 2,
				ListOf:    &lint.Schema{Type: "string", Enum: []any{"allow-null-check", "allow-undefined-check"}},
			},
			OptionExamples: []string{`true`, `[true, "allow-null-check"]`},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *TripleEqualsRule) NewOptions() any {
	return &TripleEqualsOptions{}
}

// ArgKeys implements lint.Configurable.
func (r *TripleEqualsRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{}
}

// Apply checks binary expressions.
func (r *TripleEqualsRule) Apply(ctx *lint.WalkContext) error {
	opts := lint.OptionsAs[*TripleEqualsOptions](ctx)
	if opts == nil {
		opts = &TripleEqualsOptions{}
	}

	for _, expr := range ctx.NodesOfKind(tsast.KindBinaryExpression) {
		op := expr.ChildByField("operator")
		if op == nil {
			continue
		}
		var message, replacement string
		switch op.Kind {
		case "==":
			message, replacement = TripleEqualsMessage, "==="
		case "!=":
			message, replacement = TripleNotEqualsMessage, "!=="
		default:
			continue
		}

		left, right := expr.ChildByField("left"), expr.ChildByField("right")
		if opts.AllowNullCheck && (isNullLiteral(left) || isNullLiteral(right)) {
			continue
		}
		if opts.AllowUndefinedCheck && (isUndefined(left) || isUndefined(right)) {
			continue
		}
		ctx.AddFailureAtNode(op, message, fix.ReplaceFromTo(op.Start, op.End, replacement))
	}
	return nil
}

func isNullLiteral(n *tsast.Node) bool {
	return n != nil && n.Kind == tsast.KindNull
}

func isUndefined(n *tsast.Node) bool {
	return n != nil && (n.Kind == tsast.KindUndefined || (n.Kind == tsast.KindIdentifier && n.Text() == "undefined"))
}
