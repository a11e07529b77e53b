package rules

import (
	"fmt"
	"slices"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// NoConsoleMessage returns the message for a banned console method.
func NoConsoleMessage(method string) string {
	return fmt.Sprintf("Calls to 'console.%s' are not allowed.", method)
}

// NoConsoleOptions configures no-console.
type NoConsoleOptions struct {
	Methods []string `mapstructure:"methods" validate:"dive,required"`
}

// NoConsoleRule bans the use of specified console methods.
type NoConsoleRule struct {
	lint.BaseRule
}

// NewNoConsoleRule creates the no-console rule.
func NewNoConsoleRule() *NoConsoleRule {
	return &NoConsoleRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:               "no-console",
			Description:        "Bans the use of specified `console` methods.",
			Rationale:          "In general, `console` methods aren't appropriate for production code.",
			Category:           lint.CategoryFunctionality,
			OptionsDescription: "A list of method names to ban. If no method names are provided, all console methods are banned.",
			OptionsSchema: &lint.Schema{
				Type:   "array",
				ListOf: &lint.Schema{Type: "string"},
			},
			OptionExamples: []string{`[true, "log", "error"]`},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *NoConsoleRule) NewOptions() any {
	return &NoConsoleOptions{}
}

// ArgKeys implements lint.Configurable.
func (r *NoConsoleRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{ListKey: "methods"}
}

// Apply reports calls through console.<method>.
func (r *NoConsoleRule) Apply(ctx *lint.WalkContext) error {
	opts := lint.OptionsAs[*NoConsoleOptions](ctx)
	if opts == nil {
		opts = &NoConsoleOptions{}
	}

	for _, call := range ctx.NodesOfKind(tsast.KindCallExpression) {
		callee := call.ChildByField("function")
		if callee == nil || callee.Kind != tsast.KindMemberExpression {
			continue
		}
		object, property := callee.ChildByField("object"), callee.ChildByField("property")
		if object == nil || property == nil || object.Kind != tsast.KindIdentifier || object.Text() != "console" {
			continue
		}
		method := property.Text()
		if len(opts.Methods) > 0 && !slices.Contains(opts.Methods, method) {
			continue
		}
		ctx.AddFailureAtNode(callee, NoConsoleMessage(method))
	}
	return nil
}
