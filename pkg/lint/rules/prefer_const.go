package rules

import (
	"fmt"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/semantic"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// PreferConstMessage returns the message for a let binding that is never reassigned.
func PreferConstMessage(name string) string {
	return fmt.Sprintf("Identifier '%s' is never reassigned; use 'const' instead of 'let'.", name)
}

// PreferConstOptions configures prefer-const.
type PreferConstOptions struct {
	Destructuring string `mapstructure:"destructuring" validate:"oneof=any all"`
}

// PreferConstRule requires that variable declarations use const instead of
// let if possible.
type PreferConstRule struct {
	lint.BaseRule
}

// NewPreferConstRule creates the prefer-const rule.
func NewPreferConstRule() *PreferConstRule {
	return &PreferConstRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name: "prefer-const",
			Description: "Requires that variable declarations use `const` instead of `let` " +
				"if possible.",
			Rationale: "If a variable is only assigned to once when it is declared, it should be declared using 'const'",
			Category:  lint.CategoryMaintainability,
			HasFix:    true,

			RequiresTypeInfo: true,
			OptionsDescription: "An object with `destructuring`: `\"any\"` (the default) reports each binding of a " +
				"destructuring declaration on its own, `\"all\"` only reports when every binding of the " +
				"destructuring can be const.",
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MaxLength: 1,
				Items: []*lint.Schema{{Type: "object", Properties: map[string]*lint.Schema{
					"destructuring": {Type: "string", Enum: []any{"all", "any"}},
				}}},
			},
			OptionExamples: []string{`true`, `[true, {"destructuring": "all"}]`},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *PreferConstRule) NewOptions() any {
	return &PreferConstOptions{Destructuring: "any"}
}

// ArgKeys implements lint.Configurable.
func (r *PreferConstRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{}
}

// ApplyWithProgram reports let bindings without writes. The keyword fix is
// attached to the first failure of a declaration and only when every
// binding it declares can be const.
func (r *PreferConstRule) ApplyWithProgram(ctx *lint.WalkContext, program *semantic.Program) error {
	opts := lint.OptionsAs[*PreferConstOptions](ctx)
	if opts == nil {
		opts = &PreferConstOptions{Destructuring: "any"}
	}

	type declaration struct {
		node    *tsast.Node
		symbols []*semantic.Symbol
	}
	var order []*declaration
	byNode := make(map[*tsast.Node]*declaration)
	for _, sym := range program.Symbols() {
		if sym.Kind != semantic.SymbolVariable || sym.Keyword != "let" || sym.Declaration == nil {
			continue
		}
		decl, ok := byNode[sym.Declaration]
		if !ok {
			decl = &declaration{node: sym.Declaration}
			byNode[sym.Declaration] = decl
			order = append(order, decl)
		}
		decl.symbols = append(decl.symbols, sym)
	}

	for _, decl := range order {
		if ctx.Cancelled() {
			return nil
		}
		qualifies := make(map[*semantic.Symbol]bool, len(decl.symbols))
		for _, sym := range decl.symbols {
			qualifies[sym] = canBeConst(sym)
		}
		if opts.Destructuring == "all" {
			// A destructuring declarator is all-or-nothing.
			byDeclarator := make(map[*tsast.Node]bool)
			for _, sym := range decl.symbols {
				key := bindingGroup(sym)
				if ok, seen := byDeclarator[key]; seen {
					byDeclarator[key] = ok && qualifies[sym]
				} else {
					byDeclarator[key] = qualifies[sym]
				}
			}
			for _, sym := range decl.symbols {
				qualifies[sym] = byDeclarator[bindingGroup(sym)]
			}
		}

		all := true
		for _, sym := range decl.symbols {
			all = all && qualifies[sym]
		}
		keyword := letKeyword(decl.node)

		fixed := false
		for _, sym := range decl.symbols {
			if !qualifies[sym] {
				continue
			}
			if all && !fixed && keyword != nil {
				ctx.AddFailureAtNode(sym.Ident, PreferConstMessage(sym.Name),
					fix.ReplaceFromTo(keyword.Start, keyword.End, "const"))
				fixed = true
				continue
			}
			ctx.AddFailureAtNode(sym.Ident, PreferConstMessage(sym.Name))
		}
	}
	return nil
}

// canBeConst reports a let binding that is initialized at its declaration
// and never written afterwards.
func canBeConst(sym *semantic.Symbol) bool {
	if sym.IsReassigned() {
		return false
	}
	if sym.Declaration.Kind == tsast.KindForInStatement {
		return true
	}
	return sym.Declarator != nil && sym.Declarator.ChildByField("value") != nil
}

// bindingGroup returns the node shared by bindings of one declarator.
func bindingGroup(sym *semantic.Symbol) *tsast.Node {
	if sym.Declarator != nil {
		return sym.Declarator
	}
	return sym.Declaration
}

// letKeyword returns the let token of a declaration.
func letKeyword(decl *tsast.Node) *tsast.Node {
	keyword := decl.FirstChild
	if decl.Kind == tsast.KindForInStatement {
		keyword = decl.ChildByField("kind")
	}
	if keyword == nil || keyword.Kind != "let" {
		return nil
	}
	return keyword
}
