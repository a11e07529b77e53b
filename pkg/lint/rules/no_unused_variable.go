package rules

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/semantic"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// UnusedImportsMessage is reported once for an import whose bindings are all unused.
const UnusedImportsMessage = "All imports on this line are unused."

// UnusedValueMessage returns the message for a value that is never read.
func UnusedValueMessage(name string) string {
	return fmt.Sprintf("'%s' is declared but its value is never read.", name)
}

// UnusedTypeMessage returns the message for a type that is never referenced.
func UnusedTypeMessage(name string) string {
	return fmt.Sprintf("'%s' is declared but never used.", name)
}

// UnusedVariableOptions configures no-unused-variable.
type UnusedVariableOptions struct {
	IgnorePattern string `mapstructure:"ignore-pattern"`

	ignore *regexp.Regexp
}

// Validate compiles the ignore pattern.
func (o *UnusedVariableOptions) Validate() error {
	if o.IgnorePattern == "" {
		return nil
	}
	re, err := regexp.Compile(o.IgnorePattern)
	if err != nil {
		return fmt.Errorf("invalid ignore-pattern: %w", err)
	}
	o.ignore = re
	return nil
}

// NoUnusedVariableRule disallows unused imports, variables, functions,
// classes and types.
type NoUnusedVariableRule struct {
	lint.BaseRule
}

// NewNoUnusedVariableRule creates the no-unused-variable rule.
func NewNoUnusedVariableRule() *NoUnusedVariableRule {
	return &NoUnusedVariableRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "no-unused-variable",
			Description: "Disallows unused imports, variables, functions, classes and types.",
			Rationale:   "Unused declarations are dead code that readers still have to understand.",
			Category:    lint.CategoryTypeScript,
			HasFix:      true,

			RequiresTypeInfo: true,
			TypeScriptOnly:   true,
			OptionsDescription: "An object with `ignore-pattern`, a regular expression; names matching it are " +
				"never reported. Exported declarations, parameters and names starting with `_` are always ignored.",
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MaxLength: 1,
				Items: []*lint.Schema{{Type: "object", Properties: map[string]*lint.Schema{
					"ignore-pattern": {Type: "string"},
				}}},
			},
			OptionExamples: []string{`true`, `[true, {"ignore-pattern": "^React$"}]`},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *NoUnusedVariableRule) NewOptions() any {
	return &UnusedVariableOptions{}
}

// ArgKeys implements lint.Configurable.
func (r *NoUnusedVariableRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{}
}

// ApplyWithProgram reports unused symbols. Imports whose every binding is
// unused collapse into one failure whose fix removes the import.
func (r *NoUnusedVariableRule) ApplyWithProgram(ctx *lint.WalkContext, program *semantic.Program) error {
	opts := lint.OptionsAs[*UnusedVariableOptions](ctx)
	if opts == nil {
		opts = &UnusedVariableOptions{}
	}

	importBindings := make(map[*tsast.Node]int)
	for _, sym := range program.Symbols() {
		if sym.Kind == semantic.SymbolImport {
			importBindings[sym.Declaration]++
		}
	}

	var unused []*semantic.Symbol
	unusedImports := make(map[*tsast.Node]int)
	for _, sym := range program.Unused() {
		if ignoreUnused(sym, opts) {
			continue
		}
		unused = append(unused, sym)
		if sym.Kind == semantic.SymbolImport {
			unusedImports[sym.Declaration]++
		}
	}

	reported := make(map[*tsast.Node]bool)
	for _, sym := range unused {
		if sym.Kind == semantic.SymbolImport && unusedImports[sym.Declaration] == importBindings[sym.Declaration] {
			stmt := sym.Declaration
			if reported[stmt] {
				continue
			}
			reported[stmt] = true
			start, end := statementLineExtent(ctx, stmt)
			ctx.AddFailureAtNode(stmt, UnusedImportsMessage, fix.DeleteFromTo(start, end))
			continue
		}

		message := UnusedValueMessage(sym.Name)
		if sym.Kind == semantic.SymbolType {
			message = UnusedTypeMessage(sym.Name)
		}
		ctx.AddFailureAtNode(sym.Ident, message)
	}
	return nil
}

func ignoreUnused(sym *semantic.Symbol, opts *UnusedVariableOptions) bool {
	if opts.ignore != nil && opts.ignore.MatchString(sym.Name) {
		return true
	}
	if sym.Ident.Ancestor(tsast.KindAmbientDecl) != nil {
		return true
	}
	// A named function expression's own name is optional.
	return sym.Kind == semantic.SymbolFunction && sym.Declaration != nil &&
		sym.Declaration.Kind != tsast.KindFunctionDeclaration && sym.Declaration.Kind != tsast.KindGeneratorDeclaration
}
