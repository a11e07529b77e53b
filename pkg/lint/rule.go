// Package lint provides the rule framework and the linter that runs it:
// rules, walk contexts, failures, the rule loader and the fix pipeline.
package lint

import (
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/semantic"
)

// Category groups rules for documentation.
type Category string

// Rule categories.
const (
	CategoryStyle           Category = "style"
	CategoryMaintainability Category = "maintainability"
	CategoryFunctionality   Category = "functionality"
	CategoryTypeScript      Category = "typescript"
	CategoryFormat          Category = "format"
)

// Metadata is the static description of a rule.
type Metadata struct {
	// Name is the kebab-case rule name used in configuration.
	Name string

	Description string
	Rationale   string
	Category    Category

	// HasFix reports whether the rule proposes fixes.
	HasFix bool

	// RequiresTypeInfo selects ApplyWithProgram over Apply.
	RequiresTypeInfo bool

	// TypeScriptOnly rules are skipped for JavaScript files.
	TypeScriptOnly bool

	// OptionsDescription is a prose description of the rule arguments.
	OptionsDescription string

	// OptionsSchema describes the positional argument list. Nil means the
	// rule takes no arguments.
	OptionsSchema *Schema

	// OptionExamples are sample configurations, as YAML flow values.
	OptionExamples []string

	// DefaultSeverity applies when neither the rule entry nor the
	// configuration sets one. Empty means the configuration default.
	DefaultSeverity config.Severity
}

// Rule is a syntax-only rule. Apply walks ctx.File and reports through
// ctx. Returning an error marks the rule as failed for this file; its
// failures are discarded and other rules are unaffected.
type Rule interface {
	Metadata() Metadata
	Apply(ctx *WalkContext) error
}

// TypedRule is a rule that needs the semantic model. The linter builds
// one Program per pass and shares it between all typed rules.
type TypedRule interface {
	Rule
	ApplyWithProgram(ctx *WalkContext, program *semantic.Program) error
}
