package rules

import "github.com/yaklabco/gotslint/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Formatting rules
	registry.MustRegister(
		NewTrailingCommaRule(),
		NewNoConsecutiveBlankLinesRule(),
		NewNoTrailingWhitespaceRule(),
		NewSemicolonRule(),
		NewQuotemarkRule(),
		NewEoflineRule(),
		NewIndentRule(),
	)

	// Maintainability rules
	registry.MustRegister(
		NewMaxLineLengthRule(),
		NewPreferConstRule(),
	)

	// Functionality rules
	registry.MustRegister(
		NewCurlyRule(),
		NewNoVarKeywordRule(),
		NewTripleEqualsRule(),
		NewNoDebuggerRule(),
		NewNoConsoleRule(),
	)

	// TypeScript rules
	registry.MustRegister(NewNoUnusedVariableRule())
}

// RegisterCompatAliases registers the names other JavaScript linters use
// for rules that take no options or whose option formats match.
//
// Arguments are always decoded by the canonical rule.
func RegisterCompatAliases(registry *lint.Registry) {
	registry.RegisterAlias("eol-last", "eofline")
	registry.RegisterAlias("no-var", "no-var-keyword")
	registry.RegisterAlias("no-trailing-spaces", "no-trailing-whitespace")
	registry.RegisterAlias("no-unused-vars", "no-unused-variable")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterCompatAliases(lint.DefaultRegistry)
}
