package rules

import (
	"strings"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// QuotemarkMessage returns the message for a string using the wrong quote.
func QuotemarkMessage(actual, expected byte) string {
	return string(actual) + " should be " + string(expected)
}

// QuotemarkOptions configures quotemark.
type QuotemarkOptions struct {
	Single        bool `mapstructure:"single"`
	Double        bool `mapstructure:"double"`
	Backtick      bool `mapstructure:"backtick"`
	JSXSingle     bool `mapstructure:"jsx-single"`
	JSXDouble     bool `mapstructure:"jsx-double"`
	AvoidEscape   bool `mapstructure:"avoid-escape"`
	AvoidTemplate bool `mapstructure:"avoid-template"`
}

func (o *QuotemarkOptions) quote() byte {
	switch {
	case o.Single:
		return '\''
	case o.Backtick:
		return '`'
	default:
		return '"'
	}
}

func (o *QuotemarkOptions) jsxQuote() byte {
	switch {
	case o.JSXSingle:
		return '\''
	case o.JSXDouble:
		return '"'
	case o.Single:
		return '\''
	default:
		return '"'
	}
}

// QuotemarkRule enforces quote character for string literals.
type QuotemarkRule struct {
	lint.BaseRule
}

// NewQuotemarkRule creates the quotemark rule.
func NewQuotemarkRule() *QuotemarkRule {
	return &QuotemarkRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "quotemark",
			Description: "Enforces quote character for string literals.",
			Category:    lint.CategoryFormat,
			HasFix:      true,
			OptionsDescription: "One of `\"single\"`, `\"double\"` (the default) or `\"backtick\"`, optionally " +
				"`\"jsx-single\"` or `\"jsx-double\"` for JSX attributes, `\"avoid-escape\"` to allow the other " +
				"quote when it saves an escape, and `\"avoid-template\"` to forbid single-line template literals " +
				"without substitutions.",
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MaxLength: 5,
				ListOf: &lint.Schema{Type: "string", Enum: []any{
					"single", "double", "backtick", "jsx-single", "jsx-double", "avoid-escape", "avoid-template",
				}},
			},
			OptionExamples: []string{`[true, "single", "avoid-escape", "avoid-template"]`, `[true, "single", "jsx-double"]`},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *QuotemarkRule) NewOptions() any {
	return &QuotemarkOptions{}
}

// ArgKeys implements lint.Configurable.
func (r *QuotemarkRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{}
}

// Apply checks string and template literals.
func (r *QuotemarkRule) Apply(ctx *lint.WalkContext) error {
	opts := lint.OptionsAs[*QuotemarkOptions](ctx)
	if opts == nil {
		opts = &QuotemarkOptions{}
	}

	for _, node := range ctx.NodesOfKind(tsast.KindString, tsast.KindTemplateString) {
		if node.Width() < 2 {
			continue
		}
		text := node.Text()
		actual := text[0]
		body := text[1 : len(text)-1]

		var expected byte
		switch {
		case node.Kind == tsast.KindTemplateString:
			if !opts.AvoidTemplate || opts.Backtick || !plainTemplate(node, body) {
				continue
			}
			expected = opts.quote()
		case node.Parent != nil && node.Parent.Kind == tsast.KindJSXAttribute:
			expected = opts.jsxQuote()
		default:
			expected = opts.quote()
			if expected == '`' && !backtickAllowed(node) {
				continue
			}
		}

		if actual == expected {
			continue
		}
		if opts.AvoidEscape && strings.IndexByte(unescaped(body), expected) >= 0 {
			continue
		}

		replacement := string(expected) + requote(body, actual, expected) + string(expected)
		ctx.AddFailureAtNode(node, QuotemarkMessage(actual, expected),
			fix.ReplaceFromTo(node.Start, node.End, replacement))
	}
	return nil
}

// plainTemplate reports an untagged single-line template literal without
// substitutions.
func plainTemplate(node *tsast.Node, body string) bool {
	if node.ChildOfKind(tsast.KindTemplateSubstitute) != nil || strings.ContainsAny(body, "\r\n") {
		return false
	}
	return node.Parent == nil || node.Parent.Kind != tsast.KindCallExpression
}

// backtickAllowed reports positions where a template literal can replace
// a string literal.
func backtickAllowed(node *tsast.Node) bool {
	parent := node.Parent
	if parent == nil {
		return true
	}
	switch parent.Kind {
	case tsast.KindImportStatement, tsast.KindExportStatement, tsast.KindLiteralType,
		tsast.KindPropertySignature, tsast.KindMethodSignature, tsast.KindEnumBody,
		"enum_assignment", "import_require_clause", "module", "external_module_reference":
		return false
	case tsast.KindPair, tsast.KindMethodDefinition, tsast.KindFieldDefinition:
		return node.Field != "key" && node.Field != "name"
	case tsast.KindExpressionStatement:
		// Directive prologues such as "use strict".
		return !strings.HasPrefix(node.Text()[1:], "use ")
	}
	return true
}

// unescaped strips escape sequences so that only literal quote characters
// remain.
func unescaped(body string) string {
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' {
			i++
			continue
		}
		b.WriteByte(body[i])
	}
	return b.String()
}

// requote rewrites a literal body delimited by from so it can be delimited
// by to: escapes of from are dropped and bare occurrences of to escaped.
func requote(body string, from, to byte) string {
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			next := body[i+1]
			if next != from || next == to {
				b.WriteByte('\\')
			}
			b.WriteByte(next)
			i++
		case c == to:
			b.WriteByte('\\')
			b.WriteByte(c)
		case to == '`' && c == '$' && i+1 < len(body) && body[i+1] == '{':
			b.WriteString(`\$`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
