package rules

import (
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// Trailing comma messages.
const (
	TrailingCommaMissing     = "Missing trailing comma"
	TrailingCommaUnnecessary = "Unnecessary trailing comma"
)

// Trailing comma policies.
const (
	commaAlways = "always"
	commaNever  = "never"
	commaIgnore = "ignore"
)

// trailingCommaCategories maps list kinds to the option key that governs them.
var trailingCommaCategories = map[tsast.Kind]string{
	tsast.KindArray:         "arrays",
	tsast.KindArrayPattern:  "arrays",
	tsast.KindTupleType:     "arrays",
	tsast.KindObject:        "objects",
	tsast.KindObjectPattern: "objects",
	tsast.KindArguments:     "functions",
	tsast.KindParameters:    "functions",
	tsast.KindTypeArguments: "functions",
	tsast.KindTypeParams:    "functions",
	tsast.KindNamedImports:  "imports",
	tsast.KindExportClause:  "exports",
	tsast.KindObjectType:    "typeLiterals",
}

// TrailingCommaOptions configures trailing-comma.
//
// Multiline and Singleline are either a policy string applied to every
// list kind or an object keyed by list kind (arrays, objects, functions,
// imports, exports, typeLiterals).
type TrailingCommaOptions struct {
	Multiline       any  `mapstructure:"multiline"`
	Singleline      any  `mapstructure:"singleline"`
	EsSpecCompliant bool `mapstructure:"esSpecCompliant"`
}

func (o *TrailingCommaOptions) policy(multiline bool, category string) string {
	setting := o.Singleline
	if multiline {
		setting = o.Multiline
	}
	switch v := setting.(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v[category].(string); ok {
			return s
		}
	}
	return commaIgnore
}

// TrailingCommaRule requires or forbids trailing commas in lists.
type TrailingCommaRule struct {
	lint.BaseRule
}

// NewTrailingCommaRule creates the trailing-comma rule.
func NewTrailingCommaRule() *TrailingCommaRule {
	policy := &lint.Schema{Type: "string", Enum: []any{commaAlways, commaNever, commaIgnore}}
	perKind := map[string]*lint.Schema{}
	for _, key := range []string{"arrays", "objects", "functions", "imports", "exports", "typeLiterals"} {
		perKind[key] = policy
	}
	setting := &lint.Schema{AnyOf: []*lint.Schema{policy, {Type: "object", Properties: perKind}}}

	return &TrailingCommaRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "trailing-comma",
			Description: "Requires or disallows trailing commas in array and object literals, destructuring assignments, function typings, named imports and exports and function parameters.",
			Rationale:   "When used consistently, this rule helps avoid unnecessary whitespace diffs.",
			Category:    lint.CategoryFormat,
			HasFix:      true,
			OptionsDescription: "One argument which is an object with the keys `multiline` and `singleline`. " +
				"Each can be `\"always\"`, `\"never\"` or `\"ignore\"`, or an object mapping list kinds to those values. " +
				"A list is multiline when its closing token is on a different line than its last element. " +
				"`esSpecCompliant` forbids trailing commas after rest elements.",
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MaxLength: 1,
				ListOf: &lint.Schema{Type: "object", Properties: map[string]*lint.Schema{
					"multiline":       setting,
					"singleline":      setting,
					"esSpecCompliant": {Type: "boolean"},
				}},
			},
			OptionExamples: []string{
				`[true, {"multiline": "always", "singleline": "never"}]`,
				`[true, {"multiline": {"objects": "always", "functions": "never"}, "esSpecCompliant": true}]`,
			},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *TrailingCommaRule) NewOptions() any {
	return &TrailingCommaOptions{}
}

// ArgKeys implements lint.Configurable.
func (r *TrailingCommaRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{}
}

// Apply checks every list for its trailing comma.
func (r *TrailingCommaRule) Apply(ctx *lint.WalkContext) error {
	opts := lint.OptionsAs[*TrailingCommaOptions](ctx)
	if opts == nil {
		return nil
	}

	kinds := make([]tsast.Kind, 0, len(trailingCommaCategories))
	for kind := range trailingCommaCategories {
		kinds = append(kinds, kind)
	}

	for _, node := range ctx.NodesOfKind(kinds...) {
		list, ok := analyzeList(node)
		if !ok {
			continue
		}

		lines := ctx.File.Lines
		multiline := lines.LineOf(list.last.End) != lines.LineOf(list.close.Start)
		policy := opts.policy(multiline, trailingCommaCategories[node.Kind])
		rest := isRestElement(list.last)

		switch {
		case list.comma != nil && (policy == commaNever || (rest && opts.EsSpecCompliant)):
			ctx.AddFailureAtNode(list.comma, TrailingCommaUnnecessary,
				fix.DeleteFromTo(list.comma.Start, list.comma.End))
		case list.comma == nil && policy == commaAlways && !rest:
			ctx.AddFailure(list.last.End, list.last.End, TrailingCommaMissing,
				fix.AppendText(list.last.End, ","))
		}
	}
	return nil
}

// delimitedList is a bracketed list with its last element and trailing comma.
type delimitedList struct {
	close *tsast.Node
	last  *tsast.Node
	comma *tsast.Node
}

// analyzeList finds the last element of a bracketed list. Empty lists,
// lists with holes and lists using other separators are not analyzed.
func analyzeList(node *tsast.Node) (delimitedList, bool) {
	open, closing := node.FirstChild, node.LastChild
	if open == nil || closing == nil || open == closing || open.Named || closing.Named || closing.Missing {
		return delimitedList{}, false
	}

	list := delimitedList{close: closing}
	for c := closing.PrevNonComment(); c != nil && c != open; c = c.PrevNonComment() {
		if c.Kind == "," {
			if list.comma != nil {
				return delimitedList{}, false
			}
			list.comma = c
			continue
		}
		if !c.Named {
			return delimitedList{}, false
		}
		list.last = c
		break
	}
	return list, list.last != nil
}

func isRestElement(n *tsast.Node) bool {
	switch n.Kind {
	case tsast.KindRestPattern:
		return true
	case tsast.KindSpreadElement:
		// Spread in an assignment pattern is a rest element.
		return n.Parent != nil && n.Parent.Kind == tsast.KindArrayPattern
	case tsast.KindRequiredParameter, tsast.KindOptionalParameter:
		return n.ChildOfKind(tsast.KindRestPattern) != nil
	}
	return false
}
