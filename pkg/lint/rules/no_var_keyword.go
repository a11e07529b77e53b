package rules

import (
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// NoVarKeywordMessage is reported for each var keyword.
const NoVarKeywordMessage = "Forbidden 'var' keyword, use 'let' or 'const' instead"

// NoVarKeywordRule disallows usage of the var keyword.
type NoVarKeywordRule struct {
	lint.BaseRule
}

// NewNoVarKeywordRule creates the no-var-keyword rule.
func NewNoVarKeywordRule() *NoVarKeywordRule {
	return &NoVarKeywordRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "no-var-keyword",
			Description: "Disallows usage of the `var` keyword.",
			Rationale:   "Declare variables using `let` or `const` instead.",
			Category:    lint.CategoryFunctionality,
			HasFix:      true,
		}),
	}
}

// Apply reports var declarations outside ambient contexts. The fix to
// let is only offered when block scoping cannot change what a name refers to.
func (r *NoVarKeywordRule) Apply(ctx *lint.WalkContext) error {
	for _, node := range ctx.NodesOfKind(tsast.KindVariableDeclaration, tsast.KindForInStatement) {
		keyword := node.FirstChild
		var names *tsast.Node
		if node.Kind == tsast.KindForInStatement {
			keyword = node.ChildByField("kind")
			names = node.ChildByField("left")
		}
		if keyword == nil || keyword.Kind != "var" {
			continue
		}
		if node.Ancestor(tsast.KindAmbientDecl) != nil {
			continue
		}

		if safeToBlockScope(node, names) {
			ctx.AddFailureAtNode(keyword, NoVarKeywordMessage, fix.ReplaceFromTo(keyword.Start, keyword.End, "let"))
		} else {
			ctx.AddFailureAtNode(keyword, NoVarKeywordMessage)
		}
	}
	return nil
}

// safeToBlockScope reports whether every name decl binds is declared once
// in its function and only used after the declaration inside the block
// that will own the let binding.
func safeToBlockScope(decl, forInNames *tsast.Node) bool {
	var idents []*tsast.Node
	if forInNames != nil {
		idents = patternIdentifiers(forInNames)
	} else {
		for _, declarator := range decl.NamedChildren() {
			if declarator.Kind == tsast.KindVariableDeclarator {
				idents = append(idents, patternIdentifiers(declarator.ChildByField("name"))...)
			}
		}
	}
	if len(idents) == 0 {
		return false
	}

	block := decl.Parent
	if decl.Kind == tsast.KindForInStatement {
		block = decl
	}
	if block == nil {
		return false
	}
	switch block.Kind {
	case tsast.KindProgram, tsast.KindStatementBlock, tsast.KindForStatement, tsast.KindForInStatement:
	default:
		return false
	}

	scope := functionRoot(decl)
	for _, ident := range idents {
		name := ident.Text()
		safe := true
		tsast.Inspect(scope, func(n *tsast.Node) bool {
			if !safe {
				return false
			}
			if n.Kind != tsast.KindIdentifier && n.Kind != tsast.KindShorthandProperty &&
				n.Kind != tsast.KindShorthandPropertyPatten {
				return true
			}
			if n == ident || n.Text() != name {
				return true
			}
			if n.Start < decl.Start || n.Start >= block.End {
				safe = false
				return false
			}
			if other := n.Ancestor(tsast.KindVariableDeclaration); other != nil && other != decl && declares(other, n) {
				safe = false
			}
			return true
		})
		if !safe {
			return false
		}
	}
	return true
}

// functionRoot returns the nearest enclosing function or the program.
func functionRoot(n *tsast.Node) *tsast.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind.IsFunctionLike() || p.Kind == tsast.KindProgram {
			return p
		}
	}
	return n
}

// declares reports whether ident is a binding name of decl.
func declares(decl, ident *tsast.Node) bool {
	for _, declarator := range decl.NamedChildren() {
		if declarator.Kind != tsast.KindVariableDeclarator {
			continue
		}
		for _, name := range patternIdentifiers(declarator.ChildByField("name")) {
			if name == ident {
				return true
			}
		}
	}
	return false
}

// patternIdentifiers returns the identifiers a binding pattern declares.
func patternIdentifiers(p *tsast.Node) []*tsast.Node {
	if p == nil {
		return nil
	}
	switch p.Kind {
	case tsast.KindIdentifier, tsast.KindShorthandPropertyPatten:
		return []*tsast.Node{p}
	case tsast.KindPairPattern:
		return patternIdentifiers(p.ChildByField("value"))
	case tsast.KindAssignmentPattern, tsast.KindObjectAssignmentPattern:
		return patternIdentifiers(p.ChildByField("left"))
	case tsast.KindObjectPattern, tsast.KindArrayPattern, tsast.KindRestPattern:
		var out []*tsast.Node
		for _, child := range p.NamedChildren() {
			out = append(out, patternIdentifiers(child)...)
		}
		return out
	}
	return nil
}
