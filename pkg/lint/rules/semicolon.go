package rules

import (
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// Semicolon messages.
const (
	SemicolonMissing     = "Missing semicolon"
	SemicolonUnnecessary = "Unnecessary semicolon"
)

// SemicolonOptions configures semicolon.
type SemicolonOptions struct {
	Always                  bool `mapstructure:"always"`
	Never                   bool `mapstructure:"never"`
	IgnoreInterfaces        bool `mapstructure:"ignore-interfaces"`
	IgnoreBoundClassMethods bool `mapstructure:"ignore-bound-class-methods"`
}

// semicolonStatements end with a semicolon in the grammar.
var semicolonStatements = []tsast.Kind{
	tsast.KindExpressionStatement, tsast.KindLexicalDeclaration, tsast.KindVariableDeclaration,
	tsast.KindReturnStatement, tsast.KindThrowStatement, tsast.KindBreakStatement,
	tsast.KindContinueStatement, tsast.KindDoStatement, tsast.KindImportStatement,
	tsast.KindExportStatement, tsast.KindTypeAlias, tsast.KindDebuggerStatement,
}

// SemicolonRule enforces consistent semicolon usage at the end of every statement.
type SemicolonRule struct {
	lint.BaseRule
}

// NewSemicolonRule creates the semicolon rule.
func NewSemicolonRule() *SemicolonRule {
	return &SemicolonRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "semicolon",
			Description: "Enforces consistent semicolon usage at the end of every statement.",
			Category:    lint.CategoryFormat,
			HasFix:      true,
			OptionsDescription: "`\"always\"` (the default) enforces semicolons, `\"never\"` disallows them " +
				"where automatic semicolon insertion gives the same result. `\"ignore-interfaces\"` skips " +
				"interface members and `\"ignore-bound-class-methods\"` skips class properties initialized " +
				"with an arrow function.",
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MaxLength: 3,
				Items:     []*lint.Schema{{Type: "string", Enum: []any{"always", "never"}}},
				ListOf:    &lint.Schema{Type: "string", Enum: []any{"ignore-interfaces", "ignore-bound-class-methods"}},
			},
			OptionExamples: []string{`[true, "always"]`, `[true, "never"]`, `[true, "always", "ignore-interfaces"]`},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *SemicolonRule) NewOptions() any {
	return &SemicolonOptions{}
}

// ArgKeys implements lint.Configurable.
func (r *SemicolonRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{}
}

// Apply checks statements, class members and interface members.
func (r *SemicolonRule) Apply(ctx *lint.WalkContext) error {
	opts := lint.OptionsAs[*SemicolonOptions](ctx)
	if opts == nil {
		opts = &SemicolonOptions{}
	}
	never := opts.Never

	for _, stmt := range ctx.NodesOfKind(semicolonStatements...) {
		if skipSemicolonStatement(stmt) {
			continue
		}
		last := stmt.LastChild
		hasSemicolon := last != nil && last.Kind == ";" && !last.Missing
		switch {
		case !hasSemicolon && !never:
			reportMissingSemicolon(ctx, stmt.End)
		case hasSemicolon && never && semicolonRemovable(ctx, last, stmt.NextNonComment()):
			reportUnnecessarySemicolon(ctx, last)
		}
	}

	for _, body := range ctx.NodesOfKind(tsast.KindClassBody) {
		r.checkMembers(ctx, body, never, func(member *tsast.Node) bool {
			if member.Kind == tsast.KindMethodDefinition {
				return false
			}
			return !(opts.IgnoreBoundClassMethods && isBoundClassMethod(member))
		})
	}

	if !opts.IgnoreInterfaces {
		for _, body := range ctx.NodesOfKind(tsast.KindInterfaceBody, tsast.KindObjectType) {
			if body.Parent == nil || body.Parent.Kind != tsast.KindInterface {
				continue
			}
			r.checkMembers(ctx, body, never, func(*tsast.Node) bool { return true })
		}
	}
	return nil
}

// checkMembers checks the separators of a class or interface body.
// checked reports whether a member's terminator is governed by the rule;
// a semicolon after an unchecked member is always unnecessary.
func (r *SemicolonRule) checkMembers(ctx *lint.WalkContext, body *tsast.Node, never bool, checked func(*tsast.Node) bool) {
	var prev *tsast.Node
	for c := body.FirstChild; c != nil; c = c.Next {
		switch {
		case c.Kind == tsast.KindComment || c.Kind == "{" || c.Kind == "}" || c.Kind == "decorator":
			// Not a member.
		case c.Kind == ",":
			prev = nil
		case c.Kind == ";":
			next := c.NextNonComment()
			switch {
			case prev == nil || !checked(prev):
				reportUnnecessarySemicolon(ctx, c)
			case never && semicolonRemovable(ctx, c, next):
				reportUnnecessarySemicolon(ctx, c)
			}
			prev = nil
		case c.Named:
			if prev != nil && checked(prev) && !never {
				reportMissingSemicolon(ctx, prev.End)
			}
			prev = c
			if next := c.NextNonComment(); next != nil && next.Kind == "}" && checked(c) && !never {
				reportMissingSemicolon(ctx, c.End)
				prev = nil
			}
		}
	}
}

func reportMissingSemicolon(ctx *lint.WalkContext, at int) {
	ctx.AddFailure(at, at, SemicolonMissing, fix.AppendText(at, ";"))
}

func reportUnnecessarySemicolon(ctx *lint.WalkContext, semicolon *tsast.Node) {
	ctx.AddFailureAtNode(semicolon, SemicolonUnnecessary, fix.DeleteFromTo(semicolon.Start, semicolon.End))
}

// skipSemicolonStatement excludes statements whose terminator is not
// optional or not theirs to check.
func skipSemicolonStatement(stmt *tsast.Node) bool {
	if stmt.Parent != nil && stmt.Parent.Kind == tsast.KindForStatement {
		// Initializer and condition of a for header.
		return stmt.Field != "body"
	}
	if stmt.Kind == tsast.KindExportStatement {
		if stmt.ChildByField("declaration") != nil {
			return true
		}
		if value := stmt.ChildByField("value"); value != nil && (value.Kind.IsFunctionLike() || value.Kind == tsast.KindClass) {
			return true
		}
	}
	return false
}

// semicolonRemovable reports whether deleting semicolon keeps the meaning
// of the code under automatic semicolon insertion.
func semicolonRemovable(ctx *lint.WalkContext, semicolon, next *tsast.Node) bool {
	if next == nil || next.Kind == "}" {
		return true
	}
	lines := ctx.File.Lines
	if lines.LineOf(semicolon.End) == lines.LineOf(next.Start) {
		return false
	}
	switch ctx.File.Content[next.Start] {
	case '(', '[', '`', '+', '-', '/', '*', '<', ',', '.':
		return false
	}
	return true
}

func isBoundClassMethod(member *tsast.Node) bool {
	value := member.ChildByField("value")
	return member.Kind == tsast.KindFieldDefinition && value != nil && value.Kind == tsast.KindArrowFunction
}
