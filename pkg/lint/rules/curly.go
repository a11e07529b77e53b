package rules

import (
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// CurlyAsNeeded is reported for a block that only wraps one statement.
const CurlyAsNeeded = "Block contains only one statement; remove the curly braces."

// CurlyMissing returns the message for an unbraced body.
func CurlyMissing(kind string) string {
	return kind + " statements must be braced"
}

// CurlyOptions configures curly.
type CurlyOptions struct {
	AsNeeded       bool `mapstructure:"as-needed"`
	IgnoreSameLine bool `mapstructure:"ignore-same-line"`
}

// CurlyRule enforces braces for if/for/do/while statements.
type CurlyRule struct {
	lint.BaseRule
}

// NewCurlyRule creates the curly rule.
func NewCurlyRule() *CurlyRule {
	return &CurlyRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "curly",
			Description: "Enforces braces for `if`/`for`/`do`/`while` statements.",
			Rationale:   "Omitting braces invites bugs when a second statement is added to the body later.",
			Category:    lint.CategoryFunctionality,
			HasFix:      true,
			OptionsDescription: "With no option, bodies must always be braced. " +
				"`\"as-needed\"` forbids braces around a single statement. " +
				"`\"ignore-same-line\"` skips statements written entirely on one line.",
			OptionsSchema: &lint.Schema{
				Type:      "array",
				MaxLength: 1,
				ListOf:    &lint.Schema{Type: "string", Enum: []any{"as-needed", "ignore-same-line"}},
			},
			OptionExamples: []string{`true`, `[true, "ignore-same-line"]`, `[true, "as-needed"]`},
		}),
	}
}

// NewOptions implements lint.Configurable.
func (r *CurlyRule) NewOptions() any {
	return &CurlyOptions{}
}

// ArgKeys implements lint.Configurable.
func (r *CurlyRule) ArgKeys() lint.ArgKeys {
	return lint.ArgKeys{}
}

// Apply checks statement bodies.
func (r *CurlyRule) Apply(ctx *lint.WalkContext) error {
	opts := lint.OptionsAs[*CurlyOptions](ctx)
	if opts == nil {
		opts = &CurlyOptions{}
	}

	nodes := ctx.NodesOfKind(
		tsast.KindIfStatement, tsast.KindElseClause,
		tsast.KindForStatement, tsast.KindForInStatement,
		tsast.KindWhileStatement, tsast.KindDoStatement,
	)
	for _, node := range nodes {
		body := statementBody(node)
		if body == nil {
			continue
		}
		if opts.AsNeeded {
			r.checkAsNeeded(ctx, node, body)
		} else {
			r.checkAlways(ctx, node, body, opts.IgnoreSameLine)
		}
	}
	return nil
}

func (r *CurlyRule) checkAlways(ctx *lint.WalkContext, node, body *tsast.Node, ignoreSameLine bool) {
	if body.Kind == tsast.KindStatementBlock {
		return
	}
	// "else if" chains are checked on the inner if statement.
	if node.Kind == tsast.KindElseClause && body.Kind == tsast.KindIfStatement {
		return
	}
	lines := ctx.File.Lines
	if ignoreSameLine && lines.LineOf(node.Start) == lines.LineOf(body.End) {
		return
	}

	ctx.AddFailureBuilder(node.Start, body.End, CurlyMissing(curlyKeyword(node))).
		Insert(body.Start, "{ ").
		Insert(body.End, " }").
		Report()
}

func (r *CurlyRule) checkAsNeeded(ctx *lint.WalkContext, node, block *tsast.Node) {
	if block.Kind != tsast.KindStatementBlock {
		return
	}
	statements := block.NamedChildren()
	if len(statements) != 1 {
		return
	}
	statement := statements[0]
	if isDeclarationStatement(statement) {
		return
	}
	// Removing the braces would attach a following else to the inner if.
	if node.Kind == tsast.KindIfStatement && node.ChildByField("alternative") != nil &&
		statement.Kind == tsast.KindIfStatement && statement.ChildByField("alternative") == nil {
		return
	}

	open := block.FirstChild
	closing := block.LastChild
	b := ctx.AddFailureBuilderAtNode(open, CurlyAsNeeded)
	if block.ChildOfKind(tsast.KindComment) == nil && closing != nil && closing.Kind == "}" && terminated(ctx, statement) {
		b.Replace(open.Start, statement.Start, leadingSeparator(ctx, open)).
			Delete(statement.End, closing.End)
	}
	b.Report()
}

// terminated reports whether a statement ends in ";" or "}", so that it
// can be unwrapped without relying on the closing brace for ASI.
func terminated(ctx *lint.WalkContext, statement *tsast.Node) bool {
	if statement.Width() == 0 {
		return false
	}
	last := ctx.File.Content[statement.End-1]
	return last == ';' || last == '}'
}

// leadingSeparator keeps a space when the brace is glued to a keyword
// such as "else{".
func leadingSeparator(ctx *lint.WalkContext, open *tsast.Node) string {
	if open.Start == 0 {
		return ""
	}
	c := ctx.File.Content[open.Start-1]
	if c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
		return " "
	}
	return ""
}

// statementBody returns the governed body of a control statement.
func statementBody(node *tsast.Node) *tsast.Node {
	switch node.Kind {
	case tsast.KindIfStatement:
		return node.ChildByField("consequence")
	case tsast.KindElseClause:
		named := node.NamedChildren()
		if len(named) == 0 {
			return nil
		}
		return named[0]
	default:
		return node.ChildByField("body")
	}
}

func curlyKeyword(node *tsast.Node) string {
	switch node.Kind {
	case tsast.KindIfStatement:
		return "if"
	case tsast.KindElseClause:
		return "else"
	case tsast.KindForStatement, tsast.KindForInStatement:
		return "for"
	case tsast.KindWhileStatement:
		return "while"
	case tsast.KindDoStatement:
		return "do"
	}
	return string(node.Kind)
}

// isDeclarationStatement reports statements that are not allowed as an
// unbraced body.
func isDeclarationStatement(n *tsast.Node) bool {
	switch n.Kind {
	case tsast.KindLexicalDeclaration, tsast.KindFunctionDeclaration, tsast.KindGeneratorDeclaration,
		tsast.KindClassDeclaration, tsast.KindAbstractClass, tsast.KindInterface, tsast.KindTypeAlias, tsast.KindEnum:
		return true
	}
	return false
}
