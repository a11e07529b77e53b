package rules

import (
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// NoDebuggerMessage is reported for debugger statements.
const NoDebuggerMessage = "Use of debugger statements is forbidden"

// NoDebuggerRule disallows debugger statements.
type NoDebuggerRule struct {
	lint.BaseRule
}

// NewNoDebuggerRule creates the no-debugger rule.
func NewNoDebuggerRule() *NoDebuggerRule {
	return &NoDebuggerRule{
		BaseRule: lint.NewBaseRule(lint.Metadata{
			Name:        "no-debugger",
			Description: "Disallows `debugger` statements.",
			Rationale:   "In general, `debugger` statements aren't appropriate for production code.",
			Category:    lint.CategoryFunctionality,
			HasFix:      true,
		}),
	}
}

// Apply reports each debugger statement. The fix removes the statement,
// and its whole line when nothing else is on it.
func (r *NoDebuggerRule) Apply(ctx *lint.WalkContext) error {
	for _, stmt := range ctx.NodesOfKind(tsast.KindDebuggerStatement) {
		if !removableStatement(stmt) {
			ctx.AddFailureAtNode(stmt, NoDebuggerMessage)
			continue
		}
		start, end := statementLineExtent(ctx, stmt)
		ctx.AddFailureAtNode(stmt, NoDebuggerMessage, fix.DeleteFromTo(start, end))
	}
	return nil
}

// removableStatement reports whether deleting stmt leaves valid code: the
// body of an if or loop without braces needs a statement.
func removableStatement(stmt *tsast.Node) bool {
	parent := stmt.Parent
	if parent == nil {
		return true
	}
	switch parent.Kind {
	case tsast.KindProgram, tsast.KindStatementBlock, "switch_case", "switch_default":
		return true
	}
	return false
}

// statementLineExtent returns the range to delete for stmt: its own line
// including the line break when it stands alone. On a shared line the
// blanks after the statement go with it, or the blanks before it when it
// ends the line.
func statementLineExtent(ctx *lint.WalkContext, stmt *tsast.Node) (int, int) {
	lines := ctx.File.Lines
	line := lines.LineOf(stmt.Start)
	if lines.LineOf(stmt.End) != line {
		return stmt.Start, stmt.End
	}
	info := lines.Line(line)
	content := ctx.File.Content

	start := stmt.Start
	for start > info.StartOffset && isBlank(content[start-1]) {
		start--
	}
	end := stmt.End
	for end < info.BreakOffset && isBlank(content[end]) {
		end++
	}

	switch {
	case start == info.StartOffset && end == info.BreakOffset:
		return info.StartOffset, info.EndOffset
	case end == info.BreakOffset:
		return start, end
	default:
		return stmt.Start, end
	}
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}
