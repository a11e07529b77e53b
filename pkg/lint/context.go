package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// WalkContext is bound to one SourceFile, one rule, one options value and
// one severity. It is the only channel through which a rule reports.
//
// WalkContext stores context.Context as a field. It is a short-lived
// parameter object created per rule invocation, which keeps the Rule
// interface to a single method.
type WalkContext struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// File is the parsed file. All nodes passed back must belong to it.
	File *tsast.SourceFile

	// RuleName is stamped on every failure.
	RuleName string

	// Severity is stamped on every failure.
	Severity config.Severity

	options  any
	args     []any
	failures []*RuleFailure
	index    *NodeIndex
}

// NewWalkContext creates a context for running one rule over file.
// options is the decoded options value the rule reads with OptionsAs.
func NewWalkContext(ctx context.Context, file *tsast.SourceFile, ruleName string, options any) *WalkContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &WalkContext{
		Ctx:      ctx,
		File:     file,
		RuleName: ruleName,
		Severity: config.SeverityError,
		options:  options,
	}
}

// Options returns the decoded rule options.
func (c *WalkContext) Options() any {
	return c.options
}

// Args returns the raw positional arguments from the configuration.
func (c *WalkContext) Args() []any {
	return c.args
}

// OptionsAs returns the rule options as T. The loader always decodes
// options for rules that declare them, so a mismatch is a programming
// error and yields the zero value.
func OptionsAs[T any](c *WalkContext) T {
	v, _ := c.options.(T)
	return v
}

// Cancelled returns true if the context has been cancelled.
func (c *WalkContext) Cancelled() bool {
	select {
	case <-c.Ctx.Done():
		return true
	default:
		return false
	}
}

// Failures returns the failures reported so far, in report order.
func (c *WalkContext) Failures() []*RuleFailure {
	return c.failures
}

// Text returns the file text.
func (c *WalkContext) Text() string {
	return c.File.Text()
}

// AddFailure reports a problem over [start, end). The replacements, if
// any, form one atomic fix.
func (c *WalkContext) AddFailure(start, end int, message string, fixes ...fix.Replacement) {
	c.add(start, end, message, fix.Fix(fixes))
}

// AddFailureAt reports a problem over [start, start+width).
func (c *WalkContext) AddFailureAt(start, width int, message string, fixes ...fix.Replacement) {
	c.add(start, start+width, message, fix.Fix(fixes))
}

// AddFailureAtNode reports a problem covering node.
func (c *WalkContext) AddFailureAtNode(node *tsast.Node, message string, fixes ...fix.Replacement) {
	c.checkGeneration(node)
	c.add(node.Start, node.End, message, fix.Fix(fixes))
}

// AddFailureWithFix reports a problem with a fix built elsewhere.
func (c *WalkContext) AddFailureWithFix(start, end int, message string, f fix.Fix) {
	c.add(start, end, message, f)
}

func (c *WalkContext) add(start, end int, message string, f fix.Fix) {
	if start < 0 || end < start || end > c.File.Len() {
		panic(fmt.Sprintf("lint: rule %s reported invalid range [%d,%d) in file of length %d",
			c.RuleName, start, end, c.File.Len()))
	}
	if len(f) == 0 {
		f = nil
	}
	r := tsast.TextRange{Pos: start, End: end}
	c.failures = append(c.failures, newFailure(c.File, c.RuleName, c.Severity, r, message, f))
}

// Walk visits the file's tree depth-first in pre-order. Returning
// tsast.SkipChildren from fn skips the node's subtree.
func (c *WalkContext) Walk(fn tsast.WalkFunc) error {
	return tsast.Walk(c.File.Root, func(n *tsast.Node) error {
		if err := c.Ctx.Err(); err != nil {
			return err
		}
		return fn(n)
	})
}

// NodesOfKind returns all nodes of the given kinds in document order.
// The slice is shared with other rules of the same pass and must not be
// modified.
func (c *WalkContext) NodesOfKind(kinds ...tsast.Kind) []*tsast.Node {
	if c.index == nil {
		c.index = NewNodeIndex(c.File)
	}
	return c.index.OfKind(kinds...)
}

func (c *WalkContext) checkGeneration(node *tsast.Node) {
	if node.Generation() != c.File.Generation {
		panic(fmt.Sprintf("lint: node of generation %d used in walk context of generation %d",
			node.Generation(), c.File.Generation))
	}
}
