package lint

import (
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// FailureBuilder helps construct a failure with a multi-part fix.
type FailureBuilder struct {
	ctx     *WalkContext
	start   int
	end     int
	message string
	fix     *fix.Builder
}

// AddFailureBuilder starts building a failure over [start, end).
// Nothing is reported until Report is called.
func (c *WalkContext) AddFailureBuilder(start, end int, message string) *FailureBuilder {
	return &FailureBuilder{ctx: c, start: start, end: end, message: message, fix: fix.NewBuilder()}
}

// AddFailureBuilderAtNode starts building a failure covering node.
func (c *WalkContext) AddFailureBuilderAtNode(node *tsast.Node, message string) *FailureBuilder {
	c.checkGeneration(node)
	return c.AddFailureBuilder(node.Start, node.End, message)
}

// Replace adds a replacement of [start, end) to the fix.
func (b *FailureBuilder) Replace(start, end int, text string) *FailureBuilder {
	b.fix.ReplaceRange(start, end, text)
	return b
}

// ReplaceNode adds a replacement of node's text to the fix.
func (b *FailureBuilder) ReplaceNode(node *tsast.Node, text string) *FailureBuilder {
	b.ctx.checkGeneration(node)
	return b.Replace(node.Start, node.End, text)
}

// Insert adds an insertion at offset to the fix.
func (b *FailureBuilder) Insert(offset int, text string) *FailureBuilder {
	b.fix.Insert(offset, text)
	return b
}

// Delete adds a deletion of [start, end) to the fix.
func (b *FailureBuilder) Delete(start, end int) *FailureBuilder {
	b.fix.Delete(start, end)
	return b
}

// DeleteNode adds a deletion of node's text to the fix.
func (b *FailureBuilder) DeleteNode(node *tsast.Node) *FailureBuilder {
	b.ctx.checkGeneration(node)
	return b.Delete(node.Start, node.End)
}

// Report adds the failure to the context.
func (b *FailureBuilder) Report() {
	b.ctx.add(b.start, b.end, b.message, b.fix.Fix())
}
