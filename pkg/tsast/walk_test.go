package tsast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/tsast"
)

// buildTree creates `a = [1];` with a hand-built tree.
func buildTree() *tsast.SourceFile {
	file := tsast.NewSourceFile("test.ts", []byte("a = [1];"), tsast.DialectTS)
	stmt := &tsast.Node{Kind: tsast.KindExpressionStatement, Start: 0, End: 8, Named: true}
	file.Root.AppendChild(stmt)
	assign := &tsast.Node{Kind: tsast.KindAssignmentExpression, Start: 0, End: 7, Named: true}
	stmt.AppendChild(assign)
	stmt.AppendChild(&tsast.Node{Kind: ";", Start: 7, End: 8})
	assign.AppendChild(&tsast.Node{Kind: tsast.KindIdentifier, Start: 0, End: 1, Named: true, Field: "left"})
	assign.AppendChild(&tsast.Node{Kind: "=", Start: 2, End: 3})
	arr := &tsast.Node{Kind: tsast.KindArray, Start: 4, End: 7, Named: true, Field: "right"}
	assign.AppendChild(arr)
	arr.AppendChild(&tsast.Node{Kind: "[", Start: 4, End: 5})
	arr.AppendChild(&tsast.Node{Kind: "number", Start: 5, End: 6, Named: true})
	arr.AppendChild(&tsast.Node{Kind: "]", Start: 6, End: 7})
	return file
}

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	file := buildTree()
	var kinds []tsast.Kind
	err := tsast.Walk(file.Root, func(n *tsast.Node) error {
		kinds = append(kinds, n.Kind)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []tsast.Kind{
		tsast.KindProgram, tsast.KindExpressionStatement, tsast.KindAssignmentExpression,
		tsast.KindIdentifier, "=", tsast.KindArray, "[", "number", "]", ";",
	}, kinds)
}

func TestWalk_SkipChildren(t *testing.T) {
	t.Parallel()

	file := buildTree()
	count := 0
	err := tsast.Walk(file.Root, func(n *tsast.Node) error {
		count++
		if n.Kind == tsast.KindArray {
			return tsast.SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	file := buildTree()
	stop := errors.New("stop")
	err := tsast.Walk(file.Root, func(n *tsast.Node) error {
		if n.Kind == tsast.KindIdentifier {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
}

func TestNode_Navigation(t *testing.T) {
	t.Parallel()

	file := buildTree()
	arr := tsast.FindFirst(file.Root, func(n *tsast.Node) bool { return n.Kind == tsast.KindArray })
	require.NotNil(t, arr)

	assert.Equal(t, "[1]", arr.Text())
	assert.Equal(t, file.Generation, arr.Generation())
	assert.Equal(t, "right", arr.Field)
	assert.Same(t, arr, arr.Parent.ChildByField("right"))
	assert.Len(t, arr.NamedChildren(), 1)
	assert.Same(t, file.Root, arr.Ancestor(tsast.KindProgram))
	assert.Equal(t, tsast.Kind("number"), file.NodeAt(5).Kind)
	assert.Equal(t, []tsast.TextRange{{Pos: 4, End: 7}}, file.RangesOfKind(tsast.KindArray))
}

func TestSourceFile_GenerationsAreUnique(t *testing.T) {
	t.Parallel()

	a := tsast.NewSourceFile("a.ts", []byte("x"), tsast.DialectTS)
	b := tsast.NewSourceFile("a.ts", []byte("x"), tsast.DialectTS)
	assert.NotEqual(t, a.Generation, b.Generation)
}
