package treesitter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/parser/treesitter"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

func TestParse_BuildsTree(t *testing.T) {
	t.Parallel()

	src := []byte("const a = [1, 2];\nif (a) {\n  go();\n}\n")
	file, err := treesitter.New().Parse(context.Background(), "a.ts", src)
	require.NoError(t, err)

	assert.Equal(t, tsast.DialectTS, file.Dialect)
	assert.False(t, file.HasSyntaxErrors())
	assert.Equal(t, src, file.Content)
	assert.Equal(t, tsast.KindProgram, file.Root.Kind)

	arrays := tsast.FindByKind(file.Root, tsast.KindArray)
	require.Len(t, arrays, 1)
	assert.Equal(t, "[1, 2]", arrays[0].Text())

	ifs := tsast.FindByKind(file.Root, tsast.KindIfStatement)
	require.Len(t, ifs, 1)
	consequence := ifs[0].ChildByField("consequence")
	require.NotNil(t, consequence)
	assert.Equal(t, tsast.KindStatementBlock, consequence.Kind)

	err = tsast.Walk(file.Root, func(n *tsast.Node) error {
		assert.Same(t, file, n.File)
		if n.Parent != nil {
			assert.GreaterOrEqual(t, n.Start, n.Parent.Start)
			assert.LessOrEqual(t, n.End, n.Parent.End)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestParse_ContentIsCopied(t *testing.T) {
	t.Parallel()

	src := []byte("let x = 1;")
	file, err := treesitter.New().Parse(context.Background(), "a.ts", src)
	require.NoError(t, err)

	src[0] = 'X'
	assert.Equal(t, "let x = 1;", file.Text())
}

func TestParse_SyntaxError(t *testing.T) {
	t.Parallel()

	file, err := treesitter.New().Parse(context.Background(), "bad.ts", []byte("let = ;\nfunction (\n"))
	require.NoError(t, err)

	require.True(t, file.HasSyntaxErrors())
	assert.NotEmpty(t, file.SyntaxErrors[0].Message)
	assert.LessOrEqual(t, file.SyntaxErrors[0].Offset, file.Len())
}

func TestParse_TSX(t *testing.T) {
	t.Parallel()

	file, err := treesitter.New().Parse(context.Background(), "view.tsx", []byte("const v = <div>{x}</div>;\n"))
	require.NoError(t, err)
	assert.Equal(t, tsast.DialectTSX, file.Dialect)
	assert.False(t, file.HasSyntaxErrors())
}

func TestParse_ByteOrderMark(t *testing.T) {
	t.Parallel()

	file, err := treesitter.New().Parse(context.Background(), "bom.ts", []byte("\ufefflet a = 1;\n"))
	require.NoError(t, err)
	assert.False(t, file.HasSyntaxErrors())

	decl := tsast.FindByKind(file.Root, tsast.KindLexicalDeclaration)
	require.Len(t, decl, 1)
	assert.Equal(t, 3, decl[0].Start)
	assert.Equal(t, tsast.LineAndCharacter{Line: 0, Character: 0}, file.LineAndCharacterOf(decl[0].Start))
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := treesitter.New().Parse(ctx, "a.ts", []byte("let a;"))
	assert.ErrorIs(t, err, context.Canceled)
}
