// Package treesitter provides a lint.Parser backed by the tree-sitter
// TypeScript and TSX grammars.
package treesitter

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/yaklabco/gotslint/pkg/langdetect"
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// ErrNilTree is returned when tree-sitter produced no tree.
var ErrNilTree = errors.New("tree-sitter returned no tree")

// Parser implements lint.Parser. It is safe for concurrent use: every call
// creates its own tree-sitter parser.
type Parser struct {
	// Dialect forces a grammar. Empty means detect from path and content.
	Dialect tsast.Dialect
}

// New creates a parser that detects the dialect per file.
func New() *Parser {
	return &Parser{}
}

// Parse converts source text into a SourceFile. Syntax errors do not make
// Parse fail: they are recorded in SourceFile.SyntaxErrors. An error is
// returned only when the context is cancelled or tree-sitter fails.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*tsast.SourceFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	dialect := p.Dialect
	if dialect == "" {
		dialect = langdetect.Dialect(path, content)
	}

	file := tsast.NewSourceFile(path, content, dialect)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(language(dialect))

	tree, err := parser.ParseCtx(ctx, nil, grammarInput(file.Content))
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse %s: %w", path, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNilTree)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNilTree)
	}

	m := &mapper{file: file}
	if err := m.mapChildren(root, file.Root); err != nil {
		return nil, fmt.Errorf("map syntax tree %s: %w", path, err)
	}

	if root.HasError() {
		file.SyntaxErrors = describeSyntaxErrors(file, m.firstError)
	}

	return file, nil
}

func language(d tsast.Dialect) *sitter.Language {
	switch d {
	case tsast.DialectTSX, tsast.DialectJSX:
		return tsx.GetLanguage()
	default:
		return typescript.GetLanguage()
	}
}

// grammarInput blanks a leading byte-order mark, which the grammars do not
// accept, without shifting any offsets.
func grammarInput(content []byte) []byte {
	if !bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}) {
		return content
	}
	input := bytes.Clone(content)
	copy(input, "   ")
	return input
}
