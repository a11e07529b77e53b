package lint

import (
	"context"

	"github.com/yaklabco/gotslint/pkg/tsast"
)

// Parser parses source text into a SourceFile.
//
// The lint package defines this interface in the consumer package.
// Implementations (parser/treesitter) provide the grammar.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - side-effect free (no I/O, no global state mutation apart from the
//     generation counter).
type Parser interface {
	// Parse converts raw bytes into a SourceFile with a fresh generation.
	// Syntax errors are reported in SourceFile.SyntaxErrors, not as an
	// error; an error means the file could not be parsed at all.
	//
	// content must not be mutated by the implementation.
	Parse(ctx context.Context, path string, content []byte) (*tsast.SourceFile, error)
}
