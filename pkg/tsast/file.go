// Package tsast provides the immutable syntax tree shared by every rule
// during one lint pass, together with the offset/position model.
package tsast

import (
	"sync/atomic"
)

// Dialect selects the grammar used to parse a file.
type Dialect string

// Supported dialects.
const (
	DialectTS  Dialect = "typescript"
	DialectTSX Dialect = "tsx"
	DialectJS  Dialect = "javascript"
	DialectJSX Dialect = "jsx"
)

// IsTypeScript reports whether the dialect carries TypeScript syntax.
func (d Dialect) IsTypeScript() bool {
	return d == DialectTS || d == DialectTSX
}

var generations atomic.Uint64

// NextGeneration returns a fresh, process-wide unique parse generation.
func NextGeneration() uint64 {
	return generations.Add(1)
}

// SyntaxError is an unrecoverable parse problem.
type SyntaxError struct {
	Offset  int
	Message string
}

// SourceFile is the immutable parse of one file's text.
type SourceFile struct {
	// Path is the file path the content was read from.
	Path string

	// Content is a private copy of the parsed text.
	Content []byte

	// Lines maps offsets to positions.
	Lines *LineMap

	// Root is the program node.
	Root *Node

	// Generation identifies this parse. Every parse gets a new value.
	Generation uint64

	// Dialect is the grammar the file was parsed with.
	Dialect Dialect

	// SyntaxErrors lists unrecoverable parse errors. Rules are not run
	// against files that have any.
	SyntaxErrors []SyntaxError
}

// NewSourceFile creates an empty file shell with a fresh generation and
// a root node spanning the content. Parsers populate the tree under Root.
func NewSourceFile(path string, content []byte, dialect Dialect) *SourceFile {
	owned := make([]byte, len(content))
	copy(owned, content)

	file := &SourceFile{
		Path:       path,
		Content:    owned,
		Lines:      NewLineMap(owned),
		Generation: NextGeneration(),
		Dialect:    dialect,
	}
	file.Root = &Node{Kind: KindProgram, Start: 0, End: len(owned), Named: true, File: file}
	return file
}

// Text returns the file content as a string.
func (f *SourceFile) Text() string {
	return string(f.Content)
}

// Len returns the content length in bytes.
func (f *SourceFile) Len() int {
	return len(f.Content)
}

// HasSyntaxErrors reports whether parsing failed.
func (f *SourceFile) HasSyntaxErrors() bool {
	return len(f.SyntaxErrors) > 0
}

// LineAndCharacterOf converts an offset to a 0-based position.
func (f *SourceFile) LineAndCharacterOf(offset int) LineAndCharacter {
	return f.Lines.LineAndCharacterOf(offset)
}

// NodeAt returns the deepest node whose range contains offset.
func (f *SourceFile) NodeAt(offset int) *Node {
	if f.Root == nil || !f.Root.Range().Contains(offset) {
		return nil
	}
	node := f.Root
	for {
		var next *Node
		for child := node.FirstChild; child != nil; child = child.Next {
			if child.Range().Contains(offset) {
				next = child
				break
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
}

// RangesOfKind returns the ranges of all nodes of the given kinds, in document order.
func (f *SourceFile) RangesOfKind(kinds ...Kind) []TextRange {
	var ranges []TextRange
	Inspect(f.Root, func(n *Node) bool {
		for _, k := range kinds {
			if n.Kind == k {
				ranges = append(ranges, n.Range())
				return false
			}
		}
		return true
	})
	return ranges
}
