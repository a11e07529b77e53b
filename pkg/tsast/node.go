package tsast

// Node is an immutable syntax tree element. Nodes belong to exactly one
// SourceFile and are only valid for that file's generation.
type Node struct {
	// Kind is the grammar type of the node.
	Kind Kind

	// Start and End are the byte offsets of the node's text, half-open.
	Start int
	End   int

	// Named is false for anonymous tokens such as punctuation and keywords.
	Named bool

	// Field is the grammar field this node fills in its parent, if any.
	Field string

	// Missing is set on zero-width tokens the parser inserted to recover.
	Missing bool

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// File is a back-reference to the containing SourceFile.
	File *SourceFile
}

// Range returns the node's byte range.
func (n *Node) Range() TextRange {
	return TextRange{Pos: n.Start, End: n.End}
}

// Width returns the node's length in bytes.
func (n *Node) Width() int {
	return n.End - n.Start
}

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	if n.File == nil {
		return ""
	}
	return string(n.File.Content[n.Start:n.End])
}

// Generation returns the parse generation of the owning file.
func (n *Node) Generation() uint64 {
	if n.File == nil {
		return 0
	}
	return n.File.Generation
}

// IsToken reports whether the node has no children.
func (n *Node) IsToken() bool {
	return n.FirstChild == nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns all direct children, named and anonymous.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// NamedChildren returns the named direct children, skipping comments.
func (n *Node) NamedChildren() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Named && child.Kind != KindComment {
			children = append(children, child)
		}
	}
	return children
}

// ChildByField returns the first child filling the given grammar field.
func (n *Node) ChildByField(field string) *Node {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Field == field {
			return child
		}
	}
	return nil
}

// ChildOfKind returns the first direct child of the given kind.
func (n *Node) ChildOfKind(kind Kind) *Node {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// LastChildOfKind returns the last direct child of the given kind.
func (n *Node) LastChildOfKind(kind Kind) *Node {
	for child := n.LastChild; child != nil; child = child.Prev {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// Ancestor returns the nearest ancestor whose kind is one of kinds.
func (n *Node) Ancestor(kinds ...Kind) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		for _, k := range kinds {
			if p.Kind == k {
				return p
			}
		}
	}
	return nil
}

// NextNonComment returns the next sibling that is not a comment.
func (n *Node) NextNonComment() *Node {
	for s := n.Next; s != nil; s = s.Next {
		if s.Kind != KindComment {
			return s
		}
	}
	return nil
}

// PrevNonComment returns the previous sibling that is not a comment.
func (n *Node) PrevNonComment() *Node {
	for s := n.Prev; s != nil; s = s.Prev {
		if s.Kind != KindComment {
			return s
		}
	}
	return nil
}

// AppendChild links child as the last child of n. It is used by parsers
// while building a tree and must not be called on a published tree.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	child.File = n.File
	if n.LastChild == nil {
		n.FirstChild = child
		n.LastChild = child
		return
	}
	child.Prev = n.LastChild
	n.LastChild.Next = child
	n.LastChild = child
}
