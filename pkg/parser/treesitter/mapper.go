package treesitter

import (
	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/gotslint/pkg/tsast"
)

// mapper copies a tree-sitter tree into tsast nodes so the tree outlives
// the tree-sitter handles.
type mapper struct {
	file *tsast.SourceFile

	// firstError is the first ERROR or missing node in document order.
	firstError *tsast.Node
}

func (m *mapper) mapChildren(src *sitter.Node, dst *tsast.Node) error {
	count := int(src.ChildCount())
	for idx := range count {
		child := src.Child(idx)
		if child == nil {
			continue
		}

		node, err := m.newNode(child)
		if err != nil {
			return err
		}
		node.Field = src.FieldNameForChild(idx)
		dst.AppendChild(node)

		if m.firstError == nil && (child.IsError() || child.IsMissing()) {
			m.firstError = node
		}

		if err := m.mapChildren(child, node); err != nil {
			return err
		}
	}
	return nil
}

func (m *mapper) newNode(n *sitter.Node) (*tsast.Node, error) {
	start, err := safecast.Conv[int](n.StartByte())
	if err != nil {
		return nil, err
	}
	end, err := safecast.Conv[int](n.EndByte())
	if err != nil {
		return nil, err
	}

	return &tsast.Node{
		Kind:    tsast.Kind(n.Type()),
		Start:   start,
		End:     end,
		Named:   n.IsNamed(),
		Missing: n.IsMissing(),
	}, nil
}
