package lint

import (
	"github.com/yaklabco/gotslint/pkg/tsast"
)

// NodeIndex holds the nodes of one SourceFile grouped by kind.
//
// The linter builds one index per pass and hands it to every rule, so a
// rule asking for all call expressions does not walk the tree again.
// Returned slices are shared and must not be mutated; copy before sorting
// or filtering in place.
//
// NodeIndex is not safe for concurrent use. Rules of one file run
// sequentially; files linted in parallel each get their own index.
type NodeIndex struct {
	file   *tsast.SourceFile
	byKind map[tsast.Kind][]*tsast.Node
	built  bool
}

// NewNodeIndex creates an index for file. It is populated lazily on the
// first query.
func NewNodeIndex(file *tsast.SourceFile) *NodeIndex {
	return &NodeIndex{file: file}
}

func (ni *NodeIndex) build() {
	if ni.built {
		return
	}
	ni.built = true
	ni.byKind = make(map[tsast.Kind][]*tsast.Node)
	if ni.file == nil || ni.file.Root == nil {
		return
	}
	tsast.Inspect(ni.file.Root, func(n *tsast.Node) bool {
		ni.byKind[n.Kind] = append(ni.byKind[n.Kind], n)
		return true
	})
}

// OfKind returns the nodes of the given kinds in document order.
func (ni *NodeIndex) OfKind(kinds ...tsast.Kind) []*tsast.Node {
	ni.build()
	if len(kinds) == 1 {
		return ni.byKind[kinds[0]]
	}
	want := make(map[tsast.Kind]bool, len(kinds))
	total := 0
	for _, k := range kinds {
		if !want[k] {
			want[k] = true
			total += len(ni.byKind[k])
		}
	}
	if total == 0 {
		return nil
	}
	// Merge keeps document order across kinds.
	out := make([]*tsast.Node, 0, total)
	tsast.Inspect(ni.file.Root, func(n *tsast.Node) bool {
		if want[n.Kind] {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Count returns how many nodes of kind the file has.
func (ni *NodeIndex) Count(kind tsast.Kind) int {
	ni.build()
	return len(ni.byKind[kind])
}
