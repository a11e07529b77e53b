package tsast

import "errors"

// SkipChildren may be returned by a WalkFunc to skip the node's subtree.
var SkipChildren = errors.New("skip children") //nolint:errname,revive // mirrors filepath.SkipDir

var errStopWalk = errors.New("stop walk")

// WalkFunc is called for every node in pre-order.
// Return SkipChildren to skip the subtree, any other error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a depth-first pre-order traversal starting at root.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkWithLeave performs a traversal with enter and leave callbacks.
// Either callback may be nil. SkipChildren from enter skips the subtree
// and the matching leave call.
func WalkWithLeave(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			if errors.Is(err, SkipChildren) {
				return nil
			}
			return err
		}
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := WalkWithLeave(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		return leave(root)
	}
	return nil
}

// Inspect walks the tree and descends into a node's children only while fn returns true.
func Inspect(root *Node, fn func(n *Node) bool) {
	//nolint:errcheck // the callback never returns a terminating error
	Walk(root, func(n *Node) error {
		if !fn(n) {
			return SkipChildren
		}
		return nil
	})
}

// FindAll returns all nodes matching the predicate.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node
	Inspect(root, func(n *Node) bool {
		if predicate(n) {
			result = append(result, n)
		}
		return true
	})
	return result
}

// FindFirst returns the first node in pre-order matching the predicate.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck // errStopWalk is expected
	Walk(root, func(n *Node) error {
		if predicate(n) {
			found = n
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the given kinds.
func FindByKind(root *Node, kinds ...Kind) []*Node {
	return FindAll(root, func(n *Node) bool {
		for _, k := range kinds {
			if n.Kind == k {
				return true
			}
		}
		return false
	})
}
