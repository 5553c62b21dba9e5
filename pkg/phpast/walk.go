package phpast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *sitter.Node) error

// Walk performs a pre-order traversal of the tree starting at root.
// If walkFunc returns a non-nil error, the walk stops immediately and
// returns that error.
func Walk(root *sitter.Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for i := 0; i < int(root.ChildCount()); i++ {
		if err := Walk(root.Child(i), walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate, in document order.
func FindAll(root *sitter.Node, predicate func(n *sitter.Node) bool) []*sitter.Node {
	var result []*sitter.Node

	//nolint:errcheck // Walk only returns nil errors in this usage
	Walk(root, func(node *sitter.Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root *sitter.Node, predicate func(n *sitter.Node) bool) *sitter.Node {
	var found *sitter.Node

	//nolint:errcheck // errStopWalk is expected and intentionally ignored
	Walk(root, func(node *sitter.Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByType returns all nodes of the given tree-sitter type.
func FindByType(root *sitter.Node, nodeType string) []*sitter.Node {
	return FindAll(root, func(n *sitter.Node) bool {
		return n.Type() == nodeType
	})
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
