package phpast

import (
	"iter"

	sitter "github.com/smacker/go-tree-sitter"
)

// NodesAtLine returns the descendant nodes of the snapshot root whose start
// line equals line, in document (pre-order) order.
//
// Start offsets are non-decreasing in pre-order, so the traversal skips
// nodes starting before the target line and stops outright at the first
// node starting past it. Stopping, rather than skipping, is what makes the
// downstream "first candidate wins" scan correct.
//
// The sequence is lazy and single-pass; callers may abandon it after any
// element.
func (f *FileSnapshot) NodesAtLine(line int) iter.Seq[*sitter.Node] {
	return func(yield func(*sitter.Node) bool) {
		if f.Root == nil || line < 1 {
			return
		}
		for i := 0; i < int(f.Root.ChildCount()); i++ {
			if !f.yieldAtLine(f.Root.Child(i), line, yield) {
				return
			}
		}
	}
}

// yieldAtLine walks the subtree rooted at node.
// Returns false once the target line has been exceeded or the consumer
// stopped; the whole traversal ends at that point.
func (f *FileSnapshot) yieldAtLine(node *sitter.Node, line int, yield func(*sitter.Node) bool) bool {
	nodeLine := f.StartLine(node)
	if nodeLine > line {
		return false
	}
	if nodeLine == line && !yield(node) {
		return false
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if !f.yieldAtLine(node.Child(i), line, yield) {
			return false
		}
	}
	return true
}
