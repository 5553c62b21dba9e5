// Package phpast provides the parsed-file representation for phpfix.
// It wraps tree-sitter's PHP grammar and exposes the narrow position and
// traversal queries the fix engine needs:
// - FileSnapshot: content, line index, and syntax-tree root for one file
// - StartLine: the 1-based line on which a node begins
// - NodesAtLine: document-order candidates starting on a given line
package phpast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// FileSnapshot is an immutable view of a PHP file at the moment it was parsed.
// The line index and the tree are always derived from the same Content bytes;
// a snapshot must never be reused for a different content version.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes, exactly as parsed.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the syntax-tree root node (program).
	Root *sitter.Node

	// tree keeps the parse tree alive for the lifetime of the snapshot.
	tree *sitter.Tree
}

// Close releases the underlying parse tree.
// The snapshot and any nodes obtained from it are invalid afterwards.
func (f *FileSnapshot) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
		f.Root = nil
	}
}

// StartLine returns the 1-based line on which node starts.
// Returns 0 for a nil node.
func (f *FileSnapshot) StartLine(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	line, _ := f.LineAt(int(node.StartByte()))
	return line
}

// NodeText returns the source text covered by node.
func (f *FileSnapshot) NodeText(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(f.Content)
}
