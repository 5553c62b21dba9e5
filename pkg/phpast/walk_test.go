package phpast

import (
	"errors"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	snap := parseSnippet(t, "<?php\nuse Foo\\Bar;\necho 1;\n")

	t.Run("visits root first", func(t *testing.T) {
		var first string
		err := Walk(snap.Root, func(n *sitter.Node) error {
			if first == "" {
				first = n.Type()
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "program", first)
	})

	t.Run("error stops the walk", func(t *testing.T) {
		boom := errors.New("boom")
		visited := 0
		err := Walk(snap.Root, func(n *sitter.Node) error {
			visited++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, visited)
	})

	t.Run("nil root", func(t *testing.T) {
		assert.NoError(t, Walk(nil, func(n *sitter.Node) error { return nil }))
	})
}

func TestFindByType(t *testing.T) {
	snap := parseSnippet(t, "<?php\nuse A\\B;\nuse C\\D;\n")

	decls := FindByType(snap.Root, TypeUseDeclaration)
	require.Len(t, decls, 2)

	// Document order.
	assert.Less(t, decls[0].StartByte(), decls[1].StartByte())
	assert.Empty(t, FindByType(snap.Root, "no_such_type"))
}

func TestFindFirst(t *testing.T) {
	snap := parseSnippet(t, "<?php\nuse A\\B;\nuse C\\D;\n")

	first := FindFirst(snap.Root, func(n *sitter.Node) bool {
		return n.Type() == TypeUseDeclaration
	})
	require.NotNil(t, first)
	assert.Contains(t, snap.NodeText(first), "A\\B")

	missing := FindFirst(snap.Root, func(n *sitter.Node) bool { return false })
	assert.Nil(t, missing)
}
