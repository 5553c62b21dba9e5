package fsutil

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns content and fingerprint", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.php")
		content := []byte("<?php\necho 1;\n")
		require.NoError(t, os.WriteFile(path, content, 0o644))

		got, info, err := ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		require.NotNil(t, info)
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(content)), info.Size)
		assert.Equal(t, sha256.Sum256(content), info.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := ReadFile(ctx, filepath.Join(t.TempDir(), "nope.php"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, _, err := ReadFile(ctx, t.TempDir())
		assert.ErrorIs(t, err, ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := ReadFile(cancelled, "anything")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.php")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, Exists(path))
	assert.False(t, Exists(filepath.Join(dir, "nope.php")))
}

func TestCheckModified(t *testing.T) {
	ctx := context.Background()

	t.Run("unmodified", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.php")
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

		_, info, err := ReadFile(ctx, path)
		require.NoError(t, err)

		modified, err := CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("content change detected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.php")
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

		_, info, err := ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

		modified, err := CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("same content restored mtime counts as modified", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.php")
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

		_, info, err := ReadFile(ctx, path)
		require.NoError(t, err)

		// Same size and hash but a later mtime still counts.
		future := info.ModTime.Add(2 * time.Second)
		require.NoError(t, os.Chtimes(path, future, future))

		modified, err := CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted file counts as modified", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.php")
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

		_, info, err := ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		_, err := CheckModified(ctx, nil)
		assert.ErrorIs(t, err, ErrNilFileInfo)
	})
}
