package fixer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpfix/pkg/config"
	"github.com/yaklabco/phpfix/pkg/fix"
	"github.com/yaklabco/phpfix/pkg/fsutil"
)

func newTestFixer(t *testing.T, root string, registry *Registry) *Fixer {
	t.Helper()

	cfg := config.New()
	cfg.Root = root

	f, err := New(cfg, registry, nil)
	require.NoError(t, err)
	return f
}

func builtinRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewUnusedUseHandler(nil))
	return r
}

func writeProjectFile(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readProjectFile(t *testing.T, root, rel string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(content)
}

func unusedUseIssue(path string, line int, fqn string) Issue {
	return Issue{
		Check: CheckUnusedUse,
		Path:  path,
		Line:  line,
		Args:  []string{filepath.Base(fqn), fqn},
	}
}

func TestFixerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("applies fixes and writes files", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "src/a.php", "<?php\nuse Foo\\Bar;\necho 1;\n")
		writeProjectFile(t, root, "src/b.php", "<?php\nuse Baz\\Qux;\necho 2;\n")

		f := newTestFixer(t, root, builtinRegistry())
		result, err := f.Run(ctx, []Issue{
			unusedUseIssue("src/a.php", 2, "Foo\\Bar"),
			unusedUseIssue("src/b.php", 2, "Baz\\Qux"),
		}, Options{})
		require.NoError(t, err)

		require.Len(t, result.Files, 2)
		for _, outcome := range result.Files {
			assert.Equal(t, StateApplied, outcome.State, outcome.Path)
			assert.True(t, outcome.Written, outcome.Path)
			assert.Equal(t, 1, outcome.EditsApplied, outcome.Path)
		}
		assert.Equal(t, 2, result.Stats.FilesFixed)
		assert.False(t, result.HasFailures())

		assert.Equal(t, "<?php\necho 1;\n", readProjectFile(t, root, "src/a.php"))
		assert.Equal(t, "<?php\necho 2;\n", readProjectFile(t, root, "src/b.php"))
	})

	t.Run("outcomes follow first-seen issue order", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "c.php", "<?php\nuse A\\B;\n")
		writeProjectFile(t, root, "a.php", "<?php\nuse C\\D;\n")
		writeProjectFile(t, root, "b.php", "<?php\nuse E\\F;\n")

		f := newTestFixer(t, root, builtinRegistry())
		result, err := f.Run(ctx, []Issue{
			unusedUseIssue("c.php", 2, "A\\B"),
			unusedUseIssue("a.php", 2, "C\\D"),
			unusedUseIssue("b.php", 2, "E\\F"),
		}, Options{Jobs: 3})
		require.NoError(t, err)

		require.Len(t, result.Files, 3)
		assert.Equal(t, "c.php", result.Files[0].Path)
		assert.Equal(t, "a.php", result.Files[1].Path)
		assert.Equal(t, "b.php", result.Files[2].Path)
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "a.php", "<?php\nuse Foo\\Bar;\necho 1;\n")
		issues := []Issue{unusedUseIssue("a.php", 2, "Foo\\Bar")}

		f := newTestFixer(t, root, builtinRegistry())
		first, err := f.Run(ctx, issues, Options{})
		require.NoError(t, err)
		require.Equal(t, StateApplied, first.Files[0].State)

		second, err := f.Run(ctx, issues, Options{})
		require.NoError(t, err)
		require.Len(t, second.Files, 1)
		assert.Equal(t, StateNoChange, second.Files[0].State)
		assert.False(t, second.Files[0].Written)
		assert.Equal(t, "<?php\necho 1;\n", readProjectFile(t, root, "a.php"))
	})

	t.Run("unmatched issue leaves file byte-identical", func(t *testing.T) {
		root := t.TempDir()
		content := "<?php\nuse Foo\\Bar;\necho 1;\n"
		path := writeProjectFile(t, root, "a.php", content)
		stat, err := os.Stat(path)
		require.NoError(t, err)

		f := newTestFixer(t, root, builtinRegistry())
		result, err := f.Run(ctx, []Issue{unusedUseIssue("a.php", 2, "Wrong\\Name")}, Options{})
		require.NoError(t, err)

		require.Len(t, result.Files, 1)
		assert.Equal(t, StateNoChange, result.Files[0].State)
		assert.Equal(t, content, readProjectFile(t, root, "a.php"))

		after, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, stat.ModTime(), after.ModTime())
	})

	t.Run("conflict leaves its file untouched, others still fixed", func(t *testing.T) {
		root := t.TempDir()
		conflicted := "<?php\nuse Foo\\Bar;\n"
		writeProjectFile(t, root, "bad.php", conflicted)
		writeProjectFile(t, root, "good.php", "<?php\nuse Baz\\Qux;\n")

		registry := builtinRegistry()
		registry.Register(&stubHandler{
			checks: []CheckName{"overlapping"},
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 10},
				{StartOffset: 5, EndOffset: 15},
			},
			fixed: true,
		})

		f := newTestFixer(t, root, registry)
		result, err := f.Run(ctx, []Issue{
			{Check: "overlapping", Path: "bad.php", Line: 1},
			unusedUseIssue("good.php", 2, "Baz\\Qux"),
		}, Options{})
		require.NoError(t, err)

		require.Len(t, result.Files, 2)
		assert.Equal(t, StateConflict, result.Files[0].State)
		assert.Equal(t, StateApplied, result.Files[1].State)
		assert.True(t, result.HasFailures())

		assert.Equal(t, conflicted, readProjectFile(t, root, "bad.php"))
		assert.Equal(t, "<?php\n", readProjectFile(t, root, "good.php"))
	})

	t.Run("dry run computes diffs without writing", func(t *testing.T) {
		root := t.TempDir()
		content := "<?php\nuse Foo\\Bar;\necho 1;\n"
		writeProjectFile(t, root, "a.php", content)

		f := newTestFixer(t, root, builtinRegistry())
		result, err := f.Run(ctx, []Issue{unusedUseIssue("a.php", 2, "Foo\\Bar")}, Options{DryRun: true})
		require.NoError(t, err)

		require.Len(t, result.Files, 1)
		outcome := result.Files[0]
		assert.Equal(t, StateApplied, outcome.State)
		assert.False(t, outcome.Written)
		require.True(t, outcome.Diff.HasChanges())
		assert.Contains(t, outcome.Diff.String(), "-use Foo\\Bar;")

		assert.Equal(t, content, readProjectFile(t, root, "a.php"))
	})

	t.Run("backup keeps the pre-rewrite content", func(t *testing.T) {
		root := t.TempDir()
		content := "<?php\nuse Foo\\Bar;\necho 1;\n"
		path := writeProjectFile(t, root, "a.php", content)

		f := newTestFixer(t, root, builtinRegistry())
		result, err := f.Run(ctx, []Issue{unusedUseIssue("a.php", 2, "Foo\\Bar")}, Options{
			Backup: fsutil.BackupConfig{Enabled: true},
		})
		require.NoError(t, err)

		require.Len(t, result.Files, 1)
		assert.True(t, result.Files[0].BackupCreated)

		backup, err := os.ReadFile(fsutil.BackupPath(path))
		require.NoError(t, err)
		assert.Equal(t, content, string(backup))
		assert.Equal(t, "<?php\necho 1;\n", readProjectFile(t, root, "a.php"))
	})

	t.Run("missing file is a load error", func(t *testing.T) {
		root := t.TempDir()

		f := newTestFixer(t, root, builtinRegistry())
		result, err := f.Run(ctx, []Issue{unusedUseIssue("absent.php", 2, "Foo\\Bar")}, Options{})
		require.NoError(t, err)

		require.Len(t, result.Files, 1)
		assert.Equal(t, StateLoadError, result.Files[0].State)
		assert.Error(t, result.Files[0].Err)
		assert.True(t, result.HasFailures())
	})

	t.Run("non-php file is skipped", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "notes.txt", "use Foo\\Bar;\n")

		f := newTestFixer(t, root, builtinRegistry())
		result, err := f.Run(ctx, []Issue{unusedUseIssue("notes.txt", 1, "Foo\\Bar")}, Options{})
		require.NoError(t, err)

		require.Len(t, result.Files, 1)
		assert.Equal(t, StateSkipped, result.Files[0].State)
		assert.Equal(t, "use Foo\\Bar;\n", readProjectFile(t, root, "notes.txt"))
	})

	t.Run("unknown check is ignored", func(t *testing.T) {
		root := t.TempDir()
		content := "<?php\nuse Foo\\Bar;\n"
		writeProjectFile(t, root, "a.php", content)

		f := newTestFixer(t, root, builtinRegistry())
		result, err := f.Run(ctx, []Issue{
			{Check: "neverHeardOfIt", Path: "a.php", Line: 2, Args: []string{"Bar", "Foo\\Bar"}},
		}, Options{})
		require.NoError(t, err)

		require.Len(t, result.Files, 1)
		assert.Equal(t, StateNoChange, result.Files[0].State)
		assert.Equal(t, content, readProjectFile(t, root, "a.php"))
	})

	t.Run("no issues", func(t *testing.T) {
		f := newTestFixer(t, t.TempDir(), builtinRegistry())
		result, err := f.Run(ctx, nil, Options{})
		require.NoError(t, err)
		assert.Empty(t, result.Files)
		assert.False(t, result.HasFailures())
	})

	t.Run("cancelled context", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "a.php", "<?php\nuse Foo\\Bar;\n")

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		f := newTestFixer(t, root, builtinRegistry())
		_, err := f.Run(cancelled, []Issue{unusedUseIssue("a.php", 2, "Foo\\Bar")}, Options{})
		assert.Error(t, err)
	})
}

func TestFixerWriteGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("file changed on disk between read and write", func(t *testing.T) {
		root := t.TempDir()
		path := writeProjectFile(t, root, "a.php", "<?php\nuse Foo\\Bar;\necho 1;\n")

		f := newTestFixer(t, root, builtinRegistry())

		// Warm the cache, then change the file behind the fixer's back.
		_, err := f.cache.GetOrRead(ctx, path)
		require.NoError(t, err)
		changed := "<?php\nuse Foo\\Bar;\necho 2;\n"
		require.NoError(t, os.WriteFile(path, []byte(changed), 0o644))

		result, err := f.Run(ctx, []Issue{unusedUseIssue("a.php", 2, "Foo\\Bar")}, Options{})
		require.NoError(t, err)

		require.Len(t, result.Files, 1)
		assert.Equal(t, StateSkipped, result.Files[0].State)
		assert.Equal(t, "changed on disk", result.Files[0].Reason)
		assert.Equal(t, changed, readProjectFile(t, root, "a.php"))
	})

	t.Run("file deleted between read and write", func(t *testing.T) {
		root := t.TempDir()
		path := writeProjectFile(t, root, "a.php", "<?php\nuse Foo\\Bar;\necho 1;\n")

		f := newTestFixer(t, root, builtinRegistry())
		_, err := f.cache.GetOrRead(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		result, err := f.Run(ctx, []Issue{unusedUseIssue("a.php", 2, "Foo\\Bar")}, Options{})
		require.NoError(t, err)

		require.Len(t, result.Files, 1)
		assert.Equal(t, StateSkipped, result.Files[0].State)
		assert.Equal(t, "target vanished before write", result.Files[0].Reason)
	})
}

func TestGroupByFile(t *testing.T) {
	issues := []Issue{
		{Check: CheckUnusedUse, Path: "b.php", Line: 2},
		{Check: CheckUnusedUse, Path: "a.php", Line: 3},
		{Check: CheckUnusedUse, Path: "b.php", Line: 7},
	}

	byFile, order := groupByFile(issues)

	assert.Equal(t, []string{"b.php", "a.php"}, order)
	assert.Len(t, byFile["b.php"], 2)
	assert.Len(t, byFile["a.php"], 1)
	assert.Equal(t, 2, byFile["b.php"][0].Line)
	assert.Equal(t, 7, byFile["b.php"][1].Line)
}
