package fix_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/phpfix/pkg/fix"
)

func FuzzApplyEdits(f *testing.F) {
	// Add seed corpus: content plus one edit range and replacement.
	f.Add([]byte("hello world"), 0, 5, "")
	f.Add([]byte("hello world"), 6, 11, "there")
	f.Add([]byte("<?php\nuse Foo\\Bar;\n"), 6, 19, "")
	f.Add([]byte(""), 0, 0, "insert")
	f.Add([]byte("a"), 0, 1, "b")

	f.Fuzz(func(t *testing.T, content []byte, start, end int, newText string) {
		edits := []fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: newText}}

		prepared, err := fix.PrepareEdits(edits, len(content))
		if err != nil {
			// Invalid range; rejection is the correct outcome.
			return
		}

		got := fix.ApplyEdits(content, prepared)

		// Length must reflect exactly the edit's delta.
		wantLen := len(content) + len(newText) - (end - start)
		if len(got) != wantLen {
			t.Errorf("ApplyEdits length = %d, want %d", len(got), wantLen)
		}

		// The text outside the edited range must survive untouched.
		if !bytes.HasPrefix(got, content[:start]) {
			t.Error("prefix before edit was modified")
		}
		if !bytes.HasSuffix(got, content[end:]) {
			t.Error("suffix after edit was modified")
		}
	})
}

func FuzzGenerateDiff(f *testing.F) {
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("<?php\n"), []byte("<?php\n"))
	f.Add([]byte("<?php\nuse A;\necho 1;\n"), []byte("<?php\necho 1;\n"))
	f.Add([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	f.Add([]byte("line1\nline2\nline3\n"), []byte("line1\nline3\n"))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		diff := fix.GenerateDiff("test.php", original, modified)
		if diff == nil {
			return
		}

		if diff.Path != "test.php" {
			t.Errorf("Path = %q, want test.php", diff.Path)
		}
		if !diff.HasChanges() {
			t.Error("non-nil diff reports no changes")
		}

		_ = diff.String()

		for i, hunk := range diff.Hunks {
			if hunk.OriginalStart < 1 || hunk.ModifiedStart < 1 {
				t.Errorf("hunk %d: start positions must be 1-based, got -%d +%d",
					i, hunk.OriginalStart, hunk.ModifiedStart)
			}

			var origCount, modCount int
			for _, line := range hunk.Lines {
				if line.Kind != fix.DiffLineAdd {
					origCount++
				}
				if line.Kind != fix.DiffLineRemove {
					modCount++
				}
			}
			if origCount != hunk.OriginalCount {
				t.Errorf("hunk %d: OriginalCount = %d, lines say %d", i, hunk.OriginalCount, origCount)
			}
			if modCount != hunk.ModifiedCount {
				t.Errorf("hunk %d: ModifiedCount = %d, lines say %d", i, hunk.ModifiedCount, modCount)
			}
		}
	})
}
