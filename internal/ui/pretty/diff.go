package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/phpfix/pkg/fix"
)

// FormatDiff renders a unified diff with per-line styling.
func (s *Styles) FormatDiff(d *fix.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	b.WriteString(s.DiffHeader.Render(fmt.Sprintf("--- a/%s", path)) + "\n")
	b.WriteString(s.DiffHeader.Render(fmt.Sprintf("+++ b/%s", path)) + "\n")

	for _, hunk := range d.Hunks {
		b.WriteString(s.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)) + "\n")

		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				b.WriteString(s.DiffAdd.Render("+"+line.Content) + "\n")
			case fix.DiffLineRemove:
				b.WriteString(s.DiffRemove.Render("-"+line.Content) + "\n")
			default:
				b.WriteString(s.DiffContext.Render(" "+line.Content) + "\n")
			}
		}
	}

	return b.String()
}
