package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/phpfix/pkg/fixer"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files fixed (7 edits), 1 conflict, 2 unchanged".
func (s *Styles) FormatSummaryOneLine(stats fixer.Stats) string {
	if stats.FilesTotal == 0 {
		return s.Dim.Render("No files to fix") + "\n"
	}

	if stats.FilesFixed == 0 && stats.FilesConflicted == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No fixes applied") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesTotal, plural(stats.FilesTotal))) + "\n"
	}

	var parts []string

	if stats.FilesFixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s fixed (%d edits)",
			stats.FilesFixed, plural(stats.FilesFixed), stats.EditsApplied)))
	}
	if stats.FilesConflicted > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d conflicted", stats.FilesConflicted)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesUnchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatOutcome formats one file outcome as a listing line.
func (s *Styles) FormatOutcome(outcome fixer.FileOutcome) string {
	label := outcome.State.String()
	if outcome.Reason != "" {
		label += " (" + outcome.Reason + ")"
	}

	var state string
	switch outcome.State {
	case fixer.StateApplied:
		state = s.Success.Render(label)
	case fixer.StateConflict, fixer.StateLoadError:
		state = s.Failure.Render(label)
	case fixer.StateSkipped:
		state = s.Warning.Render(label)
	default:
		state = s.Dim.Render(label)
	}

	return fmt.Sprintf("%s  %s\n", s.FilePath.Render(outcome.Path), state)
}

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}
