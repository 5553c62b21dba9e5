package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an edit whose range is not valid for the file.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes two overlapping edits.
// Overlapping edits cannot be applied; the whole file's edit set is discarded.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting edits: [%d:%d] overlaps [%d:%d]",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

// ValidateEdits checks that every edit's range lies within a file of the
// given length. Returns the first violation found.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, ties broken by end offset.
// The ordering is total, so repeated runs on identical input produce
// identical results.
func SortEdits(edits []TextEdit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].StartOffset != edits[j].StartOffset {
			return edits[i].StartOffset < edits[j].StartOffset
		}
		return edits[i].EndOffset < edits[j].EndOffset
	})
}

// DetectConflict scans a sorted slice for overlap. Touching edits (one ends
// exactly where the next starts) are fine; any true overlap returns a
// *ConflictError.
func DetectConflict(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].StartOffset < edits[i-1].EndOffset {
			return &ConflictError{First: edits[i-1], Second: edits[i]}
		}
	}
	return nil
}

// PrepareEdits validates, sorts, and conflict-checks a set of edits collected
// across all fixers for one file. The input slice is not modified.
//
// On any conflict the error carries both offenders and the caller must treat
// the file as unfixable; there is no partial application.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)

	if err := DetectConflict(sorted); err != nil {
		return nil, err
	}

	return sorted, nil
}
