// Package fix provides text edit types and the conflict-free merge and
// application logic behind phpfix's rewrites.
//
// Edits are half-open byte ranges into the original (pre-edit) file content.
// The built-in fixers emit pure deletions (empty NewText), but application
// supports replacements as well.
package fix

// TextEdit represents a single text replacement in a file.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text. Empty means pure deletion.
	NewText string
}

// IsDeletion reports whether the edit removes text without inserting any.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// EditBuilder accumulates text edits for one file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{Edits: make([]TextEdit, 0)}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}
