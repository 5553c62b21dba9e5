package fix

import "bytes"

// ApplyEdits folds a prepared (sorted, non-overlapping) edit slice together
// with the unedited spans of content in one linear pass.
// Use PrepareEdits first; ApplyEdits assumes its postconditions.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	lastEnd := 0
	for _, e := range edits {
		out.Write(content[lastEnd:e.StartOffset])
		out.WriteString(e.NewText)
		lastEnd = e.EndOffset
	}
	out.Write(content[lastEnd:])

	return out.Bytes()
}
