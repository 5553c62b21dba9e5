package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// DiffLineKind classifies a line within a diff hunk.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line present only in the modified content.
	DiffLineAdd

	// DiffLineRemove is a line present only in the original content.
	DiffLineRemove
)

// DiffLine is a single line of a hunk, without its +/-/space prefix.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffHunk is one contiguous region of a unified diff.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Diff is a unified diff between the original and rewritten content of one file.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// GenerateDiff computes the unified diff between original and modified.
// Returns nil when the contents are line-identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	ops := diffOps(origLines, modLines)
	changed := false
	for _, op := range ops {
		if op.kind != DiffLineContext {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	d := &Diff{Path: path, Hunks: groupHunks(ops)}
	for _, hunk := range d.Hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				d.Additions++
			case DiffLineRemove:
				d.Deletions++
			}
		}
	}
	return d
}

// HasChanges reports whether the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineContext:
				fmt.Fprintf(&b, " %s\n", line.Content)
			case DiffLineAdd:
				fmt.Fprintf(&b, "+%s\n", line.Content)
			case DiffLineRemove:
				fmt.Fprintf(&b, "-%s\n", line.Content)
			}
		}
	}

	return b.String()
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffOps produces the full remove/add/context line sequence using an
// LCS alignment of the two line slices.
func diffOps(orig, mod []string) []diffOp {
	lcs := longestCommonSubsequence(orig, mod)

	var ops []diffOp
	oi, mi, li := 0, 0, 0

	for oi < len(orig) || mi < len(mod) {
		if li < len(lcs) && oi < len(orig) && mi < len(mod) &&
			orig[oi] == lcs[li] && mod[mi] == lcs[li] {
			ops = append(ops, diffOp{kind: DiffLineContext, content: orig[oi]})
			oi++
			mi++
			li++
			continue
		}

		for oi < len(orig) && (li >= len(lcs) || orig[oi] != lcs[li]) {
			ops = append(ops, diffOp{kind: DiffLineRemove, content: orig[oi]})
			oi++
		}
		for mi < len(mod) && (li >= len(lcs) || mod[mi] != lcs[li]) {
			ops = append(ops, diffOp{kind: DiffLineAdd, content: mod[mi]})
			mi++
		}
	}

	return ops
}

// groupHunks collects changed regions, merging regions whose gap is within
// twice the context width, and attaches surrounding context lines.
func groupHunks(ops []diffOp) []DiffHunk {
	type span struct{ start, end int }

	var spans []span
	inChange := false
	spanStart := 0
	for i, op := range ops {
		isChange := op.kind != DiffLineContext
		switch {
		case isChange && !inChange:
			spanStart = i
			inChange = true
		case !isChange && inChange:
			spans = append(spans, span{spanStart, i})
			inChange = false
		}
	}
	if inChange {
		spans = append(spans, span{spanStart, len(ops)})
	}
	if len(spans) == 0 {
		return nil
	}

	var hunks []DiffHunk
	for i := 0; i < len(spans); {
		j := i + 1
		for j < len(spans) && spans[j].start-spans[j-1].end <= contextLines*2 {
			j++
		}
		hunks = append(hunks, buildHunk(ops, spans[i].start, spans[j-1].end))
		i = j
	}
	return hunks
}

func buildHunk(ops []diffOp, changeStart, changeEnd int) DiffHunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for i := range start {
		if ops[i].kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if ops[i].kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}

	for i := start; i < end; i++ {
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: ops[i].kind, Content: ops[i].content})
		switch ops[i].kind {
		case DiffLineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case DiffLineRemove:
			hunk.OriginalCount++
		case DiffLineAdd:
			hunk.ModifiedCount++
		}
	}

	return hunk
}

func longestCommonSubsequence(orig, mod []string) []string {
	if len(orig) == 0 || len(mod) == 0 {
		return nil
	}

	dp := make([][]int, len(orig)+1)
	for i := range dp {
		dp[i] = make([]int, len(mod)+1)
	}
	for i := 1; i <= len(orig); i++ {
		for j := 1; j <= len(mod); j++ {
			if orig[i-1] == mod[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	if dp[len(orig)][len(mod)] == 0 {
		return nil
	}

	lcs := make([]string, dp[len(orig)][len(mod)])
	i, j, k := len(orig), len(mod), len(lcs)-1
	for i > 0 && j > 0 {
		switch {
		case orig[i-1] == mod[j-1]:
			lcs[k] = orig[i-1]
			i--
			j--
			k--
		case dp[i-1][j] > dp[i][j-1]:
			i--
		default:
			j--
		}
	}

	return lcs
}
