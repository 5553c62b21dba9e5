package fixer

import "github.com/yaklabco/phpfix/pkg/fix"

// State is the terminal state of one file's fix attempt.
type State int

const (
	// StateNoChange means no handler produced an effective edit.
	StateNoChange State = iota

	// StateApplied means the merged edits were applied (and written,
	// unless dry-run).
	StateApplied

	// StateConflict means overlapping edits were detected and the whole
	// file was left untouched.
	StateConflict

	// StateLoadError means the file content could not be read.
	StateLoadError

	// StateSkipped means the file was deliberately not processed
	// (not PHP, vanished before write, changed on disk mid-run).
	StateSkipped
)

// String returns the state name for logs and summaries.
func (s State) String() string {
	switch s {
	case StateNoChange:
		return "no change"
	case StateApplied:
		return "applied"
	case StateConflict:
		return "conflict"
	case StateLoadError:
		return "load error"
	case StateSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// FileOutcome records how one file's fix attempt ended.
type FileOutcome struct {
	// Path is the logical (report) path of the file.
	Path string

	// State is the terminal state.
	State State

	// Reason explains skips and failures in one line.
	Reason string

	// Err carries the underlying error for LoadError outcomes.
	Err error

	// IssueCount is the number of issues reported for this file.
	IssueCount int

	// EditsApplied is the number of merged edits applied.
	EditsApplied int

	// Written is true if the file was rewritten on disk.
	Written bool

	// BackupCreated is true if a sidecar backup was created.
	BackupCreated bool

	// Diff holds the unified diff in dry-run mode (nil otherwise).
	Diff *fix.Diff
}

// Stats aggregates a run across all files.
type Stats struct {
	FilesTotal      int
	FilesFixed      int
	FilesUnchanged  int
	FilesConflicted int
	FilesErrored    int
	FilesSkipped    int
	IssuesTotal     int
	EditsApplied    int
}

// Result is the outcome of one fixer run, in deterministic file order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.FilesTotal++
	r.Stats.IssuesTotal += outcome.IssueCount
	r.Stats.EditsApplied += outcome.EditsApplied

	switch outcome.State {
	case StateApplied:
		r.Stats.FilesFixed++
	case StateNoChange:
		r.Stats.FilesUnchanged++
	case StateConflict:
		r.Stats.FilesConflicted++
	case StateLoadError:
		r.Stats.FilesErrored++
	case StateSkipped:
		r.Stats.FilesSkipped++
	}
}

// HasFailures reports whether any file ended in a conflict or load error.
func (r *Result) HasFailures() bool {
	return r.Stats.FilesConflicted > 0 || r.Stats.FilesErrored > 0
}
