package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldFiles  = "files"
	FieldReport = "report"

	// Issue and matcher fields.
	FieldCheck    = "check"
	FieldLine     = "line"
	FieldName     = "name"
	FieldReported = "reported"
	FieldCount    = "count"

	// Run fields.
	FieldJobs   = "jobs"
	FieldDryRun = "dry_run"
	FieldIssues = "issues"

	// Statistics fields.
	FieldFilesFixed      = "files_fixed"
	FieldFilesConflicted = "files_conflicted"
	FieldEditsApplied    = "edits_applied"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
