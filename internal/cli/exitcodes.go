package cli

import "github.com/yaklabco/phpfix/pkg/fixer"

// Exit codes for phpfix.
const (
	// ExitSuccess indicates every file was fixed or needed no change.
	ExitSuccess = 0

	// ExitFixFailures indicates some files were left unfixed
	// (conflicting edits or unreadable files).
	ExitFixFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a fix run.
func ExitCodeFromResult(result *fixer.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitFixFailures
	}
	return ExitSuccess
}
