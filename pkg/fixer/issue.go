// Package fixer implements phpfix's rewrite engine: per-check fix handlers,
// the handler registry, and the orchestrator that turns reported issues into
// rewritten files.
package fixer

// CheckName identifies an issue kind from the analysis engine's taxonomy.
type CheckName string

// Checks with registered fix handlers.
const (
	// CheckUnusedUse is an unreferenced class-like import, `use Foo\Bar;`.
	CheckUnusedUse CheckName = "unusedUse"

	// CheckUnusedFunctionUse is an unreferenced `use function Foo\bar;`.
	CheckUnusedFunctionUse CheckName = "unusedFunctionUse"

	// CheckUnusedConstUse is an unreferenced `use const Foo\BAR;`.
	CheckUnusedConstUse CheckName = "unusedConstUse"
)

// Issue is one reported problem from the analysis engine.
// Issues are created externally and read-only to this package.
type Issue struct {
	// Check is the issue kind identifier.
	Check CheckName `json:"check"`

	// Path is the file path, usually relative to the project root.
	Path string `json:"path"`

	// Line is the 1-based line the issue was reported on.
	Line int `json:"line"`

	// Args are the check-specific template parameters. For the unused-use
	// family, Args[0] is the short name and Args[1] the fully-qualified
	// name of the unreferenced import.
	Args []string `json:"args"`
}
