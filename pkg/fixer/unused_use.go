package fixer

import (
	"github.com/charmbracelet/log"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/phpfix/internal/logging"
	"github.com/yaklabco/phpfix/pkg/fix"
	"github.com/yaklabco/phpfix/pkg/phpast"
)

//nolint:gochecknoinits // Built-in handlers self-register, mirroring the registry design
func init() {
	DefaultRegistry.Register(NewUnusedUseHandler(nil))
}

// UnusedUseHandler removes unreferenced `use` declarations.
//
// One handler serves the whole family: the class-like, function, and const
// sub-kinds differ only in the qualifier keyword the candidate declaration
// must carry, so dispatch is data (expectedQualifier), not separate code
// paths.
type UnusedUseHandler struct {
	logger *log.Logger
}

// NewUnusedUseHandler creates the handler. A nil logger falls back to the
// package default; tests inject their own to capture the candidate trace.
func NewUnusedUseHandler(logger *log.Logger) *UnusedUseHandler {
	return &UnusedUseHandler{logger: logger}
}

// Checks returns the unused-import issue kinds.
func (h *UnusedUseHandler) Checks() []CheckName {
	return []CheckName{CheckUnusedUse, CheckUnusedFunctionUse, CheckUnusedConstUse}
}

// expectedQualifier maps an issue kind to the import qualifier keyword the
// candidate declaration must carry. Unknown kinds produce no match.
func expectedQualifier(check CheckName) (string, bool) {
	switch check {
	case CheckUnusedUse:
		return "", true
	case CheckUnusedFunctionUse:
		return phpast.QualifierFunction, true
	case CheckUnusedConstUse:
		return phpast.QualifierConst, true
	default:
		return "", false
	}
}

// Fix deletes the use declaration reported by issue, if the declaration on
// that line structurally matches the report.
//
// Only the first use declaration starting on the issue's line is considered;
// at most one can start there, so the scan stops after it whether or not it
// matched.
func (h *UnusedUseHandler) Fix(snap *phpast.FileSnapshot, issue Issue) ([]fix.TextEdit, bool) {
	qualifier, known := expectedQualifier(issue.Check)
	if !known {
		h.log().Debug("no qualifier mapping for check",
			logging.FieldCheck, string(issue.Check))
		return nil, false
	}

	for node := range snap.NodesAtLine(issue.Line) {
		if node.Type() != phpast.TypeUseDeclaration {
			continue
		}

		if !h.matches(snap, node, qualifier, issue) {
			return nil, false
		}

		start := int(node.StartByte())
		end := extendThroughEOL(snap.Content, int(node.EndByte()))

		return []fix.TextEdit{{StartOffset: start, EndOffset: end}}, true
	}

	h.log().Debug("no use declaration on issue line",
		logging.FieldPath, issue.Path,
		logging.FieldLine, issue.Line)
	return nil, false
}

// matches decides whether decl is the import the issue reports.
// Every rejection is a conservative false negative: grouped imports and
// unexpected shapes are declined rather than risk a wrong deletion.
func (h *UnusedUseHandler) matches(snap *phpast.FileSnapshot, decl *sitter.Node, qualifier string, issue Issue) bool {
	if phpast.UseQualifier(decl) != qualifier {
		h.log().Debug("qualifier mismatch",
			logging.FieldCheck, string(issue.Check),
			logging.FieldLine, issue.Line)
		return false
	}

	var clause *sitter.Node
	clauseCount := 0
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		switch child.Type() {
		case phpast.TypeUseGroup:
			h.log().Debug("grouped import is unsupported", logging.FieldLine, issue.Line)
			return false
		case phpast.TypeUseClause:
			clause = child
			clauseCount++
		}
	}
	if clauseCount != 1 {
		h.log().Debug("not a single-clause import",
			logging.FieldLine, issue.Line,
			logging.FieldCount, clauseCount)
		return false
	}

	name, ok := snap.UseClauseName(clause)
	if !ok {
		h.log().Debug("clause has no plain qualified name", logging.FieldLine, issue.Line)
		return false
	}

	if len(issue.Args) < 2 {
		h.log().Debug("issue lacks the reported name argument",
			logging.FieldCheck, string(issue.Check))
		return false
	}
	reported := issue.Args[1]

	if phpast.CanonicalName(name) != phpast.CanonicalName(reported) {
		h.log().Debug("name mismatch",
			logging.FieldName, name,
			logging.FieldReported, reported)
		return false
	}

	return true
}

// extendThroughEOL extends a deletion end forward through the next newline
// when everything between end and that newline is pure whitespace. A
// following statement on the same line keeps the deletion at the
// declaration's end; an otherwise-blank remainder takes the newline with it.
//
// The rule looks forward only. Leading indentation before the declaration is
// never touched, even if the import shared its line with preceding code.
func extendThroughEOL(content []byte, end int) int {
	i := end
	for i < len(content) {
		switch content[i] {
		case ' ', '\t', '\r':
			i++
		case '\n':
			return i + 1
		default:
			return end
		}
	}
	return end
}

func (h *UnusedUseHandler) log() *log.Logger {
	if h.logger != nil {
		return h.logger
	}
	return logging.Default()
}
