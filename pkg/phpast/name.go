package phpast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Node type tags produced by the tree-sitter PHP grammar for import statements.
const (
	// TypeUseDeclaration is a whole `use ...;` statement, semicolon included.
	TypeUseDeclaration = "namespace_use_declaration"

	// TypeUseClause is one imported name within a use declaration.
	TypeUseClause = "namespace_use_clause"

	// TypeUseGroup is the braced body of a grouped import, `use Foo\{A, B};`.
	TypeUseGroup = "namespace_use_group"

	// TypeQualifiedName is a namespaced name such as `Foo\Bar`.
	TypeQualifiedName = "qualified_name"

	// TypeName is a bare, unqualified name.
	TypeName = "name"
)

// Import qualifier keywords. A plain `use Foo;` has no qualifier.
const (
	QualifierFunction = "function"
	QualifierConst    = "const"
)

// NamespaceSeparator is the PHP namespace separator.
const NamespaceSeparator = `\`

// CanonicalName normalizes a fully-qualified PHP name for comparison:
// the leading namespace separator is stripped and case is folded.
// PHP namespace and class names resolve case-insensitively.
func CanonicalName(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, NamespaceSeparator))
}

// UseClauseName resolves a namespace_use_clause node to the fully-qualified
// name it imports, ignoring any alias. Returns false if the clause does not
// carry a plain (non-grouped) qualified name.
func (f *FileSnapshot) UseClauseName(clause *sitter.Node) (string, bool) {
	if clause == nil || clause.Type() != TypeUseClause {
		return "", false
	}

	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Type() {
		case TypeQualifiedName, TypeName:
			return f.NodeText(child), true
		}
	}

	return "", false
}

// UseQualifier returns the import qualifier keyword of a use declaration:
// "function", "const", or "" for a plain class-like import.
func UseQualifier(decl *sitter.Node) string {
	if decl == nil || decl.Type() != TypeUseDeclaration {
		return ""
	}

	// The qualifier is an anonymous keyword token between `use` and the
	// first clause.
	for i := 0; i < int(decl.ChildCount()); i++ {
		switch decl.Child(i).Type() {
		case QualifierFunction:
			return QualifierFunction
		case QualifierConst:
			return QualifierConst
		case TypeUseClause, TypeUseGroup:
			return ""
		}
	}
	return ""
}
