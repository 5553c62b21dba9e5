package phpast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

// Parser parses PHP source into FileSnapshots.
//
// tree-sitter is error-recovering: malformed source still yields a tree
// (with ERROR nodes), so a parse failure here means an internal fault
// (cancellation, out of memory), never bad input.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a parser configured for the PHP grammar.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(php.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses content and returns a FileSnapshot whose line index and tree
// are both built from the exact bytes given.
//
// The caller owns the snapshot and should Close it when done.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*FileSnapshot, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Root:    tree.RootNode(),
		tree:    tree,
	}, nil
}
