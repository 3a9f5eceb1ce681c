// Package parser turns JavaScript source into the syntax tree of package ast.
//
// Parsing is delegated to the tree-sitter JavaScript grammar. The concrete
// tree is then lowered into ast nodes: mandatory parentheses are dropped,
// assignments become binary-operator nodes, literals are decoded, and
// comments are collected on the program instead of appearing as children.
package parser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/alexaandru/go-sitter-forest/javascript"

	"github.com/gnolang/jsmatch/ast"
)

var (
	ErrNoRootNode = errors.New("parser: tree has no root node")
	errPoolType   = errors.New("parser: unexpected type in parser pool")
)

// Parser parses JavaScript sources. It is safe for concurrent use; the
// underlying tree-sitter parsers are pooled.
type Parser struct {
	language *sitter.Language
	pool     sync.Pool
}

// New creates a JavaScript parser.
func New() *Parser {
	p := &Parser{language: sitter.NewLanguage(javascript.GetLanguage())}
	p.pool = sync.Pool{
		New: func() any {
			tsParser := sitter.NewParser()
			tsParser.SetLanguage(p.language)

			return tsParser
		},
	}
	return p
}

// Parse parses src into a program.
//
// When the source contains syntax errors the partially recovered program is
// returned together with an error joining one *SyntaxError per location.
func (p *Parser) Parse(ctx context.Context, src []byte) (*ast.Program, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}
	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, ErrNoRootNode
	}

	l := &lowerer{src: src}
	l.scan(root, false)
	prog := ast.NewProgram(src, l.stmts(root), l.comments)

	if len(l.broken) == 0 {
		return prog, nil
	}

	errs := make([]error, 0, len(l.broken))
	for _, region := range l.broken {
		pos := prog.Position(region.span.From)
		errs = append(errs, &SyntaxError{
			Line:    pos.Line,
			Column:  pos.Column,
			Near:    near(src, region.span),
			Missing: region.missing,
		})
	}
	return prog, errors.Join(errs...)
}

var defaultParser = sync.OnceValue(New)

// ParseFile parses a complete JavaScript source text with a shared parser.
func ParseFile(src string) (*ast.Program, error) {
	return defaultParser().Parse(context.Background(), []byte(src))
}
