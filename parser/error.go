package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnolang/jsmatch/ast"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError locates a region tree-sitter could not parse, or a token it
// had to insert to recover.
type SyntaxError struct {
	Line   int
	Column int
	Near   string
	// Missing is the grammar type of the inserted token, if any.
	Missing string
}

func (e *SyntaxError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("%d:%d: %s: missing %s", e.Line, e.Column, ErrSyntax, e.Missing)
	}
	if e.Near == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, ErrSyntax)
	}
	return fmt.Sprintf("%d:%d: %s near %q", e.Line, e.Column, ErrSyntax, e.Near)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

const maxNear = 20

// near returns the first line of the broken region, shortened.
func near(src []byte, span ast.Span) string {
	from, to := int(span.From), int(span.To)
	if from < 0 || to > len(src) || from >= to {
		return ""
	}
	text := string(src[from:to])
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if len(text) > maxNear {
		text = text[:maxNear] + "..."
	}
	return text
}
