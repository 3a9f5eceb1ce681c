package ast

import "sort"

// Comment is a source comment. Comments are not part of the tree.
type Comment struct {
	Span
	Text string
}

// Position is a 1-based line and column (in bytes) within a program.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Program is the root of a parsed source file.
type Program struct {
	Span
	link
	Body     []Stmt
	Comments []*Comment

	src   []byte
	lines []int
}

// NewProgram builds a program over src and links parents of the whole tree.
func NewProgram(src []byte, body []Stmt, comments []*Comment) *Program {
	p := &Program{
		Span:     Span{From: 0, To: Idx(len(src))},
		Body:     body,
		Comments: comments,
		src:      src,
		lines:    []int{0},
	}
	for i, b := range src {
		if b == '\n' {
			p.lines = append(p.lines, i+1)
		}
	}
	SetParents(p)
	return p
}

func (*Program) Kind() Kind { return KindProgram }

func (n *Program) Children() []Node {
	out := make([]Node, 0, len(n.Body))
	for _, s := range n.Body {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Source returns the text the program was parsed from.
func (n *Program) Source() []byte { return n.src }

// Position converts a byte offset to a line and column.
func (n *Program) Position(idx Idx) Position {
	off := int(idx)
	if off < 0 {
		off = 0
	}
	if off > len(n.src) {
		off = len(n.src)
	}
	if len(n.lines) == 0 {
		return Position{Offset: off, Line: 1, Column: off + 1}
	}
	line := sort.Search(len(n.lines), func(i int) bool { return n.lines[i] > off }) - 1
	return Position{
		Offset: off,
		Line:   line + 1,
		Column: off - n.lines[line] + 1,
	}
}

// Text returns the source text covered by node.
func (n *Program) Text(node Node) string {
	if node == nil {
		return ""
	}
	from, to := int(node.Idx0()), int(node.Idx1())
	if from < 0 || to > len(n.src) || from > to {
		return ""
	}
	return string(n.src[from:to])
}

// Root returns the program enclosing node, or nil if node is detached.
func Root(node Node) *Program {
	for n := node; n != nil; n = n.Parent() {
		if p, ok := n.(*Program); ok {
			return p
		}
	}
	return nil
}
