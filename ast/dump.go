package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fdump writes the tree rooted at root to w, one node per line, indented
// by depth. Positions are resolved against the enclosing program when
// there is one.
func Fdump(w io.Writer, root Node) error {
	prog := Root(root)
	if p, ok := root.(*Program); ok {
		prog = p
	}
	var err error
	depth := map[Node]int{}
	Walk(root, func(n Node) bool {
		if err != nil {
			return false
		}
		d := 0
		if p := n.Parent(); p != nil && n != root {
			d = depth[p] + 1
		}
		depth[n] = d

		var b strings.Builder
		b.WriteString(strings.Repeat("  ", d))
		b.WriteString(string(n.Kind()))
		if prog != nil {
			from, to := prog.Position(n.Idx0()), prog.Position(n.Idx1())
			fmt.Fprintf(&b, " [%d:%d-%d:%d]", from.Line, from.Column, to.Line, to.Column)
		}
		if d := detail(n); d != "" {
			b.WriteString(" ")
			b.WriteString(d)
		}
		b.WriteByte('\n')
		_, err = io.WriteString(w, b.String())
		return true
	})
	return err
}

func detail(n Node) string {
	switch n := n.(type) {
	case *Identifier:
		return strconv.Quote(n.Name)
	case *BinaryExpression:
		return n.Operator.String()
	case *BooleanLiteral:
		return strconv.FormatBool(n.Value)
	case *NumberLiteral:
		return n.Raw
	case *StringLiteral:
		return n.Raw
	case *BlockStatement:
		return fmt.Sprintf("(%d statements)", len(n.List))
	}
	return ""
}
