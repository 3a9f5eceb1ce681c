package parser

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/gnolang/jsmatch/ast"
	"github.com/gnolang/jsmatch/token"
)

// Grammar node types of the tree-sitter JavaScript grammar.
const (
	tsComment         = "comment"
	tsError           = "ERROR"
	tsBlock           = "statement_block"
	tsIf              = "if_statement"
	tsWhile           = "while_statement"
	tsDo              = "do_statement"
	tsFor             = "for_statement"
	tsForIn           = "for_in_statement"
	tsLabelled        = "labeled_statement"
	tsReturn          = "return_statement"
	tsThrow           = "throw_statement"
	tsWith            = "with_statement"
	tsExprStmt        = "expression_statement"
	tsEmpty           = "empty_statement"
	tsBinary          = "binary_expression"
	tsAssign          = "assignment_expression"
	tsAugmentedAssign = "augmented_assignment_expression"
	tsTernary         = "ternary_expression"
	tsParenthesized   = "parenthesized_expression"
	tsIdentifier      = "identifier"
	tsUndefined       = "undefined"
	tsTrue            = "true"
	tsFalse           = "false"
	tsNull            = "null"
	tsNumber          = "number"
	tsString          = "string"
)

var statementTypes = map[string]bool{
	tsBlock:    true,
	tsIf:       true,
	tsWhile:    true,
	tsDo:       true,
	tsFor:      true,
	tsForIn:    true,
	tsLabelled: true,
	tsReturn:   true,
	tsThrow:    true,
	tsWith:     true,
	tsExprStmt: true,
	tsEmpty:    true,
}

type lowerer struct {
	src      []byte
	comments []*ast.Comment
	broken   []brokenRegion
}

// brokenRegion is an ERROR region, or a zero-width token tree-sitter
// inserted to recover (missing is then its grammar type).
type brokenRegion struct {
	span    ast.Span
	missing string
}

// scan records comments, the outermost ERROR regions and the MISSING
// tokens of the tree.
func (l *lowerer) scan(n sitter.Node, inError bool) {
	switch {
	case n.Type() == tsComment:
		l.comments = append(l.comments, &ast.Comment{Span: l.span(n), Text: l.text(n)})
		return
	case n.IsMissing():
		if !inError {
			l.broken = append(l.broken, brokenRegion{span: l.span(n), missing: n.Type()})
		}
		return
	case n.Type() == tsError:
		if !inError {
			l.broken = append(l.broken, brokenRegion{span: l.span(n)})
		}
		inError = true
	}
	// Missing tokens are often anonymous, so every child is visited.
	for idx := range n.ChildCount() {
		l.scan(n.Child(idx), inError)
	}
}

func (l *lowerer) span(n sitter.Node) ast.Span {
	return ast.Span{From: ast.Idx(n.StartByte()), To: ast.Idx(n.EndByte())}
}

func (l *lowerer) text(n sitter.Node) string {
	start, end := n.StartByte(), n.EndByte()
	if end > uint(len(l.src)) || start > end {
		return ""
	}
	return string(l.src[start:end])
}

// named returns the named children of n, comments excluded.
func (l *lowerer) named(n sitter.Node) []sitter.Node {
	out := make([]sitter.Node, 0, n.NamedChildCount())
	for idx := range n.NamedChildCount() {
		c := n.NamedChild(idx)
		if c.Type() == tsComment {
			continue
		}
		out = append(out, c)
	}
	return out
}

// first returns the first named child of n that is not a comment.
func (l *lowerer) first(n sitter.Node) (sitter.Node, bool) {
	for idx := range n.NamedChildCount() {
		c := n.NamedChild(idx)
		if c.Type() != tsComment {
			return c, true
		}
	}
	return sitter.Node{}, false
}

func (l *lowerer) stmts(n sitter.Node) []ast.Stmt {
	children := l.named(n)
	out := make([]ast.Stmt, 0, len(children))
	for _, c := range children {
		if s := l.stmt(c); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// node lowers n to a statement or an expression depending on its type.
func (l *lowerer) node(n sitter.Node) ast.Node {
	if n.IsNull() {
		return nil
	}
	if statementTypes[n.Type()] {
		return l.stmt(n)
	}
	return l.expr(n)
}

func (l *lowerer) other(n sitter.Node) *ast.Other {
	children := l.named(n)
	o := &ast.Other{Span: l.span(n), Type: n.Type()}
	if len(children) > 0 {
		o.List = make([]ast.Node, 0, len(children))
	}
	for _, c := range children {
		if child := l.node(c); child != nil {
			o.List = append(o.List, child)
		}
	}
	return o
}

func (l *lowerer) stmt(n sitter.Node) ast.Stmt {
	if n.IsNull() {
		return nil
	}

	span := l.span(n)
	switch n.Type() {
	case tsBlock:
		return &ast.BlockStatement{Span: span, List: l.stmts(n)}

	case tsIf:
		s := &ast.IfStatement{
			Span:       span,
			Test:       l.condition(n.ChildByFieldName("condition")),
			Consequent: l.stmt(n.ChildByFieldName("consequence")),
		}
		if alt := n.ChildByFieldName("alternative"); !alt.IsNull() {
			if body, ok := l.first(alt); ok {
				s.Alternate = l.stmt(body)
			}
		}
		return s

	case tsWhile:
		return &ast.WhileStatement{
			Span: span,
			Test: l.condition(n.ChildByFieldName("condition")),
			Body: l.stmt(n.ChildByFieldName("body")),
		}

	case tsDo:
		return &ast.DoWhileStatement{
			Span: span,
			Body: l.stmt(n.ChildByFieldName("body")),
			Test: l.condition(n.ChildByFieldName("condition")),
		}

	case tsFor:
		return &ast.ForStatement{
			Span:        span,
			Initializer: l.forInitializer(n.ChildByFieldName("initializer")),
			Test:        l.forClause(n.ChildByFieldName("condition")),
			Update:      l.forClause(n.ChildByFieldName("increment")),
			Body:        l.stmt(n.ChildByFieldName("body")),
		}

	case tsForIn:
		left, right := n.ChildByFieldName("left"), n.ChildByFieldName("right")
		return &ast.ForInStatement{
			Span:  span,
			Of:    l.isForOf(n, left, right),
			Left:  l.node(left),
			Right: l.expr(right),
			Body:  l.stmt(n.ChildByFieldName("body")),
		}

	case tsLabelled:
		s := &ast.LabelledStatement{Span: span, Body: l.stmt(n.ChildByFieldName("body"))}
		if label := n.ChildByFieldName("label"); !label.IsNull() {
			s.Label = &ast.Identifier{Span: l.span(label), Name: l.text(label)}
		}
		return s

	case tsReturn:
		s := &ast.ReturnStatement{Span: span}
		if arg, ok := l.first(n); ok {
			s.Argument = l.expr(arg)
		}
		return s

	case tsThrow:
		s := &ast.ThrowStatement{Span: span}
		if arg, ok := l.first(n); ok {
			s.Argument = l.expr(arg)
		}
		return s

	case tsWith:
		return &ast.WithStatement{
			Span:   span,
			Object: l.condition(n.ChildByFieldName("object")),
			Body:   l.stmt(n.ChildByFieldName("body")),
		}

	case tsExprStmt:
		s := &ast.ExpressionStatement{Span: span}
		if e, ok := l.first(n); ok {
			s.Expression = l.expr(e)
		}
		return s

	case tsEmpty:
		return &ast.EmptyStatement{Span: span}
	}

	return l.other(n)
}

func (l *lowerer) expr(n sitter.Node) ast.Expr {
	if n.IsNull() {
		return nil
	}

	span := l.span(n)
	switch n.Type() {
	case tsBinary, tsAugmentedAssign:
		return &ast.BinaryExpression{
			Span:     span,
			Operator: l.operator(n.ChildByFieldName("operator")),
			Left:     l.expr(n.ChildByFieldName("left")),
			Right:    l.expr(n.ChildByFieldName("right")),
		}

	case tsAssign:
		return &ast.BinaryExpression{
			Span:     span,
			Operator: token.Assign,
			Left:     l.expr(n.ChildByFieldName("left")),
			Right:    l.expr(n.ChildByFieldName("right")),
		}

	case tsTernary:
		return &ast.ConditionalExpression{
			Span:       span,
			Test:       l.expr(n.ChildByFieldName("condition")),
			Consequent: l.expr(n.ChildByFieldName("consequence")),
			Alternate:  l.expr(n.ChildByFieldName("alternative")),
		}

	case tsParenthesized:
		e := &ast.ParenthesizedExpression{Span: span}
		if inner, ok := l.first(n); ok {
			e.Expression = l.expr(inner)
		}
		return e

	case tsIdentifier, tsUndefined:
		return &ast.Identifier{Span: span, Name: l.text(n)}

	case tsTrue, tsFalse:
		return &ast.BooleanLiteral{Span: span, Value: n.Type() == tsTrue}

	case tsNull:
		return &ast.NullLiteral{Span: span}

	case tsNumber:
		raw := l.text(n)
		return &ast.NumberLiteral{Span: span, Value: decodeNumber(raw), Raw: raw}

	case tsString:
		raw := l.text(n)
		return &ast.StringLiteral{Span: span, Value: decodeString(raw), Raw: raw}
	}

	return l.other(n)
}

func (l *lowerer) operator(n sitter.Node) token.Operator {
	if n.IsNull() {
		return token.Undetermined
	}
	op, ok := token.LookupOperator(n.Type())
	if !ok {
		return token.Undetermined
	}
	return op
}

// condition lowers a parenthesized head such as the condition of an if
// statement, dropping the parentheses the grammar requires.
func (l *lowerer) condition(n sitter.Node) ast.Expr {
	if n.IsNull() {
		return nil
	}
	if n.Type() == tsParenthesized {
		inner, ok := l.first(n)
		if !ok {
			return nil
		}
		return l.expr(inner)
	}
	return l.expr(n)
}

// forInitializer accepts declarations, bare expressions, and the statement
// shaped initializers older grammar versions produce.
func (l *lowerer) forInitializer(n sitter.Node) ast.Node {
	if n.IsNull() {
		return nil
	}
	switch n.Type() {
	case tsEmpty, ";":
		return nil
	case tsExprStmt:
		inner, ok := l.first(n)
		if !ok {
			return nil
		}
		return l.expr(inner)
	}
	return l.node(n)
}

func (l *lowerer) forClause(n sitter.Node) ast.Expr {
	if n.IsNull() {
		return nil
	}
	switch n.Type() {
	case tsEmpty, ";":
		return nil
	case tsExprStmt:
		inner, ok := l.first(n)
		if !ok {
			return nil
		}
		return l.expr(inner)
	}
	return l.expr(n)
}

// isForOf reports whether a for_in_statement iterates with `of`.
func (l *lowerer) isForOf(n, left, right sitter.Node) bool {
	if op := n.ChildByFieldName("operator"); !op.IsNull() {
		return op.Type() == "of"
	}
	if left.IsNull() || right.IsNull() {
		return false
	}
	from, to := left.EndByte(), right.StartByte()
	if from > to || to > uint(len(l.src)) {
		return false
	}
	return strings.TrimSpace(string(l.src[from:to])) == "of"
}
