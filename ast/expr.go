package ast

import "github.com/gnolang/jsmatch/token"

type (
	// BinaryExpression is a binary, logical or assignment expression.
	BinaryExpression struct {
		Span
		link
		Operator token.Operator
		Left     Expr
		Right    Expr
	}

	ConditionalExpression struct {
		Span
		link
		Test       Expr
		Consequent Expr
		Alternate  Expr
	}

	ParenthesizedExpression struct {
		Span
		link
		Expression Expr
	}

	Identifier struct {
		Span
		link
		Name string
	}
)

func (*BinaryExpression) Kind() Kind        { return KindBinary }
func (*ConditionalExpression) Kind() Kind   { return KindConditional }
func (*ParenthesizedExpression) Kind() Kind { return KindParenthesized }
func (*Identifier) Kind() Kind              { return KindIdentifier }

func (n *BinaryExpression) Children() []Node { return nodes(n.Left, n.Right) }

func (n *ConditionalExpression) Children() []Node {
	return nodes(n.Test, n.Consequent, n.Alternate)
}

func (n *ParenthesizedExpression) Children() []Node { return nodes(n.Expression) }
func (*Identifier) Children() []Node                { return nil }

func (*BinaryExpression) _expr()        {}
func (*ConditionalExpression) _expr()   {}
func (*ParenthesizedExpression) _expr() {}
func (*Identifier) _expr()              {}
