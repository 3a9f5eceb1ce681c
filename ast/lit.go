package ast

type (
	BooleanLiteral struct {
		Span
		link
		Value bool
	}

	NullLiteral struct {
		Span
		link
	}

	NumberLiteral struct {
		Span
		link
		Value float64
		Raw   string
	}

	StringLiteral struct {
		Span
		link
		// Value is the decoded string, escapes resolved.
		Value string
		Raw   string
	}
)

// Literal is implemented by nodes carrying a decoded constant value.
type Literal interface {
	Expr
	// LiteralValue returns bool, float64, string, or nil for null.
	LiteralValue() any
}

func (*BooleanLiteral) Kind() Kind { return KindBoolean }
func (*NullLiteral) Kind() Kind    { return KindNull }
func (*NumberLiteral) Kind() Kind  { return KindNumber }
func (*StringLiteral) Kind() Kind  { return KindString }

func (n *BooleanLiteral) LiteralValue() any { return n.Value }
func (*NullLiteral) LiteralValue() any      { return nil }
func (n *NumberLiteral) LiteralValue() any  { return n.Value }
func (n *StringLiteral) LiteralValue() any  { return n.Value }

func (*BooleanLiteral) Children() []Node { return nil }
func (*NullLiteral) Children() []Node    { return nil }
func (*NumberLiteral) Children() []Node  { return nil }
func (*StringLiteral) Children() []Node  { return nil }

func (*BooleanLiteral) _expr() {}
func (*NullLiteral) _expr()    {}
func (*NumberLiteral) _expr()  {}
func (*StringLiteral) _expr()  {}
