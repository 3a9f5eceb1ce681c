package ast

type (
	BlockStatement struct {
		Span
		link
		List []Stmt
	}

	IfStatement struct {
		Span
		link
		Test       Expr
		Consequent Stmt
		Alternate  Stmt `optional:"true"`
	}

	WhileStatement struct {
		Span
		link
		Test Expr
		Body Stmt
	}

	DoWhileStatement struct {
		Span
		link
		Body Stmt
		Test Expr
	}

	ForStatement struct {
		Span
		link
		Initializer Node `optional:"true"`
		Test        Expr `optional:"true"`
		Update      Expr `optional:"true"`
		Body        Stmt
	}

	// ForInStatement covers both for-in and for-of loops.
	ForInStatement struct {
		Span
		link
		Of    bool
		Left  Node
		Right Expr
		Body  Stmt
	}

	LabelledStatement struct {
		Span
		link
		Label *Identifier
		Body  Stmt
	}

	ReturnStatement struct {
		Span
		link
		Argument Expr `optional:"true"`
	}

	ThrowStatement struct {
		Span
		link
		Argument Expr
	}

	WithStatement struct {
		Span
		link
		Object Expr
		Body   Stmt
	}

	ExpressionStatement struct {
		Span
		link
		Expression Expr
	}

	EmptyStatement struct {
		Span
		link
	}
)

func (*BlockStatement) Kind() Kind      { return KindBlock }
func (*IfStatement) Kind() Kind         { return KindIf }
func (*WhileStatement) Kind() Kind      { return KindWhile }
func (*DoWhileStatement) Kind() Kind    { return KindDoWhile }
func (*ForStatement) Kind() Kind        { return KindFor }
func (*LabelledStatement) Kind() Kind   { return KindLabelled }
func (*ReturnStatement) Kind() Kind     { return KindReturn }
func (*ThrowStatement) Kind() Kind      { return KindThrow }
func (*WithStatement) Kind() Kind       { return KindWith }
func (*ExpressionStatement) Kind() Kind { return KindExpressionStatement }
func (*EmptyStatement) Kind() Kind      { return KindEmpty }

func (n *ForInStatement) Kind() Kind {
	if n.Of {
		return KindForOf
	}
	return KindForIn
}

func (n *BlockStatement) Children() []Node {
	out := make([]Node, 0, len(n.List))
	for _, s := range n.List {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (n *IfStatement) Children() []Node {
	return nodes(n.Test, n.Consequent, n.Alternate)
}

func (n *WhileStatement) Children() []Node   { return nodes(n.Test, n.Body) }
func (n *DoWhileStatement) Children() []Node { return nodes(n.Body, n.Test) }

func (n *ForStatement) Children() []Node {
	return nodes(n.Initializer, n.Test, n.Update, n.Body)
}

func (n *ForInStatement) Children() []Node { return nodes(n.Left, n.Right, n.Body) }

func (n *LabelledStatement) Children() []Node {
	if n.Label == nil {
		return nodes(n.Body)
	}
	return nodes(n.Label, n.Body)
}

func (n *ReturnStatement) Children() []Node     { return nodes(n.Argument) }
func (n *ThrowStatement) Children() []Node      { return nodes(n.Argument) }
func (n *WithStatement) Children() []Node       { return nodes(n.Object, n.Body) }
func (n *ExpressionStatement) Children() []Node { return nodes(n.Expression) }
func (*EmptyStatement) Children() []Node        { return nil }

func (*BlockStatement) _stmt()      {}
func (*IfStatement) _stmt()         {}
func (*WhileStatement) _stmt()      {}
func (*DoWhileStatement) _stmt()    {}
func (*ForStatement) _stmt()        {}
func (*ForInStatement) _stmt()      {}
func (*LabelledStatement) _stmt()   {}
func (*ReturnStatement) _stmt()     {}
func (*ThrowStatement) _stmt()      {}
func (*WithStatement) _stmt()       {}
func (*ExpressionStatement) _stmt() {}
func (*EmptyStatement) _stmt()      {}
