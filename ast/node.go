package ast

// Idx is a byte offset into the JavaScript source.
type Idx int

// Kind is the discriminating tag of a node.
//
// Kinds modelled by this package use the dashed names below. Grammar
// constructs without a dedicated type are kept as *Other nodes whose kind is
// the raw grammar name (e.g. "function_declaration").
type Kind string

const (
	KindProgram             Kind = "program"
	KindBlock               Kind = "block"
	KindIf                  Kind = "if-statement"
	KindWhile               Kind = "while-statement"
	KindDoWhile             Kind = "do-while-statement"
	KindFor                 Kind = "for-statement"
	KindForIn               Kind = "for-in-statement"
	KindForOf               Kind = "for-of-statement"
	KindLabelled            Kind = "labelled-statement"
	KindReturn              Kind = "return-statement"
	KindThrow               Kind = "throw-statement"
	KindWith                Kind = "with-statement"
	KindExpressionStatement Kind = "expression-statement"
	KindEmpty               Kind = "empty-statement"
	KindBinary              Kind = "binary-operator"
	KindConditional         Kind = "conditional-expression"
	KindParenthesized       Kind = "parenthesized-expression"
	KindIdentifier          Kind = "identifier"
	KindBoolean             Kind = "boolean-literal"
	KindNumber              Kind = "number-literal"
	KindString              Kind = "string-literal"
	KindNull                Kind = "null-literal"
)

// Node is implemented by every element of the syntax tree.
type Node interface {
	Kind() Kind
	// Idx0 returns the offset of the first byte belonging to the node.
	Idx0() Idx
	// Idx1 returns the offset of the first byte immediately after the node.
	Idx1() Idx
	// Parent returns the enclosing node, or nil for the root.
	Parent() Node
	// Children returns the direct children in source order.
	Children() []Node
}

// All statement nodes implement the Stmt interface.
type Stmt interface {
	Node
	_stmt()
}

// All expression nodes implement the Expr interface.
type Expr interface {
	Node
	_expr()
}

// Span is the source range of a node.
type Span struct {
	From Idx
	To   Idx
}

func (s Span) Idx0() Idx { return s.From }
func (s Span) Idx1() Idx { return s.To }

// link holds the back-reference to the parent. It is filled by SetParents and
// never owns the parent.
type link struct {
	parent Node
}

func (l *link) Parent() Node { return l.parent }

func (l *link) setParent(p Node) { l.parent = p }

type parentSetter interface {
	setParent(Node)
}

// nodes collects the non-nil entries of list.
func nodes(list ...Node) []Node {
	out := make([]Node, 0, len(list))
	for _, n := range list {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Other is any grammar construct without a dedicated node type. Its kind is
// the grammar type name.
type Other struct {
	Span
	link
	Type string
	List []Node
}

func (n *Other) Kind() Kind       { return Kind(n.Type) }
func (n *Other) Children() []Node { return nodes(n.List...) }
func (*Other) _stmt()             {}
func (*Other) _expr()             {}
