package ast

// ConditionBearer is implemented by nodes with a controlling condition:
// if, while, do-while and for statements and conditional expressions.
type ConditionBearer interface {
	Node
	// Condition returns nil when the condition is omitted, as in `for (;;)`.
	Condition() Expr
}

// ExpressionBearer is implemented by statements wrapping a single
// expression: return, throw and with.
type ExpressionBearer interface {
	Node
	Expression() Expr
}

// BodyBearer is implemented by statements owning a body statement: loops,
// labelled statements and with statements.
type BodyBearer interface {
	Node
	BodyStmt() Stmt
}

func (n *IfStatement) Condition() Expr           { return n.Test }
func (n *WhileStatement) Condition() Expr        { return n.Test }
func (n *DoWhileStatement) Condition() Expr      { return n.Test }
func (n *ForStatement) Condition() Expr          { return n.Test }
func (n *ConditionalExpression) Condition() Expr { return n.Test }

func (n *ReturnStatement) Expression() Expr { return n.Argument }
func (n *ThrowStatement) Expression() Expr  { return n.Argument }
func (n *WithStatement) Expression() Expr   { return n.Object }

func (n *WhileStatement) BodyStmt() Stmt    { return n.Body }
func (n *DoWhileStatement) BodyStmt() Stmt  { return n.Body }
func (n *ForStatement) BodyStmt() Stmt      { return n.Body }
func (n *ForInStatement) BodyStmt() Stmt    { return n.Body }
func (n *LabelledStatement) BodyStmt() Stmt { return n.Body }
func (n *WithStatement) BodyStmt() Stmt     { return n.Body }

// Then returns the statement run when the condition holds.
func (n *IfStatement) Then() Stmt { return n.Consequent }

// Else returns the else branch, or nil.
func (n *IfStatement) Else() Stmt { return n.Alternate }

// Statements returns the statements of the block in source order.
func (n *BlockStatement) Statements() []Stmt { return n.List }

var (
	_ ConditionBearer = (*IfStatement)(nil)
	_ ConditionBearer = (*WhileStatement)(nil)
	_ ConditionBearer = (*DoWhileStatement)(nil)
	_ ConditionBearer = (*ForStatement)(nil)
	_ ConditionBearer = (*ConditionalExpression)(nil)

	_ ExpressionBearer = (*ReturnStatement)(nil)
	_ ExpressionBearer = (*ThrowStatement)(nil)
	_ ExpressionBearer = (*WithStatement)(nil)

	_ BodyBearer = (*WhileStatement)(nil)
	_ BodyBearer = (*DoWhileStatement)(nil)
	_ BodyBearer = (*ForStatement)(nil)
	_ BodyBearer = (*ForInStatement)(nil)
	_ BodyBearer = (*LabelledStatement)(nil)
	_ BodyBearer = (*WithStatement)(nil)

	_ Literal = (*BooleanLiteral)(nil)
	_ Literal = (*NumberLiteral)(nil)
	_ Literal = (*StringLiteral)(nil)
	_ Literal = (*NullLiteral)(nil)
)
