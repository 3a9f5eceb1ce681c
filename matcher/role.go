package matcher

import (
	"fmt"
	"strconv"

	"github.com/gnolang/jsmatch/ast"
)

// roleMatcher applies inner to the node returned by get, when the candidate
// implements C and the role is present.
type roleMatcher[C any] struct {
	name  string
	get   func(C) ast.Node
	inner Matcher
}

func (m *roleMatcher[C]) Match(ev *Evaluation, n ast.Node) (bool, error) {
	c, ok := n.(C)
	if !ok {
		return false, nil
	}
	child := m.get(c)
	if child == nil {
		return false, nil
	}
	return ev.Eval(m.inner, child)
}

func (m *roleMatcher[C]) String() string { return render(m.name, m.inner.String()) }

// HasCondition matches nodes whose condition matches m: if, while, do-while
// and for statements and conditional expressions.
func HasCondition(m Matcher) Matcher {
	return &roleMatcher[ast.ConditionBearer]{
		name:  "hasCondition",
		get:   func(c ast.ConditionBearer) ast.Node { return c.Condition() },
		inner: m,
	}
}

// HasExpression matches return, throw and with statements whose expression
// matches m.
func HasExpression(m Matcher) Matcher {
	return &roleMatcher[ast.ExpressionBearer]{
		name:  "hasExpression",
		get:   func(c ast.ExpressionBearer) ast.Node { return c.Expression() },
		inner: m,
	}
}

// HasBody matches loops, labelled statements and with statements whose body
// matches m.
func HasBody(m Matcher) Matcher {
	return &roleMatcher[ast.BodyBearer]{
		name:  "hasBody",
		get:   func(c ast.BodyBearer) ast.Node { return c.BodyStmt() },
		inner: m,
	}
}

func HasThenClause(m Matcher) Matcher {
	return &roleMatcher[*ast.IfStatement]{
		name:  "hasThenClause",
		get:   func(c *ast.IfStatement) ast.Node { return c.Then() },
		inner: m,
	}
}

// HasElseClause matches if statements with an else branch matching m.
func HasElseClause(m Matcher) Matcher {
	return &roleMatcher[*ast.IfStatement]{
		name:  "hasElseClause",
		get:   func(c *ast.IfStatement) ast.Node { return c.Else() },
		inner: m,
	}
}

type statementCount struct {
	n int
}

// StatementCountIs matches blocks holding exactly n statements. A negative
// n makes evaluation fail with ErrInvalidMatcher.
func StatementCountIs(n int) Matcher { return &statementCount{n: n} }

func (m *statementCount) Match(_ *Evaluation, n ast.Node) (bool, error) {
	if m.n < 0 {
		return false, fmt.Errorf("statementCountIs(%d): %w", m.n, ErrInvalidMatcher)
	}
	block, ok := n.(*ast.BlockStatement)
	if !ok {
		return false, nil
	}
	return len(block.Statements()) == m.n, nil
}

func (m *statementCount) String() string {
	return render("statementCountIs", strconv.Itoa(m.n))
}
