package lints

import (
	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
	"github.com/gnolang/jsmatch/token"
)

// Wrapping the assignment in an extra pair of parentheses marks it as
// intended: the condition is then a parenthesized-expression.
var AssignmentInConditionMatcher = matcher.AllOf(
	matcher.AnyOf(
		matcher.IfStatement(),
		matcher.WhileStatement(),
		matcher.DoWhileStatement(),
		matcher.ForStatement(),
		matcher.Node(ast.KindConditional),
	),
	matcher.HasCondition(matcher.BinaryOperator(assignment())),
)

func assignment() matcher.Matcher {
	ops := token.AssignmentOperators()
	ms := make([]matcher.Matcher, 0, len(ops))
	for _, op := range ops {
		ms = append(ms, matcher.HasOperator(op))
	}
	return matcher.AnyOf(ms...)
}

func DetectAssignmentInCondition(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error) {
	return detect("assignment-in-condition", AssignmentInConditionMatcher, filename, prog, severity,
		"assignment used as a condition",
		func(prog *ast.Program, res matcher.Result, issue *tt.Issue) bool {
			cond := res.Node.(ast.ConditionBearer).Condition()
			bin := cond.(*ast.BinaryExpression)
			if bin.Operator == token.Assign {
				issue.Suggestion = prog.Text(bin.Left) + " === " + prog.Text(bin.Right)
			}
			issue.Note = "wrap the assignment in parentheses if it is intended"
			return true
		})
}
