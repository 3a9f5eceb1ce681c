package lints

import (
	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
	"github.com/gnolang/jsmatch/token"
)

var ReturnAssignMatcher = matcher.Node(ast.KindReturn,
	matcher.HasExpression(matcher.BinaryOperator(matcher.HasOperator(token.Assign))),
)

func DetectReturnAssign(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error) {
	return detect("return-assign", ReturnAssignMatcher, filename, prog, severity,
		"return statement should not contain an assignment",
		func(prog *ast.Program, res matcher.Result, issue *tt.Issue) bool {
			bin := res.Node.(ast.ExpressionBearer).Expression().(*ast.BinaryExpression)
			issue.Suggestion = prog.Text(bin) + ";\nreturn " + prog.Text(bin.Left) + ";"
			return true
		})
}
