package lints

import (
	"math"

	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
)

var literal = matcher.AnyOf(
	matcher.Node(ast.KindBoolean),
	matcher.Node(ast.KindNumber),
	matcher.Node(ast.KindString),
	matcher.Node(ast.KindNull),
)

// Loops on a literal are left to infinite-loop.
var ConstantConditionMatcher = matcher.AllOf(
	matcher.AnyOf(matcher.IfStatement(), matcher.Node(ast.KindConditional)),
	matcher.HasCondition(matcher.CaptureAs("literal", literal)),
)

func DetectConstantCondition(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error) {
	return detect("constant-condition", ConstantConditionMatcher, filename, prog, severity,
		"condition is a constant",
		func(prog *ast.Program, res matcher.Result, issue *tt.Issue) bool {
			lit, ok := first(res.Named("literal")).(ast.Literal)
			if !ok {
				return true
			}
			if truthy(lit.LiteralValue()) {
				issue.Message = "condition is always truthy"
			} else {
				issue.Message = "condition is always falsy"
			}
			issue.Note = "remove the dead branch or use a real condition"
			return true
		})
}

// truthy applies JavaScript's ToBoolean to a decoded literal value.
func truthy(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		return v != ""
	}
	return false
}
