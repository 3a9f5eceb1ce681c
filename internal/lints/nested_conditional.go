package lints

import (
	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
)

var NestedConditionalMatcher = matcher.Node(ast.KindConditional,
	matcher.HasAncestor(matcher.Node(ast.KindConditional)),
)

func DetectNestedConditional(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error) {
	return detect("nested-conditional", NestedConditionalMatcher, filename, prog, severity,
		"conditional expressions should not be nested",
		func(_ *ast.Program, _ matcher.Result, issue *tt.Issue) bool {
			issue.Note = "extract the inner conditional into a variable or use if statements"
			return true
		})
}
