package lints

import (
	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
)

var EmptyBlockMatcher = matcher.CompoundStatement(
	matcher.StatementCountIs(0),
	matcher.Unless(matcher.HasParent(functionKinds)),
)

// DetectEmptyBlock reports empty blocks. Function bodies and blocks holding
// a comment are allowed.
func DetectEmptyBlock(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error) {
	return detect("empty-block", EmptyBlockMatcher, filename, prog, severity,
		"empty block",
		func(prog *ast.Program, res matcher.Result, _ *tt.Issue) bool {
			return !hasComment(prog, res.Node)
		})
}

func hasComment(prog *ast.Program, n ast.Node) bool {
	for _, c := range prog.Comments {
		if c.From >= n.Idx0() && c.To <= n.Idx1() {
			return true
		}
	}
	return false
}
