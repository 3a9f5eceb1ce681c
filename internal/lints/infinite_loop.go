package lints

import (
	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
)

// A break inside a nested loop or switch also counts as an exit.
var InfiniteLoopMatcher = matcher.AllOf(
	matcher.AnyOf(
		matcher.WhileStatement(matcher.HasCondition(matcher.BoolLiteral(matcher.EqualTo(true)))),
		matcher.DoWhileStatement(matcher.HasCondition(matcher.BoolLiteral(matcher.EqualTo(true)))),
		matcher.ForStatement(matcher.Unless(matcher.HasCondition(matcher.Anything()))),
	),
	matcher.Unless(matcher.HasDescendant(exits)),
)

func DetectInfiniteLoop(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error) {
	return detect("infinite-loop", InfiniteLoopMatcher, filename, prog, severity,
		"loop never terminates: no break, return or throw in its body", nil)
}
