package lints

import (
	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
)

// an if statement without else
var loneIf = matcher.IfStatement(matcher.Unless(matcher.HasElseClause(matcher.Anything())))

var CollapsibleIfMatcher = matcher.IfStatement(
	matcher.Unless(matcher.HasElseClause(matcher.Anything())),
	matcher.HasThenClause(matcher.AnyOf(
		matcher.CaptureAs("inner", loneIf),
		matcher.CompoundStatement(
			matcher.StatementCountIs(1),
			matcher.Has(matcher.CaptureAs("inner", loneIf)),
		),
	)),
)

// DetectCollapsibleIf reports if statements whose only content is another
// if statement, both without else, which can be merged with &&.
func DetectCollapsibleIf(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error) {
	return detect("collapsible-if", CollapsibleIfMatcher, filename, prog, severity,
		"this if statement can be merged with the enclosed one",
		func(prog *ast.Program, res matcher.Result, issue *tt.Issue) bool {
			outer := res.Node.(*ast.IfStatement)
			inner, ok := first(res.Named("inner")).(*ast.IfStatement)
			if !ok {
				return true
			}
			issue.Suggestion = "if (" + wrap(prog, outer.Condition()) + " && " + wrap(prog, inner.Condition()) + ") " +
				prog.Text(inner.Then())
			return true
		})
}
