package lints

import (
	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
)

// Matches the if statement owning the last `else if` of a chain; the issue
// is reported on that `else if`.
var ElseIfWithoutElseMatcher = matcher.IfStatement(
	matcher.HasElseClause(matcher.CaptureAs("last", matcher.IfStatement(
		matcher.Unless(matcher.HasElseClause(matcher.Anything())),
	))),
)

func DetectElseIfWithoutElse(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error) {
	const rule = "else-if-without-else"

	results, err := matcher.Find(ElseIfWithoutElseMatcher, prog)
	if err != nil {
		return nil, err
	}

	issues := make([]tt.Issue, 0, len(results))
	for _, res := range results {
		last := first(res.Named("last"))
		if last == nil {
			continue
		}
		issue := NewIssue(rule, filename, prog, last, severity, "`if ... else if` chain should end with an else clause")
		issue.Note = "add a final else, even if it only documents why nothing happens"
		issues = append(issues, issue)
	}
	return issues, nil
}
