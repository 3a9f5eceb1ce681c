package lints

import (
	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
)

var unbraced = matcher.Unless(matcher.CompoundStatement())

var (
	unbracedLoopBody = loop(matcher.HasBody(matcher.CaptureAs("body", unbraced)))
	unbracedThen     = matcher.IfStatement(matcher.HasThenClause(matcher.CaptureAs("body", unbraced)))
	// `else if` chains are not reported.
	unbracedElse = matcher.IfStatement(matcher.HasElseClause(matcher.CaptureAs("body",
		matcher.Unless(matcher.AnyOf(matcher.CompoundStatement(), matcher.IfStatement())))))
)

// CurlyBracesMatcher matches statements with at least one unbraced body.
// DetectCurlyBraces reports every such body separately.
var CurlyBracesMatcher = matcher.AnyOf(unbracedLoopBody, unbracedThen, unbracedElse)

func DetectCurlyBraces(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, m := range []matcher.Matcher{unbracedLoopBody, unbracedThen, unbracedElse} {
		found, err := detect("curly-braces", m, filename, prog, severity,
			"statement body should be enclosed in curly braces", atBody)
		if err != nil {
			return nil, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

// atBody moves the issue onto the captured body and suggests its braced
// form.
func atBody(prog *ast.Program, res matcher.Result, issue *tt.Issue) bool {
	body := first(res.Named("body"))
	if body == nil {
		return true
	}
	span := NewIssue(issue.Rule, issue.Filename, prog, body, issue.Severity, issue.Message)
	issue.Start, issue.End = span.Start, span.End
	issue.Suggestion = "{ " + prog.Text(body) + " }"
	return true
}
