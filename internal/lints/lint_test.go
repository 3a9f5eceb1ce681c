package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/parser"
)

type detector func(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error)

type lintCase struct {
	name     string
	code     string
	expected int
}

func runDetector(t *testing.T, detect detector, rule string, tests []lintCase) {
	t.Helper()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			prog, err := parser.ParseFile(tc.code)
			require.NoError(t, err)

			issues, err := detect("test.js", prog, tt.SeverityWarning)
			require.NoError(t, err)
			assert.Len(t, issues, tc.expected, "issues: %v", issues)

			for _, issue := range issues {
				assert.Equal(t, rule, issue.Rule)
				assert.Equal(t, "test.js", issue.Filename)
				assert.Equal(t, tt.SeverityWarning, issue.Severity)
				assert.Positive(t, issue.Start.Line)
				assert.GreaterOrEqual(t, issue.End.Offset, issue.Start.Offset)
			}
		})
	}
}

func detectOne(t *testing.T, detect detector, code string) tt.Issue {
	t.Helper()

	prog, err := parser.ParseFile(code)
	require.NoError(t, err)
	issues, err := detect("test.js", prog, tt.SeverityError)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	return issues[0]
}

func TestDetectCollapsibleIf(t *testing.T) {
	t.Parallel()

	runDetector(t, DetectCollapsibleIf, "collapsible-if", []lintCase{
		{"unbraced", "if (a) if (b) c();", 1},
		{"braced", "if (a) {\n  if (b) {\n    c();\n  }\n}", 1},
		{"chain of three", "if (a) if (b) if (c) d();", 2},
		{"sibling statement", "if (a) { if (b) c(); d(); }", 0},
		{"inner else", "if (a) { if (b) c(); else d(); }", 0},
		{"outer else", "if (a) { if (b) c(); } else e();", 0},
		{"plain if", "if (a) b();", 0},
	})
}

func TestCollapsibleIfSuggestion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{"if (a) if (b) c();", "if (a && b) c();"},
		{"if (a) { if (b) { c(); } }", "if (a && b) { c(); }"},
		{"if (a || x) { if (b) c(); }", "if ((a || x) && b) c();"},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			t.Parallel()
			issue := detectOne(t, DetectCollapsibleIf, tc.code)
			assert.Equal(t, tc.want, issue.Suggestion)
			assert.Equal(t, 1, issue.Start.Line)
			assert.Equal(t, 1, issue.Start.Column)
		})
	}
}

func TestDetectConstantCondition(t *testing.T) {
	t.Parallel()

	runDetector(t, DetectConstantCondition, "constant-condition", []lintCase{
		{"true", "if (true) a();", 1},
		{"number", "if (1) a();", 1},
		{"null", "if (null) a();", 1},
		{"empty string", `if ("") a();`, 1},
		{"conditional", "x = 0 ? a : b;", 1},
		{"identifier", "if (x) a();", 0},
		{"comparison", "if (x === 1) a();", 0},
		{"loops are ignored", "while (true) { break; }", 0},
	})
}

func TestConstantConditionMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{"if (true) a();", "condition is always truthy"},
		{"if (false) a();", "condition is always falsy"},
		{"if (0) a();", "condition is always falsy"},
		{`if ("x") a();`, "condition is always truthy"},
		{"if (null) a();", "condition is always falsy"},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			t.Parallel()
			issue := detectOne(t, DetectConstantCondition, tc.code)
			assert.Equal(t, tc.want, issue.Message)
			assert.NotEmpty(t, issue.Note)
		})
	}
}

func TestDetectAssignmentInCondition(t *testing.T) {
	t.Parallel()

	runDetector(t, DetectAssignmentInCondition, "assignment-in-condition", []lintCase{
		{"if", "if (a = b) c();", 1},
		{"while compound", "while (x += 1) {}", 1},
		{"do while", "do {} while (a = b);", 1},
		{"for", "for (; a = next(); ) {}", 1},
		{"double parentheses", "if ((a = b)) c();", 0},
		{"comparison", "if (a === b) c();", 0},
		{"assignment in body", "if (a) b = c;", 0},
	})

	issue := detectOne(t, DetectAssignmentInCondition, "if (a = b) c();")
	assert.Equal(t, "a === b", issue.Suggestion)
}

func TestDetectCurlyBraces(t *testing.T) {
	t.Parallel()

	runDetector(t, DetectCurlyBraces, "curly-braces", []lintCase{
		{"if then", "if (a) b();", 1},
		{"if else", "if (a) { b(); } else c();", 1},
		{"both branches", "if (a) b(); else c();", 2},
		{"else if chain", "if (a) {} else if (b) {} else {}", 0},
		{"while", "while (a) b();", 1},
		{"for of", "for (const x of xs) f(x);", 1},
		{"braced for", "for (;;) {}", 0},
	})

	issue := detectOne(t, DetectCurlyBraces, "while (a) b();")
	assert.Equal(t, "{ b(); }", issue.Suggestion)
	assert.Equal(t, 11, issue.Start.Column)
}

func TestDetectCurlyBracesReportsEachBranch(t *testing.T) {
	t.Parallel()

	prog, err := parser.ParseFile("if (a) b(); else c();")
	require.NoError(t, err)

	issues, err := DetectCurlyBraces("test.js", prog, tt.SeverityInfo)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, "{ b(); }", issues[0].Suggestion)
	assert.Equal(t, 8, issues[0].Start.Column)
	assert.Equal(t, "{ c(); }", issues[1].Suggestion)
	assert.Equal(t, 18, issues[1].Start.Column)
}

func TestDetectElseIfWithoutElse(t *testing.T) {
	t.Parallel()

	runDetector(t, DetectElseIfWithoutElse, "else-if-without-else", []lintCase{
		{"missing else", "if (a) {} else if (b) {}", 1},
		{"long chain", "if (a) {} else if (b) {} else if (c) {}", 1},
		{"terminated", "if (a) {} else if (b) {} else {}", 0},
		{"plain if", "if (a) {}", 0},
		{"plain else", "if (a) {} else {}", 0},
	})

	issue := detectOne(t, DetectElseIfWithoutElse, "if (a) {} else if (b) {}")
	assert.Equal(t, 1, issue.Start.Line)
	assert.Equal(t, 16, issue.Start.Column)
}

func TestDetectEmptyBlock(t *testing.T) {
	t.Parallel()

	runDetector(t, DetectEmptyBlock, "empty-block", []lintCase{
		{"if", "if (a) {}", 1},
		{"while", "while (a) {}", 1},
		{"function body", "function f() {}", 0},
		{"arrow body", "const f = () => {};", 0},
		{"method body", "class A { m() {} }", 0},
		{"commented", "if (a) { /* nothing to do */ }", 0},
		{"non empty", "if (a) { b(); }", 0},
	})
}

func TestDetectLabelPlacement(t *testing.T) {
	t.Parallel()

	runDetector(t, DetectLabelPlacement, "label-placement", []lintCase{
		{"for", "outer: for (;;) { break outer; }", 0},
		{"while", "a: while (x) {}", 0},
		{"block", "lbl: { break lbl; }", 1},
		{"expression", "lbl: x = 1;", 1},
	})
}

func TestDetectReturnAssign(t *testing.T) {
	t.Parallel()

	runDetector(t, DetectReturnAssign, "return-assign", []lintCase{
		{"assignment", "function f() { return a = b; }", 1},
		{"comparison", "function f() { return a === b; }", 0},
		{"parenthesized", "function f() { return (a = b); }", 0},
		{"compound", "function f() { return a += 1; }", 0},
		{"bare return", "function f() { return; }", 0},
	})

	issue := detectOne(t, DetectReturnAssign, "function f() { return a = b; }")
	assert.Equal(t, "a = b;\nreturn a;", issue.Suggestion)
}

func TestDetectNestedConditional(t *testing.T) {
	t.Parallel()

	runDetector(t, DetectNestedConditional, "nested-conditional", []lintCase{
		{"flat", "x = a ? b : c;", 0},
		{"in consequent", "x = a ? (b ? 1 : 2) : 3;", 1},
		{"in alternate", "x = a ? b : c ? d : e;", 1},
		{"both branches", "x = a ? (b ? 1 : 2) : (c ? 3 : 4);", 2},
	})
}

func TestDetectInfiniteLoop(t *testing.T) {
	t.Parallel()

	runDetector(t, DetectInfiniteLoop, "infinite-loop", []lintCase{
		{"while true", "while (true) {}", 1},
		{"while true with break", "while (true) { if (x) break; }", 0},
		{"for without test", "for (;;) {}", 1},
		{"for with throw", "for (;;) { throw e; }", 0},
		{"for with return", "function f() { for (;;) { if (x) return; } }", 0},
		{"do while true", "do { x(); } while (true);", 1},
		{"while false", "while (false) {}", 0},
		{"while identifier", "while (x) {}", 0},
	})
}

func TestNewIssueSpan(t *testing.T) {
	t.Parallel()

	prog, err := parser.ParseFile("a();\nif (b) c();\n")
	require.NoError(t, err)

	stmt := prog.Body[1]
	issue := NewIssue("rule", "f.js", prog, stmt, tt.SeverityInfo, "msg")
	assert.Equal(t, 2, issue.Start.Line)
	assert.Equal(t, 1, issue.Start.Column)
	assert.Equal(t, 2, issue.End.Line)
	assert.Equal(t, 11, issue.End.Column)
	assert.Equal(t, "f.js", issue.Start.Filename)
}
