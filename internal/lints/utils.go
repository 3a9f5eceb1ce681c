package lints

import (
	"go/token"

	"github.com/gnolang/jsmatch/ast"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
)

// Position converts an offset in prog into a position within filename.
func Position(filename string, prog *ast.Program, idx ast.Idx) token.Position {
	p := prog.Position(idx)
	return token.Position{
		Filename: filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}

// NewIssue builds an issue spanning n. End points at the last byte of n.
func NewIssue(rule, filename string, prog *ast.Program, n ast.Node, severity tt.Severity, message string) tt.Issue {
	last := n.Idx1() - 1
	if last < n.Idx0() {
		last = n.Idx0()
	}
	return tt.Issue{
		Rule:     rule,
		Filename: filename,
		Message:  message,
		Start:    Position(filename, prog, n.Idx0()),
		End:      Position(filename, prog, last),
		Severity: severity,
	}
}

// reporter fills in the details of an issue for one match. Returning false
// drops the match.
type reporter func(prog *ast.Program, res matcher.Result, issue *tt.Issue) bool

// detect runs m over prog and turns every match into an issue.
func detect(
	rule string,
	m matcher.Matcher,
	filename string,
	prog *ast.Program,
	severity tt.Severity,
	message string,
	report reporter,
) ([]tt.Issue, error) {
	results, err := matcher.Find(m, prog)
	if err != nil {
		return nil, err
	}

	issues := make([]tt.Issue, 0, len(results))
	for _, res := range results {
		issue := NewIssue(rule, filename, prog, res.Node, severity, message)
		if report != nil && !report(prog, res, &issue) {
			continue
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// loop matches every loop statement.
func loop(refinements ...matcher.Matcher) matcher.Matcher {
	return matcher.AllOf(
		matcher.AnyOf(
			matcher.WhileStatement(),
			matcher.DoWhileStatement(),
			matcher.ForStatement(),
			matcher.ForInStatement(),
			matcher.ForOfStatement(),
		),
		matcher.AllOf(refinements...),
	)
}

// functionKinds matches the grammar nodes that own a function body.
var functionKinds = matcher.AnyOf(
	matcher.Node("function_declaration"),
	matcher.Node("function_expression"),
	matcher.Node("function"),
	matcher.Node("arrow_function"),
	matcher.Node("method_definition"),
	matcher.Node("generator_function_declaration"),
	matcher.Node("generator_function"),
)

// exits matches statements that leave a loop.
var exits = matcher.AnyOf(
	matcher.Node("break_statement"),
	matcher.Node(ast.KindReturn),
	matcher.Node(ast.KindThrow),
)

// wrap parenthesizes operator expressions so they can be embedded in a
// larger expression.
func wrap(prog *ast.Program, n ast.Node) string {
	text := prog.Text(n)
	switch n.Kind() {
	case ast.KindBinary, ast.KindConditional, "sequence_expression":
		return "(" + text + ")"
	}
	return text
}

func first(nodes []ast.Node) ast.Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}
