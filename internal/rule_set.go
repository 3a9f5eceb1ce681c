package internal

import (
	"fmt"
	"strings"

	"github.com/gnolang/jsmatch/ast"
	"github.com/gnolang/jsmatch/internal/lints"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/matcher"
)

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given program and returns a slice of Issues.
	Check(filename string, prog *ast.Program) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)

	// Matcher returns the tree pattern the rule reports on.
	Matcher() matcher.Matcher
}

type detectFunc func(filename string, prog *ast.Program, severity tt.Severity) ([]tt.Issue, error)

// builtinRule wraps a detector of the lints package.
type builtinRule struct {
	name     string
	pattern  matcher.Matcher
	detect   detectFunc
	severity tt.Severity
}

func (r *builtinRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	return r.detect(filename, prog, r.severity)
}

func (r *builtinRule) Name() string              { return r.name }
func (r *builtinRule) Severity() tt.Severity     { return r.severity }
func (r *builtinRule) SetSeverity(s tt.Severity) { r.severity = s }
func (r *builtinRule) Matcher() matcher.Matcher  { return r.pattern }

func newBuiltin(name string, pattern matcher.Matcher, detect detectFunc, severity tt.Severity) ruleConstructor {
	return func() LintRule {
		return &builtinRule{name: name, pattern: pattern, detect: detect, severity: severity}
	}
}

var (
	NewCollapsibleIfRule = newBuiltin("collapsible-if",
		lints.CollapsibleIfMatcher, lints.DetectCollapsibleIf, tt.SeverityWarning)
	NewConstantConditionRule = newBuiltin("constant-condition",
		lints.ConstantConditionMatcher, lints.DetectConstantCondition, tt.SeverityWarning)
	NewAssignmentInConditionRule = newBuiltin("assignment-in-condition",
		lints.AssignmentInConditionMatcher, lints.DetectAssignmentInCondition, tt.SeverityError)
	NewCurlyBracesRule = newBuiltin("curly-braces",
		lints.CurlyBracesMatcher, lints.DetectCurlyBraces, tt.SeverityInfo)
	NewElseIfWithoutElseRule = newBuiltin("else-if-without-else",
		lints.ElseIfWithoutElseMatcher, lints.DetectElseIfWithoutElse, tt.SeverityOff)
	NewEmptyBlockRule = newBuiltin("empty-block",
		lints.EmptyBlockMatcher, lints.DetectEmptyBlock, tt.SeverityWarning)
	NewLabelPlacementRule = newBuiltin("label-placement",
		lints.LabelPlacementMatcher, lints.DetectLabelPlacement, tt.SeverityWarning)
	NewReturnAssignRule = newBuiltin("return-assign",
		lints.ReturnAssignMatcher, lints.DetectReturnAssign, tt.SeverityError)
	NewNestedConditionalRule = newBuiltin("nested-conditional",
		lints.NestedConditionalMatcher, lints.DetectNestedConditional, tt.SeverityInfo)
	NewInfiniteLoopRule = newBuiltin("infinite-loop",
		lints.InfiniteLoopMatcher, lints.DetectInfiniteLoop, tt.SeverityError)
)

// MatchRule is a user defined rule built from a matcher expression.
type MatchRule struct {
	name     string
	message  string
	pattern  matcher.Matcher
	severity tt.Severity
}

// NewMatchRule compiles the `match` expression of a configured rule.
func NewMatchRule(name string, cfg tt.ConfigRule) (*MatchRule, error) {
	m, err := matcher.Parse(cfg.Match)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}
	message := cfg.Message
	if message == "" {
		message = "matches " + m.String()
	}
	return &MatchRule{name: name, message: message, pattern: m, severity: cfg.Severity}, nil
}

func (r *MatchRule) Check(filename string, prog *ast.Program) ([]tt.Issue, error) {
	results, err := matcher.Find(r.pattern, prog)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", r.name, err)
	}

	issues := make([]tt.Issue, 0, len(results))
	for _, res := range results {
		issue := lints.NewIssue(r.name, filename, prog, res.Node, r.severity, r.message)
		issue.Category = "custom"
		issue.Note = describeCaptures(prog, res.Captures)
		issues = append(issues, issue)
	}
	return issues, nil
}

func (r *MatchRule) Name() string              { return r.name }
func (r *MatchRule) Severity() tt.Severity     { return r.severity }
func (r *MatchRule) SetSeverity(s tt.Severity) { r.severity = s }
func (r *MatchRule) Matcher() matcher.Matcher  { return r.pattern }

// describeCaptures renders captures as `name: text` pairs, one per line.
func describeCaptures(prog *ast.Program, captures []matcher.CapturedNode) string {
	if len(captures) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, c := range captures {
		if i > 0 {
			sb.WriteByte('\n')
		}
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("$%d", i)
		}
		text, _, _ := strings.Cut(prog.Text(c.Node), "\n")
		fmt.Fprintf(&sb, "%s: %s", name, text)
	}
	return sb.String()
}
