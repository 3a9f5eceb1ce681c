package internal

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gnolang/jsmatch/ast"
	"github.com/gnolang/jsmatch/internal/nolint"
	tt "github.com/gnolang/jsmatch/internal/types"
	"github.com/gnolang/jsmatch/parser"
)

// SyntaxErrorRule names the issues reported for unparsable regions.
const SyntaxErrorRule = "syntax-error"

// Engine manages the linting process.
type Engine struct {
	rootDir      string
	parser       *parser.Parser
	ignoredRules map[string]bool
	ignoredPaths []string
	rules        map[string]LintRule
	cache        *Cache
}

// NewEngine creates a new lint engine. Configured rules that are not
// built in are compiled from their match expression.
func NewEngine(rootDir string, rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{
		rootDir: rootDir,
		parser:  parser.New(),
	}
	if err := engine.applyRules(rules); err != nil {
		return nil, err
	}
	return engine, nil
}

type ruleConstructor func() LintRule

type ruleMap map[string]ruleConstructor

var allRuleConstructors = ruleMap{
	"collapsible-if":          NewCollapsibleIfRule,
	"constant-condition":      NewConstantConditionRule,
	"assignment-in-condition": NewAssignmentInConditionRule,
	"curly-braces":            NewCurlyBracesRule,
	"else-if-without-else":    NewElseIfWithoutElseRule,
	"empty-block":             NewEmptyBlockRule,
	"label-placement":         NewLabelPlacementRule,
	"return-assign":           NewReturnAssignRule,
	"nested-conditional":      NewNestedConditionalRule,
	"infinite-loop":           NewInfiniteLoopRule,
}

// BuiltinRules returns a fresh instance of every built-in rule, sorted by
// name, with its default severity.
func BuiltinRules() []LintRule {
	out := make([]LintRule, 0, len(allRuleConstructors))
	for _, newRule := range allRuleConstructors {
		out = append(out, newRule())
	}
	slices.SortFunc(out, func(a, b LintRule) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) error {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	var errs []error
	for key, rule := range rules {
		if r := e.findRule(key); r != nil {
			if rule.Severity == tt.SeverityOff {
				e.IgnoreRule(key)
			}
			r.SetSeverity(rule.Severity)
			continue
		}

		if newRule := allRuleConstructors[key]; newRule != nil {
			if rule.Severity == tt.SeverityOff {
				continue
			}
			r := newRule()
			r.SetSeverity(rule.Severity)
			e.rules[key] = r
			continue
		}

		if rule.Match == "" {
			// unknown rule without a pattern
			continue
		}
		custom, err := NewMatchRule(key, rule)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if rule.Severity != tt.SeverityOff {
			e.rules[key] = custom
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) registerDefaultRules() {
	for key, newRule := range allRuleConstructors {
		r := newRule()
		if r.Severity() != tt.SeverityOff {
			e.rules[key] = r
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// Rules returns the active rules sorted by name.
func (e *Engine) Rules() []LintRule {
	out := make([]LintRule, 0, len(e.rules))
	for name, r := range e.rules {
		if !e.ignoredRules[name] {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b LintRule) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}

// SetCache makes Run reuse the results stored in c. It must be called once
// the rules are configured: results cached for another rule set are
// discarded.
func (e *Engine) SetCache(c *Cache) {
	c.SetFingerprint(e.Fingerprint())
	e.cache = c
}

// Fingerprint identifies the active rules with their severities and
// patterns.
func (e *Engine) Fingerprint() string {
	var b strings.Builder
	for _, r := range e.Rules() {
		fmt.Fprintf(&b, "%s=%s:%s;", r.Name(), r.Severity(), r.Matcher())
	}
	return b.String()
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename); ok {
			return issues, nil
		}
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	issues, err := e.run(filename, source)
	if err != nil {
		return issues, err
	}

	if e.cache != nil {
		if err := e.cache.Set(filename, issues); err != nil {
			return issues, fmt.Errorf("error caching results: %w", err)
		}
	}
	return issues, nil
}

// RunSource applies all lint rules to the given source and returns a slice of Issues.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.run("", source)
}

func (e *Engine) run(filename string, source []byte) ([]tt.Issue, error) {
	prog, parseErr := e.parser.Parse(context.Background(), source)
	if prog == nil {
		return nil, fmt.Errorf("error parsing %s: %w", displayName(filename), parseErr)
	}

	allIssues, err := syntaxIssues(filename, parseErr)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", displayName(filename), err)
	}

	nolintMgr := nolint.ParseComments(filename, prog)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for name, rule := range e.rules {
		if e.ignoredRules[name] {
			continue
		}
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			issues, err := r.Check(filename, prog)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			allIssues = append(allIssues, filterNolintIssues(nolintMgr, issues)...)
		}(rule)
	}
	wg.Wait()

	sortIssues(allIssues)
	return allIssues, errors.Join(errs...)
}

// syntaxIssues turns the syntax errors of a parse into issues. Any other
// error is returned as is.
func syntaxIssues(filename string, err error) ([]tt.Issue, error) {
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, parser.ErrSyntax) {
		return nil, err
	}

	var list []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		list = joined.Unwrap()
	} else {
		list = []error{err}
	}

	issues := make([]tt.Issue, 0, len(list))
	for _, e := range list {
		var se *parser.SyntaxError
		if !errors.As(e, &se) {
			continue
		}
		pos := token.Position{Filename: filename, Line: se.Line, Column: se.Column}
		issue := tt.Issue{
			Rule:     SyntaxErrorRule,
			Category: "parse",
			Filename: filename,
			Message:  parser.ErrSyntax.Error(),
			Start:    pos,
			End:      pos,
			Severity: tt.SeverityError,
		}
		switch {
		case se.Missing != "":
			issue.Message += ": missing " + se.Missing
		case se.Near != "":
			issue.Message += " near " + se.Near
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func sortIssues(issues []tt.Issue) {
	slices.SortStableFunc(issues, func(a, b tt.Issue) int {
		return cmp.Or(
			cmp.Compare(a.Start.Line, b.Start.Line),
			cmp.Compare(a.Start.Column, b.Start.Column),
			strings.Compare(a.Rule, b.Rule),
		)
	})
}

func displayName(filename string) string {
	if filename == "" {
		return "source"
	}
	return filename
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath skips files matching the glob pattern path. Patterns are
// matched against the file path, its path relative to the root directory
// and its base name; a directory excludes everything below it.
func (e *Engine) IgnorePath(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

func (e *Engine) isIgnoredPath(filename string) bool {
	if len(e.ignoredPaths) == 0 {
		return false
	}
	candidates := []string{filepath.Clean(filename), filepath.Base(filename)}
	if e.rootDir != "" {
		if rel, err := filepath.Rel(e.rootDir, filename); err == nil {
			candidates = append(candidates, rel)
		}
	}
	for _, pattern := range e.ignoredPaths {
		for _, c := range candidates {
			if ok, _ := filepath.Match(pattern, c); ok {
				return true
			}
			if strings.HasPrefix(c, pattern+string(filepath.Separator)) {
				return true
			}
		}
	}
	return false
}

// filterNolintIssues filters issues based on nolint comments.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	if mgr == nil {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		pos := token.Position{
			Filename: issue.Filename,
			Line:     issue.Start.Line,
		}
		if !mgr.IsNolint(pos, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(content), nil
}

// NewSourceCode splits source into lines.
func NewSourceCode(source []byte) *SourceCode {
	return &SourceCode{Lines: strings.Split(string(source), "\n")}
}

// Parse parses source with the engine's parser. Syntax errors are returned
// along with the partial program.
func (e *Engine) Parse(source []byte) (*ast.Program, error) {
	return e.parser.Parse(context.Background(), source)
}
