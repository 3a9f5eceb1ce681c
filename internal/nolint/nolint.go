// Package nolint finds `//nolint` comments in JavaScript sources and decides
// which issues they suppress.
package nolint

import (
	"errors"
	"go/token"
	"strings"

	"github.com/gnolang/jsmatch/ast"
)

const nolintPrefix = "//nolint"

var (
	errNotNolint = errors.New("not a nolint comment")
	errFormat    = errors.New("invalid nolint comment format")
	errNoRules   = errors.New("invalid nolint comment: no rules specified after colon")
)

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	// scopes maps filename to a slice of nolint scopes.
	scopes map[string][]nolintScope
}

// nolintScope is a range of lines where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start token.Position
	end   token.Position
}

type file struct {
	name  string
	prog  *ast.Program
	stmts map[int]ast.Node
	first ast.Idx
}

// ParseComments collects the nolint scopes of prog.
func ParseComments(filename string, prog *ast.Program) *Manager {
	manager := Manager{
		scopes: make(map[string][]nolintScope, 1),
	}
	f := &file{
		name:  filename,
		prog:  prog,
		stmts: indexStatementsByLine(prog),
		first: prog.Idx1(),
	}
	if len(prog.Body) > 0 && prog.Body[0] != nil {
		f.first = prog.Body[0].Idx0()
	}

	for _, comment := range prog.Comments {
		ns, err := f.parseComment(comment)
		if err != nil {
			// ignore invalid nolint comments
			continue
		}
		manager.scopes[filename] = append(manager.scopes[filename], ns)
	}
	return &manager
}

// parseComment parses a single nolint comment and determines its scope.
func (f *file) parseComment(comment *ast.Comment) (nolintScope, error) {
	var ns nolintScope

	rules, err := parseDirective(comment.Text)
	if err != nil {
		return ns, err
	}
	ns.rules = rules
	pos := f.position(comment.From)

	// before the first statement: the whole file
	if comment.From < f.first {
		ns.start = f.position(f.prog.Idx0())
		ns.end = f.position(f.prog.Idx1())
		return ns, nil
	}

	// after code on the same line: that statement
	if stmt, ok := f.stmts[pos.Line]; ok && stmt.Idx0() < comment.From {
		ns.start = f.position(stmt.Idx0())
		ns.end = f.position(stmt.Idx1())
		return ns, nil
	}

	// on its own line: the comment line through the next statement
	if stmt, ok := f.stmts[pos.Line+1]; ok {
		ns.start = pos
		ns.end = f.position(stmt.Idx1())
		return ns, nil
	}

	ns.start = pos
	ns.end = pos
	return ns, nil
}

func (f *file) position(idx ast.Idx) token.Position {
	p := f.prog.Position(idx)
	return token.Position{Filename: f.name, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// parseDirective returns the rules named by a nolint comment. An empty set
// means every rule. Text after the rule list separated by a space is a
// free-form reason.
func parseDirective(text string) (map[string]struct{}, error) {
	if !strings.HasPrefix(text, nolintPrefix) {
		return nil, errNotNolint
	}
	rest, _, _ := strings.Cut(text[len(nolintPrefix):], " ")

	if rest == "" {
		return map[string]struct{}{}, nil
	}
	if rest[0] != ':' {
		return nil, errFormat
	}
	rest = strings.TrimSpace(rest[1:])
	if rest == "" {
		return nil, errNoRules
	}
	return parseIgnoreRuleNames(rest), nil
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// indexStatementsByLine maps each line to the outermost statement starting
// on it.
func indexStatementsByLine(prog *ast.Program) map[int]ast.Node {
	stmtMap := make(map[int]ast.Node)
	ast.Walk(prog, func(n ast.Node) bool {
		if !isStatement(n) {
			return true
		}
		line := prog.Position(n.Idx0()).Line
		if _, exists := stmtMap[line]; !exists {
			stmtMap[line] = n
		}
		return true
	})
	return stmtMap
}

// isStatement reports whether n sits in statement position. Grammar nodes
// without a dedicated type count when they are statements or declarations.
func isStatement(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Program:
		return false
	case *ast.Other:
		return strings.HasSuffix(n.Type, "_statement") || strings.HasSuffix(n.Type, "_declaration")
	case ast.Stmt:
		return true
	}
	return false
}

// IsNolint checks if a given position and rule are nolinted.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if pos.Line < ns.start.Line || pos.Line > ns.end.Line {
			continue
		}
		// an empty rule list applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
