// Package matcher implements a composable predicate algebra over the
// JavaScript syntax tree of package ast.
//
// A Matcher is an immutable value built once from the constructor functions
// of this package and evaluated any number of times, possibly from several
// goroutines. Evaluation never mutates the tree. Each evaluation threads an
// *Evaluation that accumulates the nodes recorded by Capture and CaptureAs.
//
//	m := matcher.IfStatement(
//		matcher.HasElseClause(matcher.Capture(matcher.Anything())),
//	)
//	res, err := matcher.Evaluate(m, node)
package matcher

import (
	"fmt"
	"strings"

	"github.com/gnolang/jsmatch/ast"
)

// Matcher is a predicate over a syntax tree node.
type Matcher interface {
	// Match reports whether n satisfies the matcher. Sub-matchers must be
	// evaluated through ev.Eval so captures are rolled back on failure.
	Match(ev *Evaluation, n ast.Node) (bool, error)
	// String renders the matcher in the expression syntax accepted by Parse.
	// Matchers built with Func render as `name()`, which Parse rejects.
	String() string
}

// CapturedNode is a node recorded during a successful evaluation.
type CapturedNode struct {
	// Name is empty for captures made with Capture.
	Name string
	Node ast.Node
}

// Evaluation carries the state of a single evaluation. The zero value is
// ready to use. An Evaluation must not be shared between goroutines.
type Evaluation struct {
	captures []CapturedNode
}

// Eval evaluates m against n. A nil node never matches. If m does not
// match, or fails, every capture recorded during the call is discarded.
func (ev *Evaluation) Eval(m Matcher, n ast.Node) (bool, error) {
	if n == nil {
		return false, nil
	}

	mark := len(ev.captures)
	ok, err := m.Match(ev, n)
	if err != nil || !ok {
		clear(ev.captures[mark:])
		ev.captures = ev.captures[:mark]
		return false, err
	}
	return true, nil
}

// Captures returns the captures recorded so far, in evaluation order.
func (ev *Evaluation) Captures() []CapturedNode {
	return ev.captures
}

func (ev *Evaluation) record(name string, n ast.Node) {
	for _, c := range ev.captures {
		if c.Name == name && c.Node == n {
			return
		}
	}
	ev.captures = append(ev.captures, CapturedNode{Name: name, Node: n})
}

// Result is the outcome of evaluating a matcher against one node.
type Result struct {
	Node     ast.Node
	Matched  bool
	Captures []CapturedNode
}

// Nodes returns the captured nodes in evaluation order.
func (r Result) Nodes() []ast.Node {
	out := make([]ast.Node, 0, len(r.Captures))
	for _, c := range r.Captures {
		out = append(out, c.Node)
	}
	return out
}

// Named returns the nodes captured under name.
func (r Result) Named(name string) []ast.Node {
	var out []ast.Node
	for _, c := range r.Captures {
		if c.Name == name {
			out = append(out, c.Node)
		}
	}
	return out
}

// Evaluate evaluates m against n with a fresh Evaluation.
func Evaluate(m Matcher, n ast.Node) (Result, error) {
	var ev Evaluation
	ok, err := ev.Eval(m, n)
	if err != nil {
		return Result{Node: n}, err
	}
	return Result{Node: n, Matched: ok, Captures: ev.captures}, nil
}

// Find evaluates m against every node of the tree rooted at root, in
// pre-order, and returns the results that matched. The walk stops at the
// first evaluation error.
func Find(m Matcher, root ast.Node) ([]Result, error) {
	var (
		results []Result
		failed  error
	)
	ast.Walk(root, func(n ast.Node) bool {
		if failed != nil {
			return false
		}
		res, err := Evaluate(m, n)
		if err != nil {
			failed = fmt.Errorf("evaluating %s on %s: %w", m, n.Kind(), err)
			return false
		}
		if res.Matched {
			results = append(results, res)
		}
		return true
	})
	return results, failed
}

func render(name string, args ...string) string {
	return name + "(" + strings.Join(args, ", ") + ")"
}

func renderAll(ms []Matcher) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}
