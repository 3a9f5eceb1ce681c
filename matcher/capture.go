package matcher

import (
	"strconv"

	"github.com/gnolang/jsmatch/ast"
)

type capture struct {
	name  string
	inner Matcher
}

// Capture records the node m matched. The node is recorded before the
// captures m makes itself, and dropped again if m does not match.
func Capture(m Matcher) Matcher { return &capture{inner: m} }

// CaptureAs is Capture with a name, retrievable through Result.Named.
func CaptureAs(name string, m Matcher) Matcher { return &capture{name: name, inner: m} }

func (m *capture) Match(ev *Evaluation, n ast.Node) (bool, error) {
	ev.record(m.name, n)
	return ev.Eval(m.inner, n)
}

func (m *capture) String() string {
	if m.name == "" {
		return render("capture", m.inner.String())
	}
	return render("captureAs", strconv.Quote(m.name), m.inner.String())
}

type predicate struct {
	name string
	fn   func(ast.Node) bool
}

// Func adapts a plain predicate. name is used when rendering; the result
// does not round-trip through Parse.
func Func(name string, fn func(ast.Node) bool) Matcher {
	return &predicate{name: name, fn: fn}
}

func (m *predicate) Match(_ *Evaluation, n ast.Node) (bool, error) { return m.fn(n), nil }

func (m *predicate) String() string { return render(m.name) }
