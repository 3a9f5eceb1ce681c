package matcher

import (
	"slices"

	"github.com/gnolang/jsmatch/ast"
)

type has struct {
	inner Matcher
}

// Has matches when m matches at least one direct child.
func Has(m Matcher) Matcher { return &has{inner: m} }

func (m *has) Match(ev *Evaluation, n ast.Node) (bool, error) {
	for _, c := range n.Children() {
		ok, err := ev.Eval(m.inner, c)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

func (m *has) String() string { return render("has", m.inner.String()) }

type hasDescendant struct {
	inner Matcher
}

// HasDescendant matches when m matches any node below the candidate. The
// subtree is searched depth-first, left to right, stopping at the first hit.
// The candidate itself is not considered.
func HasDescendant(m Matcher) Matcher { return &hasDescendant{inner: m} }

func (m *hasDescendant) Match(ev *Evaluation, n ast.Node) (bool, error) {
	stack := slices.Clone(n.Children())
	slices.Reverse(stack)

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ok, err := ev.Eval(m.inner, c)
		if err != nil || ok {
			return ok, err
		}

		children := c.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return false, nil
}

func (m *hasDescendant) String() string { return render("hasDescendant", m.inner.String()) }

type hasParent struct {
	inner Matcher
}

// HasParent matches when m matches the direct parent. The root never
// matches.
func HasParent(m Matcher) Matcher { return &hasParent{inner: m} }

func (m *hasParent) Match(ev *Evaluation, n ast.Node) (bool, error) {
	return ev.Eval(m.inner, n.Parent())
}

func (m *hasParent) String() string { return render("hasParent", m.inner.String()) }

type hasAncestor struct {
	inner Matcher
}

// HasAncestor matches when m matches any node on the path from the parent
// up to the root, nearest first.
func HasAncestor(m Matcher) Matcher { return &hasAncestor{inner: m} }

func (m *hasAncestor) Match(ev *Evaluation, n ast.Node) (bool, error) {
	for p := range ast.Ancestors(n) {
		ok, err := ev.Eval(m.inner, p)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

func (m *hasAncestor) String() string { return render("hasAncestor", m.inner.String()) }
