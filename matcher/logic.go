package matcher

import "github.com/gnolang/jsmatch/ast"

type allOf struct {
	matchers []Matcher
}

// AllOf matches when every matcher matches. AllOf() always matches.
func AllOf(matchers ...Matcher) Matcher {
	return &allOf{matchers: matchers}
}

func (m *allOf) Match(ev *Evaluation, n ast.Node) (bool, error) {
	for _, sub := range m.matchers {
		ok, err := ev.Eval(sub, n)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (m *allOf) String() string { return render("allOf", renderAll(m.matchers)...) }

type anyOf struct {
	matchers []Matcher
}

// AnyOf matches when at least one matcher matches, trying them in order and
// stopping at the first success. AnyOf() never matches.
func AnyOf(matchers ...Matcher) Matcher {
	return &anyOf{matchers: matchers}
}

func (m *anyOf) Match(ev *Evaluation, n ast.Node) (bool, error) {
	for _, sub := range m.matchers {
		ok, err := ev.Eval(sub, n)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (m *anyOf) String() string { return render("anyOf", renderAll(m.matchers)...) }

type anything struct{}

// Anything matches every node.
func Anything() Matcher { return anything{} }

func (anything) Match(*Evaluation, ast.Node) (bool, error) {
	return true, nil
}

func (anything) String() string { return "anything()" }

type unless struct {
	inner Matcher
}

// Unless matches when m does not. Errors from m are returned unchanged.
func Unless(m Matcher) Matcher {
	return &unless{inner: m}
}

// Not is an alias of Unless.
func Not(m Matcher) Matcher { return Unless(m) }

func (m *unless) Match(ev *Evaluation, n ast.Node) (bool, error) {
	ok, err := ev.Eval(m.inner, n)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (m *unless) String() string { return render("unless", m.inner.String()) }
