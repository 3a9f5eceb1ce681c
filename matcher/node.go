package matcher

import (
	"strconv"

	"github.com/gnolang/jsmatch/ast"
)

type kindMatcher struct {
	kind        ast.Kind
	name        string
	refinements []Matcher
}

// Node matches nodes of the given kind that satisfy every refinement.
// Refinements are not evaluated when the kind differs.
func Node(kind ast.Kind, refinements ...Matcher) Matcher {
	return &kindMatcher{kind: kind, refinements: refinements}
}

func named(name string, kind ast.Kind, refinements []Matcher) Matcher {
	return &kindMatcher{kind: kind, name: name, refinements: refinements}
}

// CompoundStatement matches block statements `{ ... }`.
func CompoundStatement(refinements ...Matcher) Matcher {
	return named("compoundStatement", ast.KindBlock, refinements)
}

// IfStatement matches if statements, with or without an else clause.
func IfStatement(refinements ...Matcher) Matcher {
	return named("ifStatement", ast.KindIf, refinements)
}

// WhileStatement matches `while` loops.
func WhileStatement(refinements ...Matcher) Matcher {
	return named("whileStatement", ast.KindWhile, refinements)
}

// DoWhileStatement matches `do ... while` loops.
func DoWhileStatement(refinements ...Matcher) Matcher {
	return named("doWhileStatement", ast.KindDoWhile, refinements)
}

// ForStatement matches C-style `for (init; test; update)` loops.
func ForStatement(refinements ...Matcher) Matcher {
	return named("forStatement", ast.KindFor, refinements)
}

// ForInStatement matches `for (k in o)` loops only; see ForOfStatement.
func ForInStatement(refinements ...Matcher) Matcher {
	return named("forInStatement", ast.KindForIn, refinements)
}

// ForOfStatement matches `for (x of xs)` loops; see ForInStatement.
func ForOfStatement(refinements ...Matcher) Matcher {
	return named("forOfStatement", ast.KindForOf, refinements)
}

// LabelledStatement matches `label: statement`.
func LabelledStatement(refinements ...Matcher) Matcher {
	return named("labelledStatement", ast.KindLabelled, refinements)
}

// BinaryOperator matches binary, logical and assignment expressions.
func BinaryOperator(refinements ...Matcher) Matcher {
	return named("binaryOperator", ast.KindBinary, refinements)
}

// BoolLiteral matches the literals `true` and `false`.
func BoolLiteral(refinements ...Matcher) Matcher {
	return named("boolLiteral", ast.KindBoolean, refinements)
}

func (m *kindMatcher) Match(ev *Evaluation, n ast.Node) (bool, error) {
	if n.Kind() != m.kind {
		return false, nil
	}
	for _, r := range m.refinements {
		ok, err := ev.Eval(r, n)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (m *kindMatcher) String() string {
	if m.name != "" {
		return render(m.name, renderAll(m.refinements)...)
	}
	args := append([]string{strconv.Quote(string(m.kind))}, renderAll(m.refinements)...)
	return render("node", args...)
}
