package matcher

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/gnolang/jsmatch/ast"
	"github.com/gnolang/jsmatch/token"
)

// null is the parsed form of the `null` keyword.
type null struct{}

type builder func(name string, args []any) (Matcher, error)

var builders map[string]builder

func init() {
	kind := func(k ast.Kind) builder {
		return func(name string, args []any) (Matcher, error) {
			ms, err := matcherArgs(name, args)
			if err != nil {
				return nil, err
			}
			return named(name, k, ms), nil
		}
	}
	unary := func(fn func(Matcher) Matcher) builder {
		return func(name string, args []any) (Matcher, error) {
			m, err := oneMatcher(name, args)
			if err != nil {
				return nil, err
			}
			return fn(m), nil
		}
	}

	builders = map[string]builder{
		"node":              buildNode,
		"compoundStatement": kind(ast.KindBlock),
		"ifStatement":       kind(ast.KindIf),
		"whileStatement":    kind(ast.KindWhile),
		"doWhileStatement":  kind(ast.KindDoWhile),
		"forStatement":      kind(ast.KindFor),
		"forInStatement":    kind(ast.KindForIn),
		"forOfStatement":    kind(ast.KindForOf),
		"labelledStatement": kind(ast.KindLabelled),
		"binaryOperator":    kind(ast.KindBinary),
		"boolLiteral":       kind(ast.KindBoolean),
		"allOf":             variadic(AllOf),
		"anyOf":             variadic(AnyOf),
		"anything":          buildAnything,
		"unless":            unary(Unless),
		"not":               unary(Not),
		"hasOperator":       buildHasOperator,
		"equalTo":           buildEqualTo,
		"has":               unary(Has),
		"hasDescendant":     unary(HasDescendant),
		"hasParent":         unary(HasParent),
		"hasAncestor":       unary(HasAncestor),
		"hasCondition":      unary(HasCondition),
		"hasExpression":     unary(HasExpression),
		"hasBody":           unary(HasBody),
		"hasThenClause":     unary(HasThenClause),
		"hasElseClause":     unary(HasElseClause),
		"statementCountIs":  buildStatementCount,
		"capture":           unary(Capture),
		"captureAs":         buildCaptureAs,
	}
}

func variadic(fn func(...Matcher) Matcher) builder {
	return func(name string, args []any) (Matcher, error) {
		ms, err := matcherArgs(name, args)
		if err != nil {
			return nil, err
		}
		return fn(ms...), nil
	}
}

func buildNode(name string, args []any) (Matcher, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: %s expects a kind", ErrArity, name)
	}
	kind, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s kind must be a string, got %s", ErrArgument, name, describe(args[0]))
	}
	ms, err := matcherArgs(name, args[1:])
	if err != nil {
		return nil, err
	}
	return Node(ast.Kind(kind), ms...), nil
}

func buildAnything(name string, args []any) (Matcher, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("%w: %s takes no arguments, got %d", ErrArity, name, len(args))
	}
	return Anything(), nil
}

func buildHasOperator(name string, args []any) (Matcher, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrArity, name, len(args))
	}
	text, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects an operator string, got %s", ErrArgument, name, describe(args[0]))
	}
	op, ok := token.LookupOperator(text)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unknown operator %q", ErrArgument, name, text)
	}
	return HasOperator(op), nil
}

func buildEqualTo(name string, args []any) (Matcher, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrArity, name, len(args))
	}
	switch v := args[0].(type) {
	case null:
		return EqualTo(nil), nil
	case bool, float64, string:
		return EqualTo(v), nil
	}
	return nil, fmt.Errorf("%w: %s expects a literal, got %s", ErrArgument, name, describe(args[0]))
}

func buildStatementCount(name string, args []any) (Matcher, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrArity, name, len(args))
	}
	f, ok := args[0].(float64)
	if !ok || f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %s expects a non-negative integer, got %s", ErrArgument, name, describe(args[0]))
	}
	return StatementCountIs(int(f)), nil
}

func buildCaptureAs(name string, args []any) (Matcher, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: %s takes 2 arguments, got %d", ErrArity, name, len(args))
	}
	label, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s name must be a string, got %s", ErrArgument, name, describe(args[0]))
	}
	m, ok := args[1].(Matcher)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects a matcher, got %s", ErrArgument, name, describe(args[1]))
	}
	return CaptureAs(label, m), nil
}

func oneMatcher(name string, args []any) (Matcher, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrArity, name, len(args))
	}
	m, ok := args[0].(Matcher)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects a matcher, got %s", ErrArgument, name, describe(args[0]))
	}
	return m, nil
}

func matcherArgs(name string, args []any) ([]Matcher, error) {
	ms := make([]Matcher, 0, len(args))
	for i, a := range args {
		m, ok := a.(Matcher)
		if !ok {
			return nil, fmt.Errorf("%w: %s argument %d must be a matcher, got %s", ErrArgument, name, i+1, describe(a))
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func describe(v any) string {
	switch v := v.(type) {
	case null:
		return "null"
	case string:
		return strconv.Quote(v)
	case Matcher:
		return v.String()
	}
	return fmt.Sprint(v)
}

// Names returns the matcher names understood by Parse.
func Names() []string {
	return slices.Sorted(maps.Keys(builders))
}

// Parse builds a matcher from its textual form, the same syntax String
// renders:
//
//	ifStatement(hasCondition(binaryOperator(hasOperator("="))))
//	node("function_declaration", hasDescendant(captureAs("ret", node("return-statement"))))
//
// Arguments are matchers, double-quoted or back-quoted strings, numbers,
// true, false and null. A matcher without arguments may omit the
// parentheses.
func Parse(expr string) (Matcher, error) {
	p := &exprParser{}
	p.s.Init(strings.NewReader(expr))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanRawStrings | scanner.ScanComments | scanner.SkipComments
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.scanErr == nil {
			p.scanErr = fmt.Errorf("%w: %s: %s", ErrSyntax, s.Position, msg)
		}
	}
	p.s.Filename = "expr"
	p.next()

	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("unexpected %s after expression", scanner.TokenString(p.tok))
	}
	m, ok := v.(Matcher)
	if !ok {
		return nil, fmt.Errorf("%w: expression must be a matcher, got %s", ErrArgument, describe(v))
	}
	return m, nil
}

// MustParse is like Parse but panics on error. It simplifies the
// initialization of package-level matchers.
func MustParse(expr string) Matcher {
	m, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return m
}

type exprParser struct {
	s       scanner.Scanner
	tok     rune
	scanErr error
}

func (p *exprParser) next() {
	p.tok = p.s.Scan()
}

func (p *exprParser) errorf(format string, args ...any) error {
	if p.scanErr != nil {
		return p.scanErr
	}
	return fmt.Errorf("%w: %s: %s", ErrSyntax, p.s.Position, fmt.Sprintf(format, args...))
}

func (p *exprParser) value() (any, error) {
	if p.scanErr != nil {
		return nil, p.scanErr
	}

	switch p.tok {
	case scanner.String, scanner.RawString:
		s, err := strconv.Unquote(p.s.TokenText())
		if err != nil {
			return nil, p.errorf("bad string %s", p.s.TokenText())
		}
		p.next()
		return s, nil

	case scanner.Int, scanner.Float:
		return p.number(1)

	case '-':
		p.next()
		if p.tok != scanner.Int && p.tok != scanner.Float {
			return nil, p.errorf("expected number after '-'")
		}
		return p.number(-1)

	case scanner.Ident:
		switch text := p.s.TokenText(); text {
		case "true", "false":
			p.next()
			return text == "true", nil
		case "null":
			p.next()
			return null{}, nil
		default:
			return p.call(text)
		}
	}

	return nil, p.errorf("unexpected %s", scanner.TokenString(p.tok))
}

func (p *exprParser) number(sign float64) (any, error) {
	text := p.s.TokenText()
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		i, ierr := strconv.ParseInt(text, 0, 64)
		if ierr != nil {
			return nil, p.errorf("bad number %s", text)
		}
		f = float64(i)
	}
	p.next()
	return sign * f, nil
}

func (p *exprParser) call(name string) (any, error) {
	pos := p.s.Position
	p.next()

	var args []any
	if p.tok == '(' {
		p.next()
		for p.tok != ')' {
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			args = append(args, v)

			if p.tok == ',' {
				p.next()
				continue
			}
			if p.tok != ')' {
				return nil, p.errorf("expected ',' or ')' in arguments of %s, got %s", name, scanner.TokenString(p.tok))
			}
		}
		p.next()
	}

	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q at %s", ErrUnknownMatcher, name, pos)
	}
	m, err := build(name, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pos, err)
	}
	return m, nil
}
