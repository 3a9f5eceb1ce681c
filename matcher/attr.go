package matcher

import (
	"fmt"
	"strconv"

	"github.com/gnolang/jsmatch/ast"
	"github.com/gnolang/jsmatch/token"
)

type hasOperator struct {
	op token.Operator
}

// HasOperator matches binary-operator nodes using op.
func HasOperator(op token.Operator) Matcher {
	return &hasOperator{op: op}
}

func (m *hasOperator) Match(_ *Evaluation, n ast.Node) (bool, error) {
	bin, ok := n.(*ast.BinaryExpression)
	return ok && bin.Operator == m.op, nil
}

func (m *hasOperator) String() string {
	return render("hasOperator", strconv.Quote(m.op.String()))
}

type equalTo struct {
	value       any
	unsupported bool
}

// EqualTo matches literal nodes whose decoded value equals value. Booleans
// compare with boolean literals, Go integers and floats with number
// literals, strings with string literals and nil with null. Number literals
// decode to float64, so integers beyond ±2^53 cannot be compared exactly;
// matchers built from them, or from any other type, fail evaluation with
// ErrUnsupported.
func EqualTo(value any) Matcher {
	v, ok := literalValue(value)
	if !ok {
		return &equalTo{value: value, unsupported: true}
	}
	return &equalTo{value: v}
}

// maxExactInt is the largest magnitude up to which every integer has an
// exact float64 representation.
const maxExactInt = 1 << 53

func literalValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil, bool, string, float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return exactInt(int64(v))
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return exactInt(v)
	case uint:
		return exactUint(uint64(v))
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return exactUint(v)
	}
	return nil, false
}

func exactInt(v int64) (any, bool) {
	if v > maxExactInt || v < -maxExactInt {
		return nil, false
	}
	return float64(v), true
}

func exactUint(v uint64) (any, bool) {
	if v > maxExactInt {
		return nil, false
	}
	return float64(v), true
}

func (m *equalTo) Match(_ *Evaluation, n ast.Node) (bool, error) {
	if m.unsupported {
		return false, fmt.Errorf("equalTo(%T): %w", m.value, ErrUnsupported)
	}
	lit, ok := n.(ast.Literal)
	if !ok {
		return false, nil
	}
	return lit.LiteralValue() == m.value, nil
}

func (m *equalTo) String() string {
	switch v := m.value.(type) {
	case nil:
		return render("equalTo", "null")
	case bool:
		return render("equalTo", strconv.FormatBool(v))
	case float64:
		return render("equalTo", strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		return render("equalTo", strconv.Quote(v))
	}
	return render("equalTo", fmt.Sprintf("%T", m.value))
}
