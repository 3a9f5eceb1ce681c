package token

import (
	"strconv"
)

// Operator is the set of JavaScript binary, logical and assignment operators
// that can appear in a binary-operator node.
type Operator int

const (
	Undetermined Operator = iota

	Plus      // +
	Minus     // -
	Multiply  // *
	Exponent  // **
	Slash     // /
	Remainder // %

	And                // &
	Or                 // |
	ExclusiveOr        // ^
	ShiftLeft          // <<
	ShiftRight         // >>
	UnsignedShiftRight // >>>

	LogicalAnd // &&
	LogicalOr  // ||
	Coalesce   // ??

	Equal          // ==
	StrictEqual    // ===
	NotEqual       // !=
	StrictNotEqual // !==
	Less           // <
	Greater        // >
	LessOrEqual    // <=
	GreaterOrEqual // >=
	InstanceOf     // instanceof
	In             // in

	Assign // =

	AddAssign       // +=
	SubtractAssign  // -=
	MultiplyAssign  // *=
	ExponentAssign  // **=
	QuotientAssign  // /=
	RemainderAssign // %=

	AndAssign                // &=
	OrAssign                 // |=
	ExclusiveOrAssign        // ^=
	ShiftLeftAssign          // <<=
	ShiftRightAssign         // >>=
	UnsignedShiftRightAssign // >>>=

	LogicalAndAssign // &&=
	LogicalOrAssign  // ||=
	CoalesceAssign   // ??=

	lastOperator
)

var operator2string = [...]string{
	Undetermined:             "",
	Plus:                     "+",
	Minus:                    "-",
	Multiply:                 "*",
	Exponent:                 "**",
	Slash:                    "/",
	Remainder:                "%",
	And:                      "&",
	Or:                       "|",
	ExclusiveOr:              "^",
	ShiftLeft:                "<<",
	ShiftRight:               ">>",
	UnsignedShiftRight:       ">>>",
	LogicalAnd:               "&&",
	LogicalOr:                "||",
	Coalesce:                 "??",
	Equal:                    "==",
	StrictEqual:              "===",
	NotEqual:                 "!=",
	StrictNotEqual:           "!==",
	Less:                     "<",
	Greater:                  ">",
	LessOrEqual:              "<=",
	GreaterOrEqual:           ">=",
	InstanceOf:               "instanceof",
	In:                       "in",
	Assign:                   "=",
	AddAssign:                "+=",
	SubtractAssign:           "-=",
	MultiplyAssign:           "*=",
	ExponentAssign:           "**=",
	QuotientAssign:           "/=",
	RemainderAssign:          "%=",
	AndAssign:                "&=",
	OrAssign:                 "|=",
	ExclusiveOrAssign:        "^=",
	ShiftLeftAssign:          "<<=",
	ShiftRightAssign:         ">>=",
	UnsignedShiftRightAssign: ">>>=",
	LogicalAndAssign:         "&&=",
	LogicalOrAssign:          "||=",
	CoalesceAssign:           "??=",
}

var string2operator map[string]Operator

func init() {
	string2operator = make(map[string]Operator, len(operator2string))
	for op := Plus; op < lastOperator; op++ {
		string2operator[operator2string[op]] = op
	}
}

// String returns the source spelling of the operator.
func (op Operator) String() string {
	if op == Undetermined {
		return "UNKNOWN"
	}
	if op > Undetermined && op < lastOperator {
		return operator2string[op]
	}
	return "operator(" + strconv.Itoa(int(op)) + ")"
}

// LookupOperator returns the operator spelled as text.
func LookupOperator(text string) (Operator, bool) {
	op, ok := string2operator[text]
	return op, ok
}

// IsAssignment reports whether op stores into its left operand.
func (op Operator) IsAssignment() bool {
	return op >= Assign && op <= CoalesceAssign
}

// AssignmentOperators returns every assignment operator, `=` first.
func AssignmentOperators() []Operator {
	ops := make([]Operator, 0, CoalesceAssign-Assign+1)
	for op := Assign; op <= CoalesceAssign; op++ {
		ops = append(ops, op)
	}
	return ops
}
