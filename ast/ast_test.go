package ast

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/jsmatch/token"
)

// if (a = 1) { x; } else ;
func sampleProgram() (*Program, *IfStatement, *BinaryExpression) {
	src := "if (a = 1) { x; } else ;"
	bin := &BinaryExpression{
		Span:     Span{From: 4, To: 9},
		Operator: token.Assign,
		Left:     &Identifier{Span: Span{From: 4, To: 5}, Name: "a"},
		Right:    &NumberLiteral{Span: Span{From: 8, To: 9}, Value: 1, Raw: "1"},
	}
	ifs := &IfStatement{
		Span: Span{From: 0, To: 24},
		Test: bin,
		Consequent: &BlockStatement{
			Span: Span{From: 11, To: 17},
			List: []Stmt{&ExpressionStatement{
				Span:       Span{From: 13, To: 15},
				Expression: &Identifier{Span: Span{From: 13, To: 14}, Name: "x"},
			}},
		},
		Alternate: &EmptyStatement{Span: Span{From: 23, To: 24}},
	}
	return NewProgram([]byte(src), []Stmt{ifs}, nil), ifs, bin
}

func TestChildrenOmitAbsentFields(t *testing.T) {
	t.Parallel()

	ifs := &IfStatement{Test: &BooleanLiteral{Value: true}, Consequent: &BlockStatement{}}
	assert.Len(t, ifs.Children(), 2)
	assert.Nil(t, ifs.Else())

	ret := &ReturnStatement{}
	assert.Empty(t, ret.Children())
	assert.Nil(t, ret.Expression())

	loop := &ForStatement{Body: &EmptyStatement{}}
	assert.Nil(t, loop.Condition())
	assert.Len(t, loop.Children(), 1)
}

func TestSetParents(t *testing.T) {
	t.Parallel()

	prog, ifs, bin := sampleProgram()

	assert.Nil(t, prog.Parent())
	assert.Same(t, prog, ifs.Parent())
	assert.Same(t, ifs, bin.Parent())
	assert.Same(t, bin, bin.Left.Parent())
	assert.Same(t, prog, Root(bin.Right))
}

func TestWalkPreOrder(t *testing.T) {
	t.Parallel()

	prog, _, _ := sampleProgram()

	var kinds []Kind
	Walk(prog, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})

	assert.Equal(t, []Kind{
		KindProgram, KindIf, KindBinary, KindIdentifier, KindNumber,
		KindBlock, KindExpressionStatement, KindIdentifier, KindEmpty,
	}, kinds)
}

func TestWalkSkipsChildren(t *testing.T) {
	t.Parallel()

	prog, _, _ := sampleProgram()

	count := 0
	Walk(prog, func(n Node) bool {
		count++
		return n.Kind() != KindIf
	})
	assert.Equal(t, 2, count)
}

func TestAncestors(t *testing.T) {
	t.Parallel()

	prog, ifs, bin := sampleProgram()

	got := slices.Collect(Ancestors(bin.Left))
	require.Len(t, got, 3)
	assert.Same(t, bin, got[0])
	assert.Same(t, ifs, got[1])
	assert.Same(t, prog, got[2])

	assert.Empty(t, slices.Collect(Ancestors(prog)))
	assert.Empty(t, slices.Collect(Ancestors(nil)))
}

func TestForInKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindForIn, (&ForInStatement{}).Kind())
	assert.Equal(t, KindForOf, (&ForInStatement{Of: true}).Kind())
	assert.Equal(t, Kind("function_declaration"), (&Other{Type: "function_declaration"}).Kind())
}

func TestProgramPosition(t *testing.T) {
	t.Parallel()

	src := "a;\nif (b) {\n  c;\n}\n"
	prog := NewProgram([]byte(src), nil, nil)

	tests := []struct {
		idx  Idx
		line int
		col  int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{7, 2, 5},
		{14, 3, 3},
		{Idx(len(src)), 5, 1},
		{-4, 1, 1},
	}
	for _, tt := range tests {
		pos := prog.Position(tt.idx)
		assert.Equal(t, tt.line, pos.Line, "line of %d", tt.idx)
		assert.Equal(t, tt.col, pos.Column, "column of %d", tt.idx)
	}
}

func TestProgramText(t *testing.T) {
	t.Parallel()

	prog, ifs, bin := sampleProgram()

	assert.Equal(t, "a = 1", prog.Text(bin))
	assert.Equal(t, "{ x; }", prog.Text(ifs.Then()))
	assert.Equal(t, "", prog.Text(nil))
	assert.Equal(t, "", prog.Text(&Identifier{Span: Span{From: 5, To: 100}}))
}

func TestLiteralValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, true, (&BooleanLiteral{Value: true}).LiteralValue())
	assert.Equal(t, 2.5, (&NumberLiteral{Value: 2.5}).LiteralValue())
	assert.Equal(t, "s", (&StringLiteral{Value: "s"}).LiteralValue())
	assert.Nil(t, (&NullLiteral{}).LiteralValue())
}
