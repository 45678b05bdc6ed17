package tensor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtensor-ml/qtensor/budget"
)

func u32Engine(g budget.Guard) *Engine[uint32] {
	return NewEngine[uint32](UintKind[uint32]{}, g)
}

func mustNew[T any](t *testing.T, shape Shape, data []T) *Tensor[T] {
	t.Helper()
	tt, err := New(shape, data)
	require.NoError(t, err)
	return tt
}

func TestAddBroadcast(t *testing.T) {
	e := u32Engine(nil)
	a := mustNew(t, Shape{2, 2}, []uint32{1, 2, 3, 4})
	b := mustNew(t, Shape{1, 2}, []uint32{10, 20})

	sum, err := e.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, sum.Shape())
	assert.Equal(t, []uint32{11, 22, 13, 24}, sum.Data())
}

func TestAddSameShape(t *testing.T) {
	e := u32Engine(nil)
	a := mustNew(t, Shape{3}, []uint32{1, 2, 3})
	b := mustNew(t, Shape{3}, []uint32{4, 5, 6})

	sum, err := e.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint32{5, 7, 9}, sum.Data())
}

func TestBiggerOperandRule(t *testing.T) {
	e := u32Engine(nil)

	// The operand with more elements drives the output shape,
	// whichever side it is on.
	big := mustNew(t, Shape{2, 2}, []uint32{1, 2, 3, 4})
	small := mustNew(t, Shape{1, 2}, []uint32{10, 20})

	left, err := e.Add(big, small)
	require.NoError(t, err)
	right, err := e.Add(small, big)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, left.Shape())
	assert.Equal(t, Shape{2, 2}, right.Shape())
	assert.Equal(t, left.Data(), right.Data())

	// Equal lengths: the tie goes to the second operand's shape.
	row := mustNew(t, Shape{1, 2}, []uint32{1, 2})
	col := mustNew(t, Shape{2, 1}, []uint32{10, 20})
	out, err := e.Add(row, col)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 1}, out.Shape())
}

func TestAddShapeMismatch(t *testing.T) {
	e := u32Engine(nil)
	a := mustNew(t, Shape{3}, []uint32{1, 2, 3})
	b := mustNew(t, Shape{4}, []uint32{1, 2, 3, 4})

	_, err := e.Add(a, b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSubMulDiv(t *testing.T) {
	e := u32Engine(nil)
	a := mustNew(t, Shape{3}, []uint32{10, 20, 30})
	b := mustNew(t, Shape{3}, []uint32{1, 2, 3})

	sub, err := e.Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint32{9, 18, 27}, sub.Data())

	mul, err := e.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint32{10, 40, 90}, mul.Data())

	div, err := e.Div(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint32{10, 10, 10}, div.Data())
}

func TestDivByZero(t *testing.T) {
	e := u32Engine(nil)
	a := mustNew(t, Shape{2}, []uint32{4, 8})
	b := mustNew(t, Shape{2}, []uint32{2, 0})

	out, err := e.Div(a, b)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.Nil(t, out)
}

func TestScalarBroadcast(t *testing.T) {
	e := u32Engine(nil)
	a := mustNew(t, Shape{2, 2}, []uint32{1, 2, 3, 4})
	s := Scalar(uint32(10))

	out, err := e.Mul(a, s)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, out.Shape())
	assert.Equal(t, []uint32{10, 20, 30, 40}, out.Data())
}

func TestComparisons(t *testing.T) {
	e := u32Engine(nil)
	a := mustNew(t, Shape{4}, []uint32{1, 5, 3, 3})
	b := mustNew(t, Shape{4}, []uint32{2, 4, 3, 1})

	tests := []struct {
		name string
		op   func(a, b *Tensor[uint32]) (*Tensor[uint8], error)
		want []uint8
	}{
		{"Equal", e.Equal, []uint8{0, 0, 1, 0}},
		{"NotEqual", e.NotEqual, []uint8{1, 1, 0, 1}},
		{"Greater", e.Greater, []uint8{0, 1, 0, 1}},
		{"GreaterEqual", e.GreaterEqual, []uint8{0, 1, 1, 1}},
		{"Less", e.Less, []uint8{1, 0, 0, 0}},
		{"LessEqual", e.LessEqual, []uint8{1, 0, 1, 0}},
	}

	for _, tt := range tests {
		got, err := tt.op(a, b)
		require.NoError(t, err, tt.name)
		if diff := cmp.Diff(tt.want, got.Data()); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestLogicalOps(t *testing.T) {
	e := u32Engine(nil)
	a := mustNew(t, Shape{4}, []uint32{0, 0, 7, 7})
	b := mustNew(t, Shape{4}, []uint32{0, 3, 0, 3})

	and, err := e.And(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 1}, and.Data())

	or, err := e.Or(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1, 1, 1}, or.Data())

	xor, err := e.Xor(a, b)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1, 1, 0}, xor.Data())

	not, err := e.Not(a)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 1, 0, 0}, not.Data())
}

func TestMap(t *testing.T) {
	e := u32Engine(nil)
	a := mustNew(t, Shape{3}, []uint32{1, 2, 3})

	out, err := e.Map(a, func(v uint32) (uint32, error) { return v * v, nil })
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 4, 9}, out.Data())
}

func TestGuardStopsElementwise(t *testing.T) {
	e := u32Engine(budget.NewCounter(2))
	a := mustNew(t, Shape{4}, []uint32{1, 2, 3, 4})
	b := mustNew(t, Shape{4}, []uint32{1, 2, 3, 4})

	out, err := e.Add(a, b)
	assert.ErrorIs(t, err, budget.ErrExhausted)
	assert.Nil(t, out)
}

func TestUintKindSubUnderflow(t *testing.T) {
	e := u32Engine(nil)
	a := mustNew(t, Shape{1}, []uint32{1})
	b := mustNew(t, Shape{1}, []uint32{2})

	_, err := e.Sub(a, b)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
