package signed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtensor-ml/qtensor/tensor"
)

func TestZeroNormalization(t *testing.T) {
	z := New(0, true)
	assert.False(t, z.Neg, "zero must carry a positive sign")
	assert.True(t, z.IsZero())
	assert.False(t, FromInt64(5).Sub(FromInt64(5)).Neg)
	assert.False(t, FromInt64(-3).Negate().Sub(FromInt64(3)).Neg)
	assert.Equal(t, "0", z.String())
}

func TestFromInt64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 42, -42, math.MaxInt64, math.MinInt64}
	for _, v := range values {
		assert.Equal(t, v, FromInt64(v).Int64(), "value %d", v)
	}
	assert.Equal(t, uint64(math.MaxInt64)+1, FromInt64(math.MinInt64).Mag)
}

func TestInt64Saturates(t *testing.T) {
	big := Int{Mag: math.MaxUint64}
	assert.Equal(t, int64(math.MaxInt64), big.Int64())
	assert.Equal(t, int64(math.MinInt64), big.Negate().Int64())
}

func TestAddSub(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{3, 4, 7},
		{3, -4, -1},
		{-3, 4, 1},
		{-3, -4, -7},
		{5, -5, 0},
		{0, -7, -7},
	}
	for _, tt := range tests {
		got := FromInt64(tt.a).Add(FromInt64(tt.b))
		assert.Equal(t, tt.want, got.Int64(), "%d + %d", tt.a, tt.b)
		back := got.Sub(FromInt64(tt.b))
		assert.Equal(t, tt.a, back.Int64(), "(%d + %d) - %d", tt.a, tt.b, tt.b)
	}
}

func TestAddSaturates(t *testing.T) {
	big := Int{Mag: math.MaxUint64}
	sum := big.Add(FromInt64(1))
	assert.Equal(t, uint64(math.MaxUint64), sum.Mag)
	assert.False(t, sum.Neg)

	negSum := big.Negate().Sub(FromInt64(1))
	assert.Equal(t, uint64(math.MaxUint64), negSum.Mag)
	assert.True(t, negSum.Neg)
}

func TestMul(t *testing.T) {
	assert.Equal(t, int64(12), FromInt64(3).Mul(FromInt64(4)).Int64())
	assert.Equal(t, int64(-12), FromInt64(-3).Mul(FromInt64(4)).Int64())
	assert.Equal(t, int64(12), FromInt64(-3).Mul(FromInt64(-4)).Int64())
	assert.False(t, FromInt64(-3).Mul(FromInt64(0)).Neg)

	big := Int{Mag: 1 << 63}
	prod := big.Mul(Int{Mag: 4})
	assert.Equal(t, uint64(math.MaxUint64), prod.Mag)
}

func TestDiv(t *testing.T) {
	q, err := FromInt64(-7).Div(FromInt64(2))
	require.NoError(t, err)
	// Truncation toward zero.
	assert.Equal(t, int64(-3), q.Int64())

	q, err = FromInt64(7).Div(FromInt64(-2))
	require.NoError(t, err)
	assert.Equal(t, int64(-3), q.Int64())

	_, err = FromInt64(1).Div(Int{})
	assert.ErrorIs(t, err, tensor.ErrDivisionByZero)
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b int64
		want int
	}{
		{1, 2, -1},
		{2, 1, 1},
		{2, 2, 0},
		{-1, 1, -1},
		{1, -1, 1},
		{-1, -2, 1},
		{-2, -1, -1},
		{0, 0, 0},
	}
	for _, tt := range tests {
		got := FromInt64(tt.a).Cmp(FromInt64(tt.b))
		assert.Equal(t, tt.want, got, "Cmp(%d, %d)", tt.a, tt.b)
	}
}

func TestAbsNegateString(t *testing.T) {
	v := FromInt64(-9)
	assert.Equal(t, "-9", v.String())
	assert.Equal(t, "9", v.Abs().String())
	assert.Equal(t, "9", v.Negate().String())
}

func TestKindWithEngine(t *testing.T) {
	e := tensor.NewEngine[Int](Kind{}, nil)
	a, err := tensor.New(tensor.Shape{3}, []Int{FromInt64(5), FromInt64(-2), FromInt64(0)})
	require.NoError(t, err)
	b, err := tensor.New(tensor.Shape{3}, []Int{FromInt64(-3), FromInt64(-2), FromInt64(7)})
	require.NoError(t, err)

	sum, err := e.Add(a, b)
	require.NoError(t, err)
	got := sum.Data()
	assert.Equal(t, int64(2), got[0].Int64())
	assert.Equal(t, int64(-4), got[1].Int64())
	assert.Equal(t, int64(7), got[2].Int64())

	mn, err := e.Min(a)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), mn.Int64())

	amax, err := e.ArgMax(b, 0, false)
	require.NoError(t, err)
	idx, err := amax.Item()
	require.NoError(t, err)
	assert.Equal(t, int64(2), idx)
}
