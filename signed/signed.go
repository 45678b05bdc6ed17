// Package signed provides the sign-magnitude integer primitive the
// tensor core consumes.
//
// Values are an unsigned 64-bit magnitude plus a sign flag; zero
// always carries a positive sign. Addition, subtraction and
// multiplication saturate at the maximum magnitude rather than
// silently wrapping; division by zero is an error.
package signed

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"

	"github.com/qtensor-ml/qtensor/tensor"
)

// Int is a sign-magnitude integer. The zero value is the number 0.
type Int struct {
	Mag uint64
	Neg bool
}

// New builds an Int, normalizing the sign of zero.
func New(mag uint64, neg bool) Int {
	if mag == 0 {
		return Int{}
	}
	return Int{Mag: mag, Neg: neg}
}

// FromInt64 converts a built-in signed integer.
func FromInt64(v int64) Int {
	if v < 0 {
		// Negating math.MinInt64 overflows int64; go through uint64.
		return Int{Mag: uint64(-(v + 1)) + 1, Neg: true}
	}
	return Int{Mag: uint64(v)}
}

// Int64 converts back to a built-in integer, saturating at the int64
// range.
func (a Int) Int64() int64 {
	if a.Neg {
		if a.Mag > uint64(math.MaxInt64)+1 {
			return math.MinInt64
		}
		return -int64(a.Mag - 1) - 1
	}
	if a.Mag > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(a.Mag)
}

// IsZero reports whether the value is 0.
func (a Int) IsZero() bool { return a.Mag == 0 }

// Negate returns the negation. Zero stays positive.
func (a Int) Negate() Int { return New(a.Mag, !a.Neg) }

// Abs returns the absolute value.
func (a Int) Abs() Int { return Int{Mag: a.Mag} }

// Add returns a+b. Same signs add magnitudes (saturating); different
// signs subtract the smaller magnitude from the larger, the sign
// following the larger.
func (a Int) Add(b Int) Int {
	if a.Neg == b.Neg {
		sum, carry := bits.Add64(a.Mag, b.Mag, 0)
		if carry != 0 {
			sum = math.MaxUint64
		}
		return New(sum, a.Neg)
	}
	if a.Mag >= b.Mag {
		return New(a.Mag-b.Mag, a.Neg)
	}
	return New(b.Mag-a.Mag, b.Neg)
}

// Sub returns a-b.
func (a Int) Sub(b Int) Int { return a.Add(b.Negate()) }

// Mul returns a*b with the sign as the XOR of the operand signs,
// saturating at the maximum magnitude.
func (a Int) Mul(b Int) Int {
	hi, lo := bits.Mul64(a.Mag, b.Mag)
	if hi != 0 {
		lo = math.MaxUint64
	}
	return New(lo, a.Neg != b.Neg)
}

// Div returns the truncated quotient a/b with the sign as the XOR of
// the operand signs. A zero divisor fails with ErrDivisionByZero.
func (a Int) Div(b Int) (Int, error) {
	if b.Mag == 0 {
		return Int{}, fmt.Errorf("%w: %s / 0", tensor.ErrDivisionByZero, a)
	}
	return New(a.Mag/b.Mag, a.Neg != b.Neg), nil
}

// Cmp returns -1, 0 or +1. Negative values order below positive ones;
// within a sign, magnitude order, reversed for negatives.
func (a Int) Cmp(b Int) int {
	switch {
	case a.Neg && !b.Neg:
		return -1
	case !a.Neg && b.Neg:
		return 1
	case a.Mag == b.Mag:
		return 0
	case (a.Mag > b.Mag) != a.Neg:
		return 1
	default:
		return -1
	}
}

// String formats the value in decimal.
func (a Int) String() string {
	if a.Neg {
		return "-" + strconv.FormatUint(a.Mag, 10)
	}
	return strconv.FormatUint(a.Mag, 10)
}

// Kind implements tensor.Num for sign-magnitude integers.
type Kind struct{}

func (Kind) Add(a, b Int) (Int, error) { return a.Add(b), nil }
func (Kind) Sub(a, b Int) (Int, error) { return a.Sub(b), nil }
func (Kind) Mul(a, b Int) (Int, error) { return a.Mul(b), nil }
func (Kind) Div(a, b Int) (Int, error) { return a.Div(b) }
func (Kind) Cmp(a, b Int) int          { return a.Cmp(b) }
func (Kind) Zero() Int                 { return Int{} }
func (Kind) MaxValue() Int             { return Int{Mag: math.MaxUint64} }
