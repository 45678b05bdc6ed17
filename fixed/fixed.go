package fixed

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/qtensor-ml/qtensor/tensor"
)

// Scale is the number of fractional bits of a fixed-point
// configuration.
type Scale uint8

// Supported binary-point configurations.
const (
	Q16 Scale = 16
	Q23 Scale = 23
	Q32 Scale = 32
)

// String returns a human-readable name for the scale.
func (s Scale) String() string {
	return fmt.Sprintf("Q%d", uint8(s))
}

// Fixed is a sign-magnitude fixed-point number. Its value depends on
// the Scale it is used at: (Neg ? -1 : 1) * Mag / 2^scale. The zero
// value is the number 0.
type Fixed struct {
	Mag uint64
	Neg bool
}

// norm builds a Fixed, normalizing the sign of zero.
func norm(mag uint64, neg bool) Fixed {
	if mag == 0 {
		return Fixed{}
	}
	return Fixed{Mag: mag, Neg: neg}
}

// IsZero reports whether the value is 0.
func (x Fixed) IsZero() bool { return x.Mag == 0 }

// Negate returns the negation. Zero stays positive.
func (x Fixed) Negate() Fixed { return norm(x.Mag, !x.Neg) }

// Abs returns the absolute value.
func (x Fixed) Abs() Fixed { return Fixed{Mag: x.Mag} }

// Cmp returns -1, 0 or +1 under the sign-magnitude total order:
// negative below positive, magnitude order within a sign, reversed
// for negatives.
func (x Fixed) Cmp(y Fixed) int {
	switch {
	case x.Neg && !y.Neg:
		return -1
	case !x.Neg && y.Neg:
		return 1
	case x.Mag == y.Mag:
		return 0
	case (x.Mag > y.Mag) != x.Neg:
		return 1
	default:
		return -1
	}
}

// One returns 1 at this scale.
func (s Scale) One() Fixed { return Fixed{Mag: 1 << s} }

// Half returns 1/2 at this scale.
func (s Scale) Half() Fixed { return Fixed{Mag: 1 << (s - 1)} }

// FromInt converts an integer, saturating at the representable range.
func (s Scale) FromInt(v int64) Fixed {
	neg := v < 0
	var mag uint64
	if neg {
		mag = uint64(-(v + 1)) + 1
	} else {
		mag = uint64(v)
	}
	if mag >= 1<<(64-s) {
		return norm(math.MaxUint64, neg)
	}
	return norm(mag<<s, neg)
}

// fromUint converts a non-negative integer magnitude, saturating.
func (s Scale) fromUint(n uint64) Fixed {
	if n >= 1<<(64-s) {
		return Fixed{Mag: math.MaxUint64}
	}
	return Fixed{Mag: n << s}
}

// FromFloat converts a float64 to the nearest representable value.
// Conversion helper only; kernel arithmetic never touches floats.
func (s Scale) FromFloat(f float64) Fixed {
	neg := math.Signbit(f)
	a := math.Abs(f)
	if math.IsNaN(a) {
		return Fixed{}
	}
	m := math.Round(a * float64(uint64(1)<<s))
	if m >= math.MaxUint64 {
		return norm(math.MaxUint64, neg)
	}
	return norm(uint64(m), neg)
}

// Float converts to float64. Conversion helper only.
func (s Scale) Float(x Fixed) float64 {
	f := float64(x.Mag) / float64(uint64(1)<<s)
	if x.Neg {
		return -f
	}
	return f
}

// Format renders the value in decimal at this scale.
func (s Scale) Format(x Fixed) string {
	return fmt.Sprintf("%g", s.Float(x))
}

// Add returns a+b: same signs add magnitudes (saturating), different
// signs subtract the smaller magnitude from the larger with the sign
// following the larger.
func (s Scale) Add(a, b Fixed) Fixed {
	if a.Neg == b.Neg {
		sum, carry := bits.Add64(a.Mag, b.Mag, 0)
		if carry != 0 {
			sum = math.MaxUint64
		}
		return norm(sum, a.Neg)
	}
	if a.Mag >= b.Mag {
		return norm(a.Mag-b.Mag, a.Neg)
	}
	return norm(b.Mag-a.Mag, b.Neg)
}

// Sub returns a-b.
func (s Scale) Sub(a, b Fixed) Fixed {
	return s.Add(a, b.Negate())
}

// Mul returns a*b: (a.Mag * b.Mag) >> scale through a 128-bit
// intermediate, sign as the XOR of the operand signs, saturating.
func (s Scale) Mul(a, b Fixed) Fixed {
	hi, lo := bits.Mul64(a.Mag, b.Mag)
	if hi>>s != 0 {
		return norm(math.MaxUint64, a.Neg != b.Neg)
	}
	return norm(hi<<(64-s)|lo>>s, a.Neg != b.Neg)
}

// Div returns a/b: (a.Mag << scale) / b.Mag, sign as the XOR of the
// operand signs, truncating toward zero and saturating on overflow.
// A zero divisor fails with tensor.ErrDivisionByZero.
func (s Scale) Div(a, b Fixed) (Fixed, error) {
	if b.Mag == 0 {
		return Fixed{}, fmt.Errorf("%w: %s / 0", tensor.ErrDivisionByZero, s.Format(a))
	}
	hi := a.Mag >> (64 - s)
	lo := a.Mag << s
	if hi >= b.Mag {
		return norm(math.MaxUint64, a.Neg != b.Neg), nil
	}
	q, _ := bits.Div64(hi, lo, b.Mag)
	return norm(q, a.Neg != b.Neg), nil
}

// mulInt scales the magnitude by a small integer, saturating.
func (s Scale) mulInt(x Fixed, k uint64) Fixed {
	hi, lo := bits.Mul64(x.Mag, k)
	if hi != 0 {
		lo = math.MaxUint64
	}
	return norm(lo, x.Neg)
}

// divInt divides the magnitude by a small integer, truncating.
func (s Scale) divInt(x Fixed, k uint64) Fixed {
	return norm(x.Mag/k, x.Neg)
}

// Kind adapts a Scale to the tensor engine's numeric capability set.
type Kind struct {
	Scale Scale
}

func (k Kind) Add(a, b Fixed) (Fixed, error) { return k.Scale.Add(a, b), nil }
func (k Kind) Sub(a, b Fixed) (Fixed, error) { return k.Scale.Sub(a, b), nil }
func (k Kind) Mul(a, b Fixed) (Fixed, error) { return k.Scale.Mul(a, b), nil }
func (k Kind) Div(a, b Fixed) (Fixed, error) { return k.Scale.Div(a, b) }
func (k Kind) Cmp(a, b Fixed) int            { return a.Cmp(b) }
func (k Kind) Zero() Fixed                   { return Fixed{} }
func (k Kind) MaxValue() Fixed               { return Fixed{Mag: math.MaxUint64} }
