package fixed

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/qtensor-ml/qtensor/tensor"
)

// expTerms bounds the Taylor series for e^r with r in [0, ln 2); the
// term magnitude underflows to zero well before this for every
// supported scale.
const expTerms = 24

// Exp returns e^x, saturating at the maximum magnitude on overflow.
//
// Range reduction: |x| = n*ln2 + r with r in [0, ln 2), so
// e^|x| = 2^n * e^r; e^r is a truncating Taylor series through the
// kernel's own arithmetic. Negative arguments take the reciprocal.
func (s Scale) Exp(x Fixed) Fixed {
	if x.IsZero() {
		return s.One()
	}
	ax := x.Abs()
	ln2 := s.Ln2()
	q, _ := s.Div(ax, ln2)
	n := q.Mag >> s
	r := s.Sub(ax, s.Mul(s.fromUint(n), ln2))

	sum := s.One()
	term := s.One()
	for k := uint64(1); k <= expTerms; k++ {
		term = s.divInt(s.Mul(term, r), k)
		if term.IsZero() {
			break
		}
		sum = s.Add(sum, term)
	}

	var pos Fixed
	if n >= 64 || bits.Len64(sum.Mag)+int(n) > 64 {
		pos = Fixed{Mag: math.MaxUint64}
	} else {
		pos = Fixed{Mag: sum.Mag << n}
	}
	if !x.Neg {
		return pos
	}
	inv, _ := s.Div(s.One(), pos) // pos >= 1, never zero
	return inv
}

// lnTerms bounds the atanh series for ln m with m in [1, 2); the
// series argument is below 1/3 so convergence is geometric.
const lnTerms = 14

// Ln returns the natural logarithm. Zero and negative arguments fail
// with tensor.ErrInvalidArgument.
//
// The argument is normalized as x = 2^k * m with m in [1, 2); then
// ln m = 2*atanh((m-1)/(m+1)) by series and ln x = k*ln2 + ln m.
func (s Scale) Ln(x Fixed) (Fixed, error) {
	if x.Neg || x.IsZero() {
		return Fixed{}, fmt.Errorf("%w: ln of non-positive value %s", tensor.ErrInvalidArgument, s.Format(x))
	}
	k := bits.Len64(x.Mag) - 1 - int(s)
	var m Fixed
	if k >= 0 {
		m = Fixed{Mag: x.Mag >> k}
	} else {
		m = Fixed{Mag: x.Mag << uint(-k)}
	}

	num := s.Sub(m, s.One())
	den := s.Add(m, s.One())
	t, _ := s.Div(num, den) // den >= 2
	t2 := s.Mul(t, t)
	sum := t
	pow := t
	for j := 1; j <= lnTerms; j++ {
		pow = s.Mul(pow, t2)
		if pow.IsZero() {
			break
		}
		sum = s.Add(sum, s.divInt(pow, uint64(2*j+1)))
	}
	lnm := s.mulInt(sum, 2)

	kTerm := s.Mul(s.fromUint(uint64(absInt(k))), s.Ln2())
	if k < 0 {
		kTerm = kTerm.Negate()
	}
	return s.Add(kTerm, lnm), nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Sqrt returns the square root by 128-bit digit-by-digit integer
// square root of Mag << scale. Negative arguments fail with
// tensor.ErrInvalidArgument.
func (s Scale) Sqrt(x Fixed) (Fixed, error) {
	if x.Neg {
		return Fixed{}, fmt.Errorf("%w: sqrt of negative value %s", tensor.ErrInvalidArgument, s.Format(x))
	}
	hi := x.Mag >> (64 - s)
	lo := x.Mag << s
	return Fixed{Mag: isqrt128(hi, lo)}, nil
}

// isqrt128 is the restoring (digit-by-digit) square root of a 128-bit
// operand, two bits per iteration.
func isqrt128(hi, lo uint64) uint64 {
	var remHi, remLo, root uint64
	for i := 0; i < 64; i++ {
		b := hi >> 62
		hi = hi<<2 | lo>>62
		lo <<= 2
		remHi = remHi<<2 | remLo>>62
		remLo = remLo<<2 | b

		trialHi := root >> 62
		trialLo := root<<2 | 1
		if remHi > trialHi || (remHi == trialHi && remLo >= trialLo) {
			var borrow uint64
			remLo, borrow = bits.Sub64(remLo, trialLo, 0)
			remHi = remHi - trialHi - borrow
			root = root<<1 | 1
		} else {
			root <<= 1
		}
	}
	return root
}

// Sinh returns the hyperbolic sine, (e^x - e^-x)/2.
func (s Scale) Sinh(x Fixed) Fixed {
	ep := s.Exp(x.Abs())
	en, _ := s.Div(s.One(), ep)
	v := s.divInt(s.Sub(ep, en), 2)
	if x.Neg {
		return v.Negate()
	}
	return v
}

// Cosh returns the hyperbolic cosine, (e^x + e^-x)/2.
func (s Scale) Cosh(x Fixed) Fixed {
	ep := s.Exp(x.Abs())
	en, _ := s.Div(s.One(), ep)
	return s.divInt(s.Add(ep, en), 2)
}

// Tanh returns the hyperbolic tangent, sinh/cosh.
func (s Scale) Tanh(x Fixed) Fixed {
	ep := s.Exp(x.Abs())
	en, _ := s.Div(s.One(), ep)
	v, _ := s.Div(s.Sub(ep, en), s.Add(ep, en)) // denominator >= 2
	if x.Neg {
		return v.Negate()
	}
	return v
}

// Asinh returns the inverse hyperbolic sine, ln(|x| + sqrt(x^2+1))
// with the argument's sign.
func (s Scale) Asinh(x Fixed) Fixed {
	ax := x.Abs()
	sq, _ := s.Sqrt(s.Add(s.Mul(ax, ax), s.One()))
	v, _ := s.Ln(s.Add(ax, sq)) // argument >= 1
	if x.Neg {
		return v.Negate()
	}
	return v
}

// Acosh returns the inverse hyperbolic cosine, ln(x + sqrt(x^2-1)).
// Arguments below 1 fail with tensor.ErrInvalidArgument.
func (s Scale) Acosh(x Fixed) (Fixed, error) {
	if x.Cmp(s.One()) < 0 {
		return Fixed{}, fmt.Errorf("%w: acosh of %s below 1", tensor.ErrInvalidArgument, s.Format(x))
	}
	sq, _ := s.Sqrt(s.Sub(s.Mul(x, x), s.One()))
	v, _ := s.Ln(s.Add(x, sq))
	return v, nil
}

// Atanh returns the inverse hyperbolic tangent,
// ln((1+x)/(1-x)) / 2. Arguments with |x| >= 1 fail with
// tensor.ErrInvalidArgument.
func (s Scale) Atanh(x Fixed) (Fixed, error) {
	if x.Abs().Cmp(s.One()) >= 0 {
		return Fixed{}, fmt.Errorf("%w: atanh of %s outside (-1, 1)", tensor.ErrInvalidArgument, s.Format(x))
	}
	one := s.One()
	q, _ := s.Div(s.Add(one, x), s.Sub(one, x)) // denominator > 0
	l, err := s.Ln(q)
	if err != nil {
		return Fixed{}, err
	}
	return s.divInt(l, 2), nil
}
