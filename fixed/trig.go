package fixed

import (
	"fmt"

	"github.com/qtensor-ml/qtensor/tensor"
)

// sinTerms and atanTerms bound the series loops; with arguments
// reduced to [0, π/2] and [0, tan(π/12)] the terms underflow to zero
// first at every supported scale.
const (
	sinTerms  = 14
	atanTerms = 12
)

// reduceAngle maps a non-negative angle into [0, 2π).
func (s Scale) reduceAngle(ax Fixed) Fixed {
	twoPi := s.TwoPi()
	if ax.Cmp(twoPi) < 0 {
		return ax
	}
	q, _ := s.Div(ax, twoPi)
	r := s.Sub(ax, s.Mul(s.fromUint(q.Mag>>s), twoPi))
	if r.Cmp(twoPi) >= 0 {
		r = s.Sub(r, twoPi)
	}
	return r.Abs()
}

// sinSeries is the Taylor series for sin u, u in [0, π/2].
func (s Scale) sinSeries(u Fixed) Fixed {
	u2 := s.Mul(u, u)
	sum := u
	term := u
	for k := uint64(1); k <= sinTerms; k++ {
		term = s.divInt(s.Mul(term, u2), 2*k*(2*k+1))
		if term.IsZero() {
			break
		}
		if k%2 == 1 {
			sum = s.Sub(sum, term)
		} else {
			sum = s.Add(sum, term)
		}
	}
	return sum
}

// cosSeries is the Taylor series for cos u, u in [0, π/2].
func (s Scale) cosSeries(u Fixed) Fixed {
	u2 := s.Mul(u, u)
	sum := s.One()
	term := s.One()
	for k := uint64(1); k <= sinTerms; k++ {
		term = s.divInt(s.Mul(term, u2), (2*k-1)*(2*k))
		if term.IsZero() {
			break
		}
		if k%2 == 1 {
			sum = s.Sub(sum, term)
		} else {
			sum = s.Add(sum, term)
		}
	}
	return sum
}

// Sin returns the sine, reducing modulo 2π and folding quadrants onto
// the series interval [0, π/2].
func (s Scale) Sin(x Fixed) Fixed {
	r := s.reduceAngle(x.Abs())
	pi := s.Pi()
	halfPi := s.HalfPi()
	threeHalfPi := s.Add(pi, halfPi)

	var v Fixed
	switch {
	case r.Cmp(halfPi) <= 0:
		v = s.sinSeries(r)
	case r.Cmp(pi) <= 0:
		v = s.sinSeries(s.Sub(pi, r))
	case r.Cmp(threeHalfPi) <= 0:
		v = s.sinSeries(s.Sub(r, pi)).Negate()
	default:
		v = s.sinSeries(s.Sub(s.TwoPi(), r)).Negate()
	}
	if x.Neg {
		return v.Negate()
	}
	return v
}

// Cos returns the cosine; even, so the argument sign is dropped.
func (s Scale) Cos(x Fixed) Fixed {
	r := s.reduceAngle(x.Abs())
	pi := s.Pi()
	halfPi := s.HalfPi()
	threeHalfPi := s.Add(pi, halfPi)

	switch {
	case r.Cmp(halfPi) <= 0:
		return s.cosSeries(r)
	case r.Cmp(pi) <= 0:
		return s.cosSeries(s.Sub(pi, r)).Negate()
	case r.Cmp(threeHalfPi) <= 0:
		return s.cosSeries(s.Sub(r, pi)).Negate()
	default:
		return s.cosSeries(s.Sub(s.TwoPi(), r))
	}
}

// Tan returns sin/cos. Arguments whose cosine truncates to zero fail
// with tensor.ErrDivisionByZero.
func (s Scale) Tan(x Fixed) (Fixed, error) {
	c := s.Cos(x)
	if c.IsZero() {
		return Fixed{}, fmt.Errorf("%w: tan of %s (cos is zero)", tensor.ErrDivisionByZero, s.Format(x))
	}
	return s.Div(s.Sin(x), c)
}

// Atan returns the arctangent.
//
// Reduction: |t| > 1 goes through atan(t) = π/2 - atan(1/t), then
// arguments above tan(π/12) through the π/6 identity with √3, leaving
// a series argument within [-tan(π/12), tan(π/12)] where the
// alternating series converges geometrically. The sign-aware kernel
// arithmetic carries negative intermediate arguments through the
// series unchanged.
func (s Scale) Atan(x Fixed) Fixed {
	t := x.Abs()
	one := s.One()

	invert := t.Cmp(one) > 0
	if invert {
		t, _ = s.Div(one, t)
	}

	reduced := t.Cmp(s.fromConst(tanPi12_62, 62)) > 0
	if reduced {
		sqrt3 := s.fromConst(sqrt3_62, 62)
		num := s.Sub(s.Mul(t, sqrt3), one)
		den := s.Add(t, sqrt3)
		t, _ = s.Div(num, den)
	}

	t2 := s.Mul(t, t)
	sum := t
	term := t
	for k := uint64(1); k <= atanTerms; k++ {
		term = s.Mul(term, t2)
		v := s.divInt(term, 2*k+1)
		if term.IsZero() {
			break
		}
		if k%2 == 1 {
			sum = s.Sub(sum, v)
		} else {
			sum = s.Add(sum, v)
		}
	}

	if reduced {
		sum = s.Add(s.fromConst(sixthPi62, 62), sum)
	}
	if invert {
		sum = s.Sub(s.HalfPi(), sum)
	}
	if x.Neg {
		return sum.Negate()
	}
	return sum
}

// Asin returns the arcsine via atan(x / sqrt(1 - x^2)). Arguments
// with |x| > 1 fail with tensor.ErrInvalidArgument.
func (s Scale) Asin(x Fixed) (Fixed, error) {
	one := s.One()
	switch x.Abs().Cmp(one) {
	case 1:
		return Fixed{}, fmt.Errorf("%w: asin of %s outside [-1, 1]", tensor.ErrInvalidArgument, s.Format(x))
	case 0:
		return norm(s.HalfPi().Mag, x.Neg), nil
	}
	d, _ := s.Sqrt(s.Sub(one, s.Mul(x, x)))
	if d.IsZero() {
		return norm(s.HalfPi().Mag, x.Neg), nil
	}
	t, _ := s.Div(x, d)
	return s.Atan(t), nil
}

// Acos returns the arccosine, π/2 - asin(x). Arguments with |x| > 1
// fail with tensor.ErrInvalidArgument.
func (s Scale) Acos(x Fixed) (Fixed, error) {
	a, err := s.Asin(x)
	if err != nil {
		return Fixed{}, err
	}
	return s.Sub(s.HalfPi(), a), nil
}
