package fixed

// Shared constants, stored as integers with a high fixed number of
// fractional bits and shifted down to the working scale. Truncation
// at conversion keeps every scale's constant deterministic.
const (
	// pi61 is π at 61 fractional bits. The same integer reads as 2π
	// at 60 bits and π/2 at 62 bits.
	pi61 = 7244019458077122842

	quarterPi62 = 3622009729038561421 // π/4 at 62 bits
	sixthPi62   = 2414673152692374280 // π/6 at 62 bits
	ln2_63      = 6393154322601327829 // ln 2 at 63 bits
	log2e62     = 6653256548922161245 // log2 e at 62 bits
	sqrt3_62    = 7987674492471257550 // √3 at 62 bits
	tanPi12_62  = 1235697544383518257 // tan(π/12) = 2-√3 at 62 bits
)

// fromConst shifts a high-precision constant down to this scale.
func (s Scale) fromConst(c uint64, fracBits uint) Fixed {
	return Fixed{Mag: c >> (fracBits - uint(s))}
}

// Pi returns π at this scale.
func (s Scale) Pi() Fixed { return s.fromConst(pi61, 61) }

// TwoPi returns 2π at this scale.
func (s Scale) TwoPi() Fixed { return s.fromConst(pi61, 60) }

// HalfPi returns π/2 at this scale.
func (s Scale) HalfPi() Fixed { return s.fromConst(pi61, 62) }

// Ln2 returns ln 2 at this scale.
func (s Scale) Ln2() Fixed { return s.fromConst(ln2_63, 63) }
