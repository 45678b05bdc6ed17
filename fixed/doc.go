// Copyright 2026 The qtensor Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fixed implements the sign-magnitude fixed-point numeric
// kernel: fractional numbers encoded as an unsigned 64-bit magnitude
// plus a sign flag at one of a small set of binary-point scales.
//
// # Representation
//
//	value = (Neg ? -1 : 1) * Mag / 2^scale
//
// Zero always carries Neg == false. Two values may only be combined
// at the same scale; mixing scales is a caller error the package
// cannot detect.
//
// # Determinism
//
// Arithmetic truncates toward zero and saturates at the maximum
// magnitude. The transcendental functions (Exp, Ln, Sqrt, the trig
// and hyperbolic families) are fixed algorithms: range reduction
// with shared shifted-integer constants followed by series evaluated
// through the kernel's own Add/Mul/Div, so every result is
// bit-reproducible across platforms. No native floating point is
// involved outside the FromFloat/Float conversion helpers.
//
// # Usage
//
//	s := fixed.Q16
//	x := s.FromFloat(1.5)
//	y := s.Mul(x, x)         // 2.25
//	e := s.Exp(s.One())      // 2.71828...
//
// Kind adapts a Scale to the tensor package's Num interface so
// tensors of Fixed elements run through the generic engine.
package fixed
