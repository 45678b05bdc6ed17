// Copyright 2026 The qtensor Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the generic tensor container and the
// shape/index engine for the qtensor kernel.
//
// # Overview
//
// Tensors are immutable values: a Shape plus a flat, row-major data
// slice. Every operation builds a fresh tensor; nothing mutates in
// place and no output aliases an input buffer. The package provides:
//   - Shape bookkeeping: strides, index (un)raveling, reduction and
//     permutation output shapes, broadcast mapping
//   - Generic tensors (Tensor[T]) over any element kind
//   - An Engine binding an element kind's arithmetic (Num[T]) and an
//     execution budget, exposing elementwise, reduction, transpose
//     and matmul algorithms
//
// # Element kinds
//
// Algorithms are written once against the Num[T] capability set
// (add, sub, mul, div, compare, zero, max value) and instantiated per
// kind. Unsigned integer kinds live here; sign-magnitude signed
// integers and fixed-point fractional numbers are provided by the
// signed and fixed packages.
//
// # Basic usage
//
//	e := tensor.NewEngine[uint32](tensor.UintKind[uint32]{}, nil)
//
//	a, _ := tensor.New(tensor.Shape{2, 2}, []uint32{1, 2, 3, 4})
//	b, _ := tensor.New(tensor.Shape{1, 2}, []uint32{10, 20})
//
//	sum, _ := e.Add(a, b) // broadcasts to [11 22 13 24]
//
// # Broadcasting
//
// Two shapes are compatible when, aligned from the trailing axis,
// every pair of sizes is equal or one of them is 1. Elementwise
// operations iterate and shape their output by the operand with the
// longer flattened data (ties go to the second operand); see Engine
// for the exact rule.
//
// # Errors
//
// Failures are reported as wrapped sentinel errors (ErrShapeMismatch,
// ErrIndexOutOfBounds, ...). An operation either returns a fully
// valid tensor or an error, never a partial result.
package tensor
