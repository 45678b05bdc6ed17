// Package ops provides ONNX-style operators built on the tensor
// engine and the fixed-point kernel. It is the consumer surface of
// the core: each operator picks an element kind's capability and
// composes the generic algorithms, as the per-dtype operator wrappers
// of an ONNX runtime would.
package ops

import (
	"github.com/qtensor-ml/qtensor/tensor"
)

// Abs replaces each element with its absolute value, computed as
// zero - x for negative elements so kind sign rules apply.
func Abs[T any](e *tensor.Engine[T], x *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	num := e.Num()
	zero := num.Zero()
	return e.Map(x, func(v T) (T, error) {
		if num.Cmp(v, zero) < 0 {
			return num.Sub(zero, v)
		}
		return v, nil
	})
}

// Neg negates each element.
func Neg[T any](e *tensor.Engine[T], x *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	num := e.Num()
	zero := num.Zero()
	return e.Map(x, func(v T) (T, error) {
		return num.Sub(zero, v)
	})
}

// Sign maps each element to -1, 0 or +1 in the element kind.
func Sign[T any](e *tensor.Engine[T], x *tensor.Tensor[T], one T) (*tensor.Tensor[T], error) {
	num := e.Num()
	zero := num.Zero()
	return e.Map(x, func(v T) (T, error) {
		switch num.Cmp(v, zero) {
		case 1:
			return one, nil
		case -1:
			return num.Sub(zero, one)
		default:
			return zero, nil
		}
	})
}

// ReLU clamps negative elements to zero.
func ReLU[T any](e *tensor.Engine[T], x *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	num := e.Num()
	zero := num.Zero()
	return e.Map(x, func(v T) (T, error) {
		if num.Cmp(v, zero) < 0 {
			return zero, nil
		}
		return v, nil
	})
}

// CumSum computes the inclusive cumulative sum along axis: each
// output element is the sum of the input elements at or before its
// position on that axis.
func CumSum[T any](e *tensor.Engine[T], x *tensor.Tensor[T], axis int) (*tensor.Tensor[T], error) {
	shape := x.Shape()
	axisNorm := axis
	if axisNorm < 0 {
		axisNorm += len(shape)
	}
	base, err := shape.ReduceShape(axisNorm, false)
	if err != nil {
		return nil, err
	}

	num := e.Num()
	out := make([]T, shape.NumElements())
	data := x.Data()
	guard := e.Guard()
	for n := 0; n < base.NumElements(); n++ {
		if err := guard.Check(); err != nil {
			return nil, err
		}
		outIdx, err := base.Unravel(n)
		if err != nil {
			return nil, err
		}
		acc := num.Zero()
		for pos := 0; pos < shape[axisNorm]; pos++ {
			flat, err := shape.Ravel(tensor.CombineIndices(outIdx, pos, axisNorm))
			if err != nil {
				return nil, err
			}
			acc, err = num.Add(acc, data[flat])
			if err != nil {
				return nil, err
			}
			out[flat] = acc
		}
	}
	return tensor.New(shape, out)
}
