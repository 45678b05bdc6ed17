package tensor

import "fmt"

// Transpose permutes the tensor's axes: out[i0, i1, ...] =
// t[i(axes[0]), i(axes[1]), ...]. A fresh flat data slice is built in
// output order.
func (e *Engine[T]) Transpose(t *Tensor[T], axes []int) (*Tensor[T], error) {
	outShape, err := t.shape.PermuteShape(axes)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(t.data))
	inIdx := make([]int, len(t.shape))
	for n := range out {
		if err := e.guard.Check(); err != nil {
			return nil, err
		}
		outIdx, err := outShape.Unravel(n)
		if err != nil {
			return nil, err
		}
		// Inverse-permute the output coordinate back into input axes.
		for i, a := range axes {
			inIdx[a] = outIdx[i]
		}
		flat, err := t.shape.Ravel(inIdx)
		if err != nil {
			return nil, err
		}
		out[n] = t.data[flat]
	}
	return newUnchecked(outShape, out), nil
}

// InversePermutation returns the axes list that undoes axes, so that
// Transpose(Transpose(t, axes), InversePermutation(axes)) == t.
func InversePermutation(axes []int) ([]int, error) {
	inv := make([]int, len(axes))
	seen := make([]bool, len(axes))
	for i, a := range axes {
		if a < 0 || a >= len(axes) || seen[a] {
			return nil, fmt.Errorf("%w: axes %v", ErrInvalidPermutation, axes)
		}
		seen[a] = true
		inv[a] = i
	}
	return inv, nil
}

// MatMul multiplies two tensors of rank 1 or 2.
//
//   - rank 1 x rank 1: the dot product, returned as a length-1
//     rank-1 tensor
//   - rank 1 x rank 2: the first operand is padded with a leading 1,
//     which is removed from the result
//   - rank 2 x rank 1: the second operand is padded with a trailing
//     1, which is removed from the result
//   - rank 2 x rank 2: the standard m x n . n x p product
//
// Inner-dimension mismatches fail with ErrDimensionMismatch; ranks
// above 2 fail with ErrUnsupportedRank.
func (e *Engine[T]) MatMul(a, b *Tensor[T]) (*Tensor[T], error) {
	if len(a.shape) == 0 || len(a.shape) > 2 || len(b.shape) == 0 || len(b.shape) > 2 {
		return nil, fmt.Errorf("%w: matmul supports rank 1 and 2, got %v x %v",
			ErrUnsupportedRank, a.shape, b.shape)
	}

	if len(a.shape) == 1 && len(b.shape) == 1 {
		return e.dot(a, b)
	}

	// Pad rank-1 operands to rank 2, remembering which padded axis to
	// drop from the result.
	left, right := a, b
	dropLeading, dropTrailing := false, false
	if len(a.shape) == 1 {
		padded, err := a.Reshape(Shape{1, a.shape[0]})
		if err != nil {
			return nil, err
		}
		left, dropLeading = padded, true
	}
	if len(b.shape) == 1 {
		padded, err := b.Reshape(Shape{b.shape[0], 1})
		if err != nil {
			return nil, err
		}
		right, dropTrailing = padded, true
	}

	result, err := e.matmul2D(left, right)
	if err != nil {
		return nil, err
	}

	// Remove the padded dimension again.
	switch {
	case dropLeading:
		return result.Reshape(Shape{result.shape[1]})
	case dropTrailing:
		return result.Reshape(Shape{result.shape[0]})
	default:
		return result, nil
	}
}

// dot computes the rank-1 dot product as a length-1 tensor.
func (e *Engine[T]) dot(a, b *Tensor[T]) (*Tensor[T], error) {
	if a.shape[0] != b.shape[0] {
		return nil, fmt.Errorf("%w: dot product of lengths %d and %d",
			ErrDimensionMismatch, a.shape[0], b.shape[0])
	}
	acc := e.num.Zero()
	for i := range a.data {
		if err := e.guard.Check(); err != nil {
			return nil, err
		}
		p, err := e.num.Mul(a.data[i], b.data[i])
		if err != nil {
			return nil, err
		}
		acc, err = e.num.Add(acc, p)
		if err != nil {
			return nil, err
		}
	}
	return newUnchecked(Shape{1}, []T{acc}), nil
}

// matmul2D is the m x n . n x p triple loop.
func (e *Engine[T]) matmul2D(a, b *Tensor[T]) (*Tensor[T], error) {
	m, n := a.shape[0], a.shape[1]
	if b.shape[0] != n {
		return nil, fmt.Errorf("%w: inner dimensions %v x %v", ErrDimensionMismatch, a.shape, b.shape)
	}
	p := b.shape[1]
	out := make([]T, m*p)
	for i := 0; i < m; i++ {
		if err := e.guard.Check(); err != nil {
			return nil, err
		}
		for j := 0; j < p; j++ {
			acc := e.num.Zero()
			for k := 0; k < n; k++ {
				prod, err := e.num.Mul(a.data[i*n+k], b.data[k*p+j])
				if err != nil {
					return nil, err
				}
				acc, err = e.num.Add(acc, prod)
				if err != nil {
					return nil, err
				}
			}
			out[i*p+j] = acc
		}
	}
	return newUnchecked(Shape{m, p}, out), nil
}
