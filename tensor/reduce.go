package tensor

import "fmt"

// reduceBase iterates every coordinate of the axis-removed output
// shape and folds the input elements along axis in increasing
// axis-index order. fold receives the running accumulator, the
// element and its position along the axis; first is the accumulator
// seed for each output coordinate.
func (e *Engine[T]) reduceBase(t *Tensor[T], axis int, first func() T,
	fold func(acc T, v T, pos int) (T, error)) ([]T, error) {
	a, err := normAxis(axis, len(t.shape))
	if err != nil {
		return nil, err
	}
	base, err := t.shape.ReduceShape(a, false)
	if err != nil {
		return nil, err
	}
	out := make([]T, base.NumElements())
	for n := range out {
		if err := e.guard.Check(); err != nil {
			return nil, err
		}
		outIdx, err := base.Unravel(n)
		if err != nil {
			return nil, err
		}
		acc := first()
		for pos := 0; pos < t.shape[a]; pos++ {
			inIdx := CombineIndices(outIdx, pos, a)
			flat, err := t.shape.Ravel(inIdx)
			if err != nil {
				return nil, err
			}
			acc, err = fold(acc, t.data[flat], pos)
			if err != nil {
				return nil, err
			}
		}
		out[n] = acc
	}
	return out, nil
}

// reduceShapeFor picks the keep-dims or axis-removed output shape.
func reduceShapeFor(s Shape, axis int, keepDims bool) (Shape, error) {
	a, err := normAxis(axis, len(s))
	if err != nil {
		return nil, err
	}
	return s.ReduceShape(a, keepDims)
}

// ReduceSum sums along axis. A zero-size axis yields zeros.
func (e *Engine[T]) ReduceSum(t *Tensor[T], axis int, keepDims bool) (*Tensor[T], error) {
	out, err := e.reduceBase(t, axis, e.num.Zero,
		func(acc, v T, _ int) (T, error) { return e.num.Add(acc, v) })
	if err != nil {
		return nil, err
	}
	shape, err := reduceShapeFor(t.shape, axis, keepDims)
	if err != nil {
		return nil, err
	}
	return newUnchecked(shape, out), nil
}

// reduceExtreme folds min or max along axis, seeding from the first
// element so the result is correct for kinds whose values may all be
// negative. keep decides whether v replaces the accumulator.
func (e *Engine[T]) reduceExtreme(t *Tensor[T], axis int, keepDims bool,
	keep func(c int) bool) (*Tensor[T], error) {
	aNorm, err := normAxis(axis, len(t.shape))
	if err != nil {
		return nil, err
	}
	if t.shape[aNorm] == 0 {
		return nil, fmt.Errorf("%w: cannot reduce along zero-size axis %d of shape %v",
			ErrEmptyTensor, axis, t.shape)
	}
	out, err := e.reduceBase(t, axis, e.num.Zero,
		func(acc, v T, pos int) (T, error) {
			if pos == 0 || keep(e.num.Cmp(v, acc)) {
				return v, nil
			}
			return acc, nil
		})
	if err != nil {
		return nil, err
	}
	shape, err := reduceShapeFor(t.shape, axis, keepDims)
	if err != nil {
		return nil, err
	}
	return newUnchecked(shape, out), nil
}

// ReduceMin takes the minimum along axis. A zero-size axis fails with
// ErrEmptyTensor.
func (e *Engine[T]) ReduceMin(t *Tensor[T], axis int, keepDims bool) (*Tensor[T], error) {
	return e.reduceExtreme(t, axis, keepDims, func(c int) bool { return c < 0 })
}

// ReduceMax takes the maximum along axis. A zero-size axis fails with
// ErrEmptyTensor.
func (e *Engine[T]) ReduceMax(t *Tensor[T], axis int, keepDims bool) (*Tensor[T], error) {
	return e.reduceExtreme(t, axis, keepDims, func(c int) bool { return c > 0 })
}

// argReduce returns the position along axis of the extreme element.
// Ties keep the first (lowest axis index) occurrence.
func (e *Engine[T]) argReduce(t *Tensor[T], axis int, keepDims bool,
	keep func(c int) bool) (*Tensor[int64], error) {
	a, err := normAxis(axis, len(t.shape))
	if err != nil {
		return nil, err
	}
	if t.shape[a] == 0 {
		return nil, fmt.Errorf("%w: cannot reduce along zero-size axis %d of shape %v",
			ErrEmptyTensor, axis, t.shape)
	}
	base, err := t.shape.ReduceShape(a, false)
	if err != nil {
		return nil, err
	}
	out := make([]int64, base.NumElements())
	for n := range out {
		if err := e.guard.Check(); err != nil {
			return nil, err
		}
		outIdx, err := base.Unravel(n)
		if err != nil {
			return nil, err
		}
		var best T
		bestPos := 0
		for pos := 0; pos < t.shape[a]; pos++ {
			flat, err := t.shape.Ravel(CombineIndices(outIdx, pos, a))
			if err != nil {
				return nil, err
			}
			v := t.data[flat]
			// Strict comparison keeps the first occurrence on ties.
			if pos == 0 || keep(e.num.Cmp(v, best)) {
				best = v
				bestPos = pos
			}
		}
		out[n] = int64(bestPos)
	}
	shape, err := t.shape.ReduceShape(a, keepDims)
	if err != nil {
		return nil, err
	}
	return newUnchecked(shape, out), nil
}

// ArgMax returns the axis position of the maximal element, first
// occurrence on ties.
func (e *Engine[T]) ArgMax(t *Tensor[T], axis int, keepDims bool) (*Tensor[int64], error) {
	return e.argReduce(t, axis, keepDims, func(c int) bool { return c > 0 })
}

// ArgMin returns the axis position of the minimal element, first
// occurrence on ties.
func (e *Engine[T]) ArgMin(t *Tensor[T], axis int, keepDims bool) (*Tensor[int64], error) {
	return e.argReduce(t, axis, keepDims, func(c int) bool { return c < 0 })
}

// extreme scans the full flat data once, seeded from the first
// element.
func (e *Engine[T]) extreme(t *Tensor[T], keep func(c int) bool) (T, error) {
	var best T
	if len(t.data) == 0 {
		return best, fmt.Errorf("%w: no elements in shape %v", ErrEmptyTensor, t.shape)
	}
	best = t.data[0]
	for _, v := range t.data[1:] {
		if err := e.guard.Check(); err != nil {
			return best, err
		}
		if keep(e.num.Cmp(v, best)) {
			best = v
		}
	}
	return best, nil
}

// Min returns the smallest element. Empty tensors fail with
// ErrEmptyTensor.
func (e *Engine[T]) Min(t *Tensor[T]) (T, error) {
	return e.extreme(t, func(c int) bool { return c < 0 })
}

// Max returns the largest element. Empty tensors fail with
// ErrEmptyTensor.
func (e *Engine[T]) Max(t *Tensor[T]) (T, error) {
	return e.extreme(t, func(c int) bool { return c > 0 })
}

// Sum reduces the full flat data to a single value.
func (e *Engine[T]) Sum(t *Tensor[T]) (T, error) {
	acc := e.num.Zero()
	var err error
	for _, v := range t.data {
		if err := e.guard.Check(); err != nil {
			return acc, err
		}
		acc, err = e.num.Add(acc, v)
		if err != nil {
			return acc, err
		}
	}
	return acc, nil
}
