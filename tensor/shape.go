package tensor

import "fmt"

// Shape represents the dimensions of a tensor. Rank 0 denotes a
// scalar with exactly one element.
type Shape []int

// NumElements returns the total number of elements in the tensor.
// The product of an empty shape is 1.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is non-negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: dimension %d is %d", ErrInvalidShape, i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Strides calculates row-major strides: stride[i] is the product of
// all dimensions after i, with stride[rank-1] == 1.
//
// Rank-0 shapes have no strides; callers must special-case scalars.
func (s Shape) Strides() ([]int, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: rank-0 shape has no strides", ErrInvalidShape)
	}
	strides := make([]int, len(s))
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides, nil
}

// Ravel converts a per-axis index tuple to a flat row-major position.
func (s Shape) Ravel(indices []int) (int, error) {
	if len(indices) != len(s) {
		return 0, fmt.Errorf("%w: expected %d indices, got %d", ErrDimensionMismatch, len(s), len(indices))
	}
	flat := 0
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		if indices[i] < 0 || indices[i] >= s[i] {
			return 0, fmt.Errorf("%w: index %d out of bounds for dimension %d (size %d)",
				ErrIndexOutOfBounds, indices[i], i, s[i])
		}
		flat += indices[i] * stride
		stride *= s[i]
	}
	return flat, nil
}

// Unravel converts a flat row-major position to a per-axis index
// tuple. It is the inverse of Ravel for every valid position.
func (s Shape) Unravel(flat int) ([]int, error) {
	if flat < 0 || flat >= s.NumElements() {
		return nil, fmt.Errorf("%w: flat index %d out of bounds for shape %v (%d elements)",
			ErrIndexOutOfBounds, flat, s, s.NumElements())
	}
	indices := make([]int, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		indices[i] = flat % s[i]
		flat /= s[i]
	}
	return indices, nil
}

// normAxis resolves a possibly negative axis against rank.
func normAxis(axis, rank int) (int, error) {
	a := axis
	if a < 0 {
		a += rank
	}
	if a < 0 || a >= rank {
		return 0, fmt.Errorf("%w: axis %d for rank %d", ErrAxisOutOfRange, axis, rank)
	}
	return a, nil
}

// ReduceShape derives the output shape of a reduction along axis.
// With keepDims the reduced axis is retained with size 1, otherwise
// it is removed entirely. Negative axes count from the end.
func (s Shape) ReduceShape(axis int, keepDims bool) (Shape, error) {
	a, err := normAxis(axis, len(s))
	if err != nil {
		return nil, err
	}
	if keepDims {
		out := s.Clone()
		out[a] = 1
		return out, nil
	}
	out := make(Shape, 0, len(s)-1)
	out = append(out, s[:a]...)
	out = append(out, s[a+1:]...)
	return out, nil
}

// PermuteShape derives the output shape of a transpose: axes must be
// a permutation of 0..rank, and out[i] = s[axes[i]].
func (s Shape) PermuteShape(axes []int) (Shape, error) {
	if len(axes) != len(s) {
		return nil, fmt.Errorf("%w: %d axes for rank %d", ErrDimensionMismatch, len(axes), len(s))
	}
	seen := make([]bool, len(s))
	out := make(Shape, len(s))
	for i, a := range axes {
		if a < 0 || a >= len(s) || seen[a] {
			return nil, fmt.Errorf("%w: axes %v for rank %d", ErrInvalidPermutation, axes, len(s))
		}
		seen[a] = true
		out[i] = s[a]
	}
	return out, nil
}

// CombineIndices inserts axisValue into indices at position axis,
// producing a full-rank index tuple. Reductions use it to rebuild an
// input coordinate from a reduced-output coordinate plus the position
// along the reduced axis.
func CombineIndices(indices []int, axisValue, axis int) []int {
	out := make([]int, 0, len(indices)+1)
	out = append(out, indices[:axis]...)
	out = append(out, axisValue)
	out = append(out, indices[axis:]...)
	return out
}

// BroadcastCompatible reports whether two shapes may be combined
// elementwise: aligned from the trailing axis, every pair of sizes
// must be equal or contain a 1 (missing axes count as 1).
func BroadcastCompatible(a, b Shape) bool {
	for i := 0; i < len(a) || i < len(b); i++ {
		aDim, bDim := 1, 1
		if i < len(a) {
			aDim = a[len(a)-1-i]
		}
		if i < len(b) {
			bDim = b[len(b)-1-i]
		}
		if aDim != bDim && aDim != 1 && bDim != 1 {
			return false
		}
	}
	return true
}

// BroadcastShapes implements NumPy-style broadcast-shape inference.
//
// Note that the elementwise engine does not use this result for its
// output shape: it follows the bigger-operand rule documented on
// Engine, which can differ when ranks differ. BroadcastShapes is the
// reference callers can compare against.
func BroadcastShapes(a, b Shape) (Shape, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	for i := 0; i < maxLen; i++ {
		aDim, bDim := 1, 1
		if i < len(a) {
			aDim = a[len(a)-1-i]
		}
		if i < len(b) {
			bDim = b[len(b)-1-i]
		}
		switch {
		case aDim == bDim, bDim == 1:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
		default:
			return nil, fmt.Errorf("%w: shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				ErrShapeMismatch, a, b, maxLen-1-i, aDim, bDim)
		}
	}
	return result, nil
}

// BroadcastOffset ravels a global index tuple against this shape,
// clamping any axis of size 1 to local index 0. The global tuple may
// have higher rank; axes align from the trailing dimension.
func (s Shape) BroadcastOffset(global []int) (int, error) {
	shift := len(global) - len(s)
	if shift < 0 {
		return 0, fmt.Errorf("%w: global index of rank %d for shape of rank %d",
			ErrDimensionMismatch, len(global), len(s))
	}
	flat := 0
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		gi := global[i+shift]
		if s[i] == 1 {
			gi = 0
		} else if gi < 0 || gi >= s[i] {
			return 0, fmt.Errorf("%w: index %d out of bounds for dimension %d (size %d)",
				ErrIndexOutOfBounds, gi, i, s[i])
		}
		flat += gi * stride
		stride *= s[i]
	}
	return flat, nil
}
