package tensor

import "fmt"

// Tensor is an immutable multi-dimensional array: a shape plus flat,
// row-major data of element kind T. Every operation produces a new
// Tensor; none mutate in place, and a Tensor never aliases another's
// shape or data.
type Tensor[T any] struct {
	shape Shape
	data  []T
}

// New creates a Tensor from a shape and flat row-major data.
// Both slices are copied. The data length must equal the product of
// the shape.
func New[T any](shape Shape, data []T) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrShapeMismatch, shape, shape.NumElements(), len(data))
	}
	d := make([]T, len(data))
	copy(d, data)
	return &Tensor[T]{shape: shape.Clone(), data: d}, nil
}

// Scalar creates a rank-0 tensor holding a single value.
func Scalar[T any](v T) *Tensor[T] {
	return &Tensor[T]{shape: Shape{}, data: []T{v}}
}

// newUnchecked wraps a shape and data the caller already owns and has
// validated. Internal constructor for algorithm outputs.
func newUnchecked[T any](shape Shape, data []T) *Tensor[T] {
	return &Tensor[T]{shape: shape, data: data}
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.shape.Clone()
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor[T]) NumElements() int {
	return len(t.data)
}

// Data returns a copy of the flat row-major data.
func (t *Tensor[T]) Data() []T {
	d := make([]T, len(t.data))
	copy(d, t.data)
	return d
}

// At returns the element at the given per-axis indices.
func (t *Tensor[T]) At(indices ...int) (T, error) {
	var zero T
	flat, err := t.shape.Ravel(indices)
	if err != nil {
		return zero, err
	}
	return t.data[flat], nil
}

// Item returns the value of a single-element tensor.
func (t *Tensor[T]) Item() (T, error) {
	var zero T
	if len(t.data) != 1 {
		return zero, fmt.Errorf("%w: Item needs exactly one element, shape %v has %d",
			ErrInvalidShape, t.shape, len(t.data))
	}
	return t.data[0], nil
}

// Reshape returns a tensor sharing this tensor's values with a new
// shape of the same element count.
func (t *Tensor[T]) Reshape(shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(t.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v (%d elements) to %v (%d elements)",
			ErrShapeMismatch, t.shape, len(t.data), shape, shape.NumElements())
	}
	return New(shape, t.data)
}

// String returns a human-readable representation of the tensor.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor%v%v", t.shape, t.data)
}
