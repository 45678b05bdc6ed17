package tensor

import "errors"

// Error kinds surfaced by the tensor core. Callers match them with
// errors.Is; every failure wraps exactly one of these sentinels.
var (
	// ErrInvalidShape reports a shape that cannot be used where it was
	// given, e.g. asking for the strides of a rank-0 shape.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrDimensionMismatch reports an index tuple or axes list whose
	// length does not match a tensor's rank, or incompatible matmul
	// dimensions.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrShapeMismatch reports broadcast-incompatible shapes or a
	// data/shape length mismatch at construction.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrAxisOutOfRange reports an axis outside [-rank, rank).
	ErrAxisOutOfRange = errors.New("axis out of range")

	// ErrInvalidPermutation reports an axes list that is not a
	// bijection on 0..rank.
	ErrInvalidPermutation = errors.New("invalid permutation")

	// ErrIndexOutOfBounds reports an index outside its dimension or a
	// flat index outside the element count.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrDivisionByZero reports a zero divisor element.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidArgument reports a value outside a function's domain,
	// e.g. the square root of a negative number.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedRank reports a tensor rank an algorithm does not
	// support (matmul handles rank 1 and 2 only).
	ErrUnsupportedRank = errors.New("unsupported rank")

	// ErrEmptyTensor reports a reduction over zero elements.
	ErrEmptyTensor = errors.New("empty tensor")
)
