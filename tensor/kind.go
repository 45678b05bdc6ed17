package tensor

import "fmt"

// Num is the arithmetic capability set an element kind provides.
// Tensor Core algorithms are written once against this interface and
// instantiated per concrete kind, so per-kind semantics (saturation,
// sign rules, fixed-point rescaling) stay with the kind.
//
// Implementations: UintKind (this package), signed.Kind, fixed.Kind.
type Num[T any] interface {
	Add(a, b T) (T, error)
	Sub(a, b T) (T, error)
	Mul(a, b T) (T, error)
	Div(a, b T) (T, error)

	// Cmp returns -1, 0 or +1 as a is less than, equal to or greater
	// than b, defining a total order over the kind.
	Cmp(a, b T) int

	// Zero returns the kind's additive identity.
	Zero() T

	// MaxValue returns the kind's largest representable value.
	MaxValue() T
}

// Uint constrains the built-in unsigned integer element kinds.
type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// UintKind implements Num for the built-in unsigned integers.
// Add and Mul use Go's native modular arithmetic; Sub below zero is
// an error rather than a silent wrap.
type UintKind[T Uint] struct{}

func (UintKind[T]) Add(a, b T) (T, error) { return a + b, nil }

func (UintKind[T]) Sub(a, b T) (T, error) {
	if b > a {
		return 0, fmt.Errorf("%w: unsigned underflow: %d - %d", ErrInvalidArgument, a, b)
	}
	return a - b, nil
}

func (UintKind[T]) Mul(a, b T) (T, error) { return a * b, nil }

func (UintKind[T]) Div(a, b T) (T, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %d / 0", ErrDivisionByZero, a)
	}
	return a / b, nil
}

func (UintKind[T]) Cmp(a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (UintKind[T]) Zero() T { var z T; return z }

func (UintKind[T]) MaxValue() T { var z T; return ^z }
