package tensor

import (
	"fmt"

	"github.com/qtensor-ml/qtensor/budget"
)

// Engine binds an element kind's arithmetic and an execution budget
// and exposes the tensor algorithms. Engines are stateless beyond
// those two values; one Engine may serve arbitrarily many concurrent
// independent calls.
//
// Elementwise operations follow the bigger-operand rule: the output
// shape and iteration order come from whichever operand has the
// longer flattened data, ties going to the second operand. For
// equal-rank operands this matches NumPy broadcast inference; when
// ranks differ it can pick a shape that is not the inferred broadcast
// shape. The rule is authoritative here; BroadcastShapes gives the
// NumPy-style reference for callers that want to compare.
type Engine[T any] struct {
	num   Num[T]
	guard budget.Guard
}

// NewEngine creates an Engine over the given kind. A nil guard means
// unbounded execution.
func NewEngine[T any](num Num[T], guard budget.Guard) *Engine[T] {
	if guard == nil {
		guard = budget.Unlimited()
	}
	return &Engine[T]{num: num, guard: guard}
}

// Num returns the engine's element kind.
func (e *Engine[T]) Num() Num[T] { return e.num }

// Guard returns the engine's execution budget, for operators built
// outside this package that run their own loops.
func (e *Engine[T]) Guard() budget.Guard { return e.guard }

// broadcastPair validates compatibility and picks the operand that
// drives iteration and output shape by the bigger-operand rule.
func broadcastPair[T any](a, b *Tensor[T]) (*Tensor[T], error) {
	if !BroadcastCompatible(a.shape, b.shape) {
		return nil, fmt.Errorf("%w: shapes %v and %v are not broadcast-compatible",
			ErrShapeMismatch, a.shape, b.shape)
	}
	if len(b.data) >= len(a.data) {
		return b, nil
	}
	return a, nil
}

// binary applies f over the broadcast of a and b in flat output
// order.
func (e *Engine[T]) binary(a, b *Tensor[T], f func(x, y T) (T, error)) (*Tensor[T], error) {
	bigger, err := broadcastPair(a, b)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(bigger.data))
	for n := range bigger.data {
		if err := e.guard.Check(); err != nil {
			return nil, err
		}
		idx, err := bigger.shape.Unravel(n)
		if err != nil {
			return nil, err
		}
		ai, err := a.shape.BroadcastOffset(idx)
		if err != nil {
			return nil, err
		}
		bi, err := b.shape.BroadcastOffset(idx)
		if err != nil {
			return nil, err
		}
		out[n], err = f(a.data[ai], b.data[bi])
		if err != nil {
			return nil, err
		}
	}
	return newUnchecked(bigger.shape.Clone(), out), nil
}

// Add performs elementwise addition with broadcasting.
func (e *Engine[T]) Add(a, b *Tensor[T]) (*Tensor[T], error) {
	return e.binary(a, b, e.num.Add)
}

// Sub performs elementwise subtraction with broadcasting.
func (e *Engine[T]) Sub(a, b *Tensor[T]) (*Tensor[T], error) {
	return e.binary(a, b, e.num.Sub)
}

// Mul performs elementwise multiplication with broadcasting.
func (e *Engine[T]) Mul(a, b *Tensor[T]) (*Tensor[T], error) {
	return e.binary(a, b, e.num.Mul)
}

// Div performs elementwise division with broadcasting. A zero divisor
// element fails with ErrDivisionByZero.
func (e *Engine[T]) Div(a, b *Tensor[T]) (*Tensor[T], error) {
	return e.binary(a, b, e.num.Div)
}

// predicate applies pred to the comparison of each element pair,
// producing a 0/1 uint8 tensor shaped by the bigger-operand rule.
func (e *Engine[T]) predicate(a, b *Tensor[T], pred func(c int) bool) (*Tensor[uint8], error) {
	bigger, err := broadcastPair(a, b)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, len(bigger.data))
	for n := range bigger.data {
		if err := e.guard.Check(); err != nil {
			return nil, err
		}
		idx, err := bigger.shape.Unravel(n)
		if err != nil {
			return nil, err
		}
		ai, err := a.shape.BroadcastOffset(idx)
		if err != nil {
			return nil, err
		}
		bi, err := b.shape.BroadcastOffset(idx)
		if err != nil {
			return nil, err
		}
		if pred(e.num.Cmp(a.data[ai], b.data[bi])) {
			out[n] = 1
		}
	}
	return newUnchecked(bigger.shape.Clone(), out), nil
}

// Equal compares elementwise, returning 1 where a == b.
func (e *Engine[T]) Equal(a, b *Tensor[T]) (*Tensor[uint8], error) {
	return e.predicate(a, b, func(c int) bool { return c == 0 })
}

// NotEqual compares elementwise, returning 1 where a != b.
func (e *Engine[T]) NotEqual(a, b *Tensor[T]) (*Tensor[uint8], error) {
	return e.predicate(a, b, func(c int) bool { return c != 0 })
}

// Greater compares elementwise, returning 1 where a > b.
func (e *Engine[T]) Greater(a, b *Tensor[T]) (*Tensor[uint8], error) {
	return e.predicate(a, b, func(c int) bool { return c > 0 })
}

// GreaterEqual compares elementwise, returning 1 where a >= b.
func (e *Engine[T]) GreaterEqual(a, b *Tensor[T]) (*Tensor[uint8], error) {
	return e.predicate(a, b, func(c int) bool { return c >= 0 })
}

// Less compares elementwise, returning 1 where a < b.
func (e *Engine[T]) Less(a, b *Tensor[T]) (*Tensor[uint8], error) {
	return e.predicate(a, b, func(c int) bool { return c < 0 })
}

// LessEqual compares elementwise, returning 1 where a <= b.
func (e *Engine[T]) LessEqual(a, b *Tensor[T]) (*Tensor[uint8], error) {
	return e.predicate(a, b, func(c int) bool { return c <= 0 })
}

// truthy reports whether v differs from the kind's zero.
func (e *Engine[T]) truthy(v T) bool {
	return e.num.Cmp(v, e.num.Zero()) != 0
}

// logical applies f to the truthiness of each element pair.
func (e *Engine[T]) logical(a, b *Tensor[T], f func(x, y bool) bool) (*Tensor[uint8], error) {
	bigger, err := broadcastPair(a, b)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, len(bigger.data))
	for n := range bigger.data {
		if err := e.guard.Check(); err != nil {
			return nil, err
		}
		idx, err := bigger.shape.Unravel(n)
		if err != nil {
			return nil, err
		}
		ai, err := a.shape.BroadcastOffset(idx)
		if err != nil {
			return nil, err
		}
		bi, err := b.shape.BroadcastOffset(idx)
		if err != nil {
			return nil, err
		}
		if f(e.truthy(a.data[ai]), e.truthy(b.data[bi])) {
			out[n] = 1
		}
	}
	return newUnchecked(bigger.shape.Clone(), out), nil
}

// And returns 1 where both elements are nonzero.
func (e *Engine[T]) And(a, b *Tensor[T]) (*Tensor[uint8], error) {
	return e.logical(a, b, func(x, y bool) bool { return x && y })
}

// Or returns 1 where either element is nonzero.
func (e *Engine[T]) Or(a, b *Tensor[T]) (*Tensor[uint8], error) {
	return e.logical(a, b, func(x, y bool) bool { return x || y })
}

// Xor returns 1 where exactly one element is nonzero.
func (e *Engine[T]) Xor(a, b *Tensor[T]) (*Tensor[uint8], error) {
	return e.logical(a, b, func(x, y bool) bool { return x != y })
}

// Not returns 1 where the element is zero.
func (e *Engine[T]) Not(t *Tensor[T]) (*Tensor[uint8], error) {
	out := make([]uint8, len(t.data))
	for n, v := range t.data {
		if err := e.guard.Check(); err != nil {
			return nil, err
		}
		if !e.truthy(v) {
			out[n] = 1
		}
	}
	return newUnchecked(t.shape.Clone(), out), nil
}

// Map applies f to every element in flat order. It is the hook the
// operator library uses for unary functions such as the fixed-point
// transcendentals.
func (e *Engine[T]) Map(t *Tensor[T], f func(T) (T, error)) (*Tensor[T], error) {
	out := make([]T, len(t.data))
	for n, v := range t.data {
		if err := e.guard.Check(); err != nil {
			return nil, err
		}
		r, err := f(v)
		if err != nil {
			return nil, err
		}
		out[n] = r
	}
	return newUnchecked(t.shape.Clone(), out), nil
}
