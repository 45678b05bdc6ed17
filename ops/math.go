package ops

import (
	"github.com/qtensor-ml/qtensor/budget"
	"github.com/qtensor-ml/qtensor/fixed"
	"github.com/qtensor-ml/qtensor/tensor"
)

// FixedTensor abbreviates the tensor type the fixed-point operators
// work on.
type FixedTensor = tensor.Tensor[fixed.Fixed]

// FixedEngine returns an engine over the fixed-point kind at scale s.
// A nil guard means unbounded execution.
func FixedEngine(s fixed.Scale, g budget.Guard) *tensor.Engine[fixed.Fixed] {
	return tensor.NewEngine[fixed.Fixed](fixed.Kind{Scale: s}, g)
}

// Exp applies e^x elementwise.
func Exp(e *tensor.Engine[fixed.Fixed], s fixed.Scale, x *FixedTensor) (*FixedTensor, error) {
	return e.Map(x, func(v fixed.Fixed) (fixed.Fixed, error) {
		return s.Exp(v), nil
	})
}

// Log applies the natural logarithm elementwise; non-positive
// elements fail with tensor.ErrInvalidArgument.
func Log(e *tensor.Engine[fixed.Fixed], s fixed.Scale, x *FixedTensor) (*FixedTensor, error) {
	return e.Map(x, s.Ln)
}

// Sqrt applies the square root elementwise; negative elements fail
// with tensor.ErrInvalidArgument.
func Sqrt(e *tensor.Engine[fixed.Fixed], s fixed.Scale, x *FixedTensor) (*FixedTensor, error) {
	return e.Map(x, s.Sqrt)
}

// Sin applies the sine elementwise.
func Sin(e *tensor.Engine[fixed.Fixed], s fixed.Scale, x *FixedTensor) (*FixedTensor, error) {
	return e.Map(x, func(v fixed.Fixed) (fixed.Fixed, error) {
		return s.Sin(v), nil
	})
}

// Cos applies the cosine elementwise.
func Cos(e *tensor.Engine[fixed.Fixed], s fixed.Scale, x *FixedTensor) (*FixedTensor, error) {
	return e.Map(x, func(v fixed.Fixed) (fixed.Fixed, error) {
		return s.Cos(v), nil
	})
}

// Tanh applies the hyperbolic tangent elementwise.
func Tanh(e *tensor.Engine[fixed.Fixed], s fixed.Scale, x *FixedTensor) (*FixedTensor, error) {
	return e.Map(x, func(v fixed.Fixed) (fixed.Fixed, error) {
		return s.Tanh(v), nil
	})
}

// Sigmoid applies 1/(1 + e^-x) elementwise.
func Sigmoid(e *tensor.Engine[fixed.Fixed], s fixed.Scale, x *FixedTensor) (*FixedTensor, error) {
	one := s.One()
	return e.Map(x, func(v fixed.Fixed) (fixed.Fixed, error) {
		return s.Div(one, s.Add(one, s.Exp(v.Negate())))
	})
}

// Softmax applies the max-shifted softmax along axis: exponentials of
// the shifted elements normalized by their sum over the axis. The
// intermediate steps compose the engine's reductions and broadcast
// arithmetic.
func Softmax(e *tensor.Engine[fixed.Fixed], s fixed.Scale, x *FixedTensor, axis int) (*FixedTensor, error) {
	m, err := e.ReduceMax(x, axis, true)
	if err != nil {
		return nil, err
	}
	shifted, err := e.Sub(x, m)
	if err != nil {
		return nil, err
	}
	exps, err := Exp(e, s, shifted)
	if err != nil {
		return nil, err
	}
	sums, err := e.ReduceSum(exps, axis, true)
	if err != nil {
		return nil, err
	}
	return e.Div(exps, sums)
}
