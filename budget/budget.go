// Package budget bounds the work tensor algorithms may perform.
//
// Every unbounded loop in the tensor core consults a Guard at least
// once per outer iteration, so adversarial shapes cannot run
// unbounded work: once the budget is spent the operation aborts with
// ErrExhausted and produces no output.
package budget

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrExhausted reports that a step budget has been spent.
var ErrExhausted = errors.New("resource exhausted")

// Guard is consulted inside every unbounded loop. Check returns nil
// while budget remains and an error wrapping ErrExhausted once it is
// spent.
type Guard interface {
	Check() error
}

type unlimited struct{}

func (unlimited) Check() error { return nil }

// Unlimited returns a Guard that never exhausts.
func Unlimited() Guard { return unlimited{} }

// Counter is a step-budget Guard. Each Check consumes one step; it is
// safe for use across concurrent independent operations.
type Counter struct {
	remaining atomic.Int64
}

// NewCounter returns a Counter allowing steps calls to Check.
func NewCounter(steps int64) *Counter {
	c := &Counter{}
	c.remaining.Store(steps)
	return c
}

// Check consumes one step.
func (c *Counter) Check() error {
	if c.remaining.Add(-1) < 0 {
		return fmt.Errorf("step budget spent: %w", ErrExhausted)
	}
	return nil
}

// Remaining returns the number of steps left, never negative.
func (c *Counter) Remaining() int64 {
	return max(c.remaining.Load(), 0)
}
