package algoqft

import (
	"fmt"

	"github.com/cwbudde/algo-qft/gpu"
	"github.com/cwbudde/algo-qft/internal/math"
)

// EvalContext is what a gate operation runs against: a row offset into the
// qubit register and the trader holding the amplitudes. Contexts are
// values; operations borrow them for one application and never keep them.
type EvalContext struct {
	Row    int
	Trader *gpu.StateTrader

	lease *gpu.Lease
}

// Exclusive runs fn with the trader's state held for every pass fn issues,
// so no other gate can interleave with them. Nested calls reuse the
// outer hold.
func (c EvalContext) Exclusive(fn func(ctx EvalContext) error) error {
	if c.Trader == nil {
		return ErrNoTrader
	}
	if c.lease != nil && c.lease.Trader() == c.Trader {
		return fn(c)
	}

	lease := c.Trader.Borrow()
	defer lease.Release()

	c.lease = lease
	return fn(c)
}

// Shade issues one pass, under the context's hold if it has one.
// Operations must issue passes through Shade: the trader's own
// ShadeAndTrade waits for the hold and would block inside Exclusive.
func (c EvalContext) Shade(call gpu.Call) error {
	if c.Trader == nil {
		return ErrNoTrader
	}
	if c.lease != nil && c.lease.Trader() == c.Trader {
		return c.lease.ShadeAndTrade(call)
	}
	return c.Trader.ShadeAndTrade(call)
}

// WithRow returns a copy of the context positioned at row.
func (c EvalContext) WithRow(row int) EvalContext {
	c.Row = row
	return c
}

// Qubits returns the number of qubits in the register.
func (c EvalContext) Qubits() int {
	if c.Trader == nil {
		return 0
	}
	return math.Log2(c.Trader.Len())
}

// checkBlock verifies that a span-qubit block starting at the context row
// fits in the register.
func (c EvalContext) checkBlock(span int) error {
	if c.Trader == nil {
		return ErrNoTrader
	}
	if span < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSpan, span)
	}
	if c.Row < 0 || c.Row+span > c.Qubits() {
		return fmt.Errorf("%w: rows [%d, %d) in a %d-qubit register", ErrRowOutOfRange, c.Row, c.Row+span, c.Qubits())
	}
	return nil
}
