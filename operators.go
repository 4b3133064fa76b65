package algoqft

import (
	"fmt"

	"github.com/cwbudde/algo-qft/internal/kernels"
)

// Operation is anything that can be applied to an evaluation context.
type Operation interface {
	Apply(ctx EvalContext) error
}

// OperationFunc adapts a function to Operation.
type OperationFunc func(ctx EvalContext) error

// Apply calls f(ctx).
func (f OperationFunc) Apply(ctx EvalContext) error {
	return f(ctx)
}

type hadamard struct{}

// Hadamard mixes the qubit at the context row.
var Hadamard Operation = hadamard{}

func (hadamard) Apply(ctx EvalContext) error {
	if err := ctx.checkBlock(1); err != nil {
		return err
	}
	return ctx.Shade(ketCall(hadamardShader, ctx, 1, nil))
}

type reverseBits struct {
	span int
}

// ReverseBits permutes the span-qubit block at the context row by
// reversing the bit order of its index. Applying it twice is the identity.
func ReverseBits(span int) Operation {
	return reverseBits{span: span}
}

func (r reverseBits) Apply(ctx EvalContext) error {
	if err := ctx.checkBlock(r.span); err != nil {
		return err
	}
	return ctx.Shade(ketCall(reverseBitsShader, ctx, r.span, nil))
}

type phaseGradient struct {
	span       int
	factor     float64
	controlled bool
}

// PhaseGradient multiplies each amplitude by exp(iπ·b·factor/2^span),
// b being the index of the span-qubit block at the context row.
func PhaseGradient(span int, factor float64) Operation {
	return phaseGradient{span: span, factor: factor}
}

// ControlledPhaseGradient multiplies each amplitude by
// exp(i·2π·hold·step·factor/2^span) where hold is the top qubit of the
// block and step the index formed by the qubits below it.
func ControlledPhaseGradient(span int, factor float64) Operation {
	return phaseGradient{span: span, factor: factor, controlled: true}
}

func (p phaseGradient) Apply(ctx EvalContext) error {
	if err := ctx.checkBlock(p.span); err != nil {
		return err
	}

	shader := phaseGradientShader
	if p.controlled {
		shader = controlledPhaseGradientShader
	}

	return ctx.Shade(ketCall(shader, ctx, p.span, map[string]float64{
		kernels.UniformFactor: p.factor,
	}))
}

func (p phaseGradient) String() string {
	if p.controlled {
		return fmt.Sprintf("ControlledPhaseGradient(%d, %v)", p.span, p.factor)
	}
	return fmt.Sprintf("PhaseGradient(%d, %v)", p.span, p.factor)
}
