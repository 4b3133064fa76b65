package algoqft

import "fmt"

// ApplyForwardQFT applies the quantum Fourier transform to the span qubits
// starting at ctx.Row.
//
// The block is first bit-reversed so the output follows the conventional
// ordering. Then, qubit by qubit, a controlled phase gradient couples the
// qubit to the ones already processed below it and a Hadamard mixes it.
// Passes are issued strictly in this order, and the state is held for
// all of them.
func ApplyForwardQFT(ctx EvalContext, span int) error {
	if err := checkTransform(ctx, span); err != nil {
		return err
	}

	return ctx.Exclusive(func(ctx EvalContext) error {
		factor := Forward.factor()

		if span > 1 {
			if err := ReverseBits(span).Apply(ctx); err != nil {
				return fmt.Errorf("qft%d: %w", span, err)
			}
		}

		for i := 0; i < span; i++ {
			if i > 0 {
				if err := ControlledPhaseGradient(i+1, factor).Apply(ctx); err != nil {
					return fmt.Errorf("qft%d: %w", span, err)
				}
			}

			if err := Hadamard.Apply(ctx.WithRow(ctx.Row + i)); err != nil {
				return fmt.Errorf("qft%d: %w", span, err)
			}
		}

		return nil
	})
}

// ApplyInverseQFT undoes ApplyForwardQFT: the same passes in reverse order
// with negated phase factors.
func ApplyInverseQFT(ctx EvalContext, span int) error {
	if err := checkTransform(ctx, span); err != nil {
		return err
	}

	return ctx.Exclusive(func(ctx EvalContext) error {
		factor := Inverse.factor()

		for i := span - 1; i >= 0; i-- {
			if err := Hadamard.Apply(ctx.WithRow(ctx.Row + i)); err != nil {
				return fmt.Errorf("qft†%d: %w", span, err)
			}

			if i > 0 {
				if err := ControlledPhaseGradient(i+1, factor).Apply(ctx); err != nil {
					return fmt.Errorf("qft†%d: %w", span, err)
				}
			}
		}

		if span > 1 {
			if err := ReverseBits(span).Apply(ctx); err != nil {
				return fmt.Errorf("qft†%d: %w", span, err)
			}
		}

		return nil
	})
}

// ApplyQFT dispatches on direction.
func ApplyQFT(ctx EvalContext, span int, dir Direction) error {
	if dir == Inverse {
		return ApplyInverseQFT(ctx, span)
	}
	return ApplyForwardQFT(ctx, span)
}

// PassCount returns the number of kernel passes a QFT of span issues.
func PassCount(span int) int {
	if span <= 1 {
		return span
	}
	return 1 + span + (span - 1)
}

// checkTransform validates the whole block up front so that a bad request
// never leaves a half-applied transform behind.
func checkTransform(ctx EvalContext, span int) error {
	if span < MinSpan || span > MaxSpan {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSpan, span, MinSpan, MaxSpan)
	}
	return ctx.checkBlock(span)
}
