package algoqft

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	qmath "github.com/cwbudde/algo-qft/internal/math"
	"github.com/cwbudde/algo-qft/internal/reference"
)

// RandomState returns a normalized random state of the given qubit count.
func RandomState(rng *rand.Rand, qubits int) []complex128 {
	state := make([]complex128, 1<<qubits)

	var norm float64
	for i := range state {
		state[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		norm += real(state[i])*real(state[i]) + imag(state[i])*imag(state[i])
	}

	scale := complex(1/math.Sqrt(norm), 0)
	for i := range state {
		state[i] *= scale
	}

	return state
}

// MaxAbsDiff returns the largest |a[i]-b[i]|, or +Inf if the lengths differ.
func MaxAbsDiff(a, b []complex128) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}

	var worst float64
	for i := range a {
		worst = max(worst, cmplx.Abs(a[i]-b[i]))
	}

	return worst
}

// ApplyMatrixAt multiplies the block of log2(m.Rows()) qubits starting at
// row by m, for every setting of the other qubits.
func ApplyMatrixAt(m *Matrix, state []complex128, row int) ([]complex128, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: no matrix", ErrLengthMismatch)
	}
	if m.Rows() != m.Cols() || !qmath.IsPowerOfTwo(m.Rows()) {
		return nil, fmt.Errorf("%w: %dx%d is not a qubit operator", ErrLengthMismatch, m.Rows(), m.Cols())
	}

	span := qmath.Log2(m.Rows())
	if !qmath.IsPowerOfTwo(len(state)) || row < 0 || 1<<(row+span) > len(state) {
		return nil, fmt.Errorf("%w: span %d at row %d on %d amplitudes", ErrRowOutOfRange, span, row, len(state))
	}

	out := make([]complex128, len(state))
	block := make([]complex128, m.Rows())

	for base := range state {
		if qmath.BlockIndex(base, row, span) != 0 {
			continue
		}

		for b := range block {
			block[b] = state[qmath.WithBlockIndex(base, row, span, b)]
		}

		mixed, err := m.MulVec(block)
		if err != nil {
			return nil, err
		}

		for b, v := range mixed {
			out[qmath.WithBlockIndex(base, row, span, b)] = v
		}
	}

	return out, nil
}

// CheckActsLikeMatrix loads a random state into sim, applies op at row and
// returns the max amplitude error against multiplying by m. An error above
// the simulator's tolerance is reported as ErrToleranceExceeded.
func CheckActsLikeMatrix(sim *Simulator, op Operation, row int, m *Matrix, rng *rand.Rand) (float64, error) {
	state := RandomState(rng, sim.Qubits())

	want, err := ApplyMatrixAt(m, state, row)
	if err != nil {
		return 0, err
	}

	return runAndCompare(sim, state, want, func() error { return sim.Run(op, row) })
}

// CheckRoundTrip applies the forward and then the inverse transform of
// span at row to a random state and returns the max amplitude error.
func CheckRoundTrip(sim *Simulator, span, row int, rng *rand.Rand) (float64, error) {
	state := RandomState(rng, sim.Qubits())

	return runAndCompare(sim, state, state, func() error {
		return sim.Run(OperationFunc(func(ctx EvalContext) error {
			if err := ApplyForwardQFT(ctx, span); err != nil {
				return err
			}
			return ApplyInverseQFT(ctx, span)
		}), row)
	})
}

// CheckAgainstReference applies the transform of span at row and compares
// it with a direct FFT of every block. It works at any span, including
// those with no dense matrix.
func CheckAgainstReference(sim *Simulator, span, row int, dir Direction, rng *rand.Rand) (float64, error) {
	state := RandomState(rng, sim.Qubits())
	if row < 0 || span < 1 || row+span > sim.Qubits() {
		return 0, fmt.Errorf("%w: span %d at row %d in %d qubits", ErrRowOutOfRange, span, row, sim.Qubits())
	}

	want := reference.QFTBlocks(state, row, span, dir == Inverse)

	return runAndCompare(sim, state, want, func() error {
		return sim.Run(OperationFunc(func(ctx EvalContext) error {
			return ApplyQFT(ctx, span, dir)
		}), row)
	})
}

func runAndCompare(sim *Simulator, state, want []complex128, run func() error) (float64, error) {
	if err := sim.SetState(state); err != nil {
		return 0, err
	}

	if err := run(); err != nil {
		return 0, err
	}

	got, err := sim.State()
	if err != nil {
		return 0, err
	}

	maxErr := MaxAbsDiff(got, want)
	if tol := sim.opts.tolerance(); !(maxErr <= tol) {
		return maxErr, fmt.Errorf("%w: max error %g, tolerance %g", ErrToleranceExceeded, maxErr, tol)
	}

	return maxErr, nil
}
