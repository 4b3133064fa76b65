package algoqft

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-qft/gpu"
	qmath "github.com/cwbudde/algo-qft/internal/math"
)

func TestPhaseGradientActsLikeDiagonal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		span   int
		factor float64
		want   *Matrix
	}{
		{3, 1, DiagonalMatrix(8, func(k int) complex128 { return cmplx.Rect(1, float64(k)*math.Pi/8) })},
		{4, -1, DiagonalMatrix(16, func(k int) complex128 { return cmplx.Rect(1, -float64(k)*math.Pi/16) })},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("span=%d/factor=%v", tt.span, tt.factor), func(t *testing.T) {
			t.Parallel()

			sim := newTestSimulator(t, tt.span+1)

			for _, row := range []int{0, 1} {
				maxErr, err := CheckActsLikeMatrix(sim, PhaseGradient(tt.span, tt.factor), row, tt.want, newRand(int64(row)))
				if err != nil {
					t.Fatal(err)
				}
				assertWithinTol(t, maxErr, testTol, "row %d", row)
			}
		})
	}
}

// phaseAfter loads the all-ones state, runs op at row and checks every
// amplitude against want(block index).
func phaseAfter(t *testing.T, op Operation, row, span int, want func(b int) complex128) {
	t.Helper()

	qubits := row + span
	sim := newTestSimulator(t, qubits)

	ones := make([]complex128, 1<<qubits)
	for i := range ones {
		ones[i] = 1
	}
	if err := sim.SetState(ones); err != nil {
		t.Fatal(err)
	}

	if err := sim.Run(op, row); err != nil {
		t.Fatal(err)
	}

	got, err := sim.State()
	if err != nil {
		t.Fatal(err)
	}

	for k, v := range got {
		b := qmath.BlockIndex(k, row, span)
		if d := cmplx.Abs(v - want(b)); d > 1e-9 {
			t.Fatalf("%v at row %d: amplitude %d (block %d) = %v, want %v (diff=%g)", op, row, k, b, v, want(b), d)
		}
	}
}

func TestPhaseGradientAcrossSpansAndFactors(t *testing.T) {
	t.Parallel()

	for _, span := range []int{1, 2, 7, 12, 16} {
		for _, factor := range []float64{1, -1, 0.37, -2.5} {
			t.Run(fmt.Sprintf("span=%d/factor=%v", span, factor), func(t *testing.T) {
				t.Parallel()

				size := float64(int(1) << span)
				want := func(b int) complex128 {
					return cmplx.Rect(1, math.Pi*float64(b)*factor/size)
				}

				for _, row := range []int{0, 1} {
					phaseAfter(t, PhaseGradient(span, factor), row, span, want)
				}
			})
		}
	}
}

func TestControlledPhaseGradientAcrossSpansAndFactors(t *testing.T) {
	t.Parallel()

	for _, span := range []int{1, 2, 7, 12, 16} {
		for _, factor := range []float64{1, -1, 0.37, -2.5} {
			t.Run(fmt.Sprintf("span=%d/factor=%v", span, factor), func(t *testing.T) {
				t.Parallel()

				half := 1 << (span - 1)
				size := float64(int(1) << span)
				want := func(b int) complex128 {
					hold := float64(b / half)
					step := float64(b % half)
					return cmplx.Rect(1, 2*math.Pi*hold*step*factor/size)
				}

				phaseAfter(t, ControlledPhaseGradient(span, factor), 1, span, want)
			})
		}
	}
}

func TestControlledPhaseGradientActsLikeDiagonal(t *testing.T) {
	t.Parallel()

	for span := 2; span <= 5; span++ {
		for _, factor := range []float64{1, -1, 0.5} {
			half := 1 << (span - 1)
			size := float64(int(1) << span)
			want := DiagonalMatrix(1<<span, func(b int) complex128 {
				hold := float64(b / half)
				step := float64(b % half)
				return cmplx.Rect(1, 2*math.Pi*hold*step*factor/size)
			})

			sim := newTestSimulator(t, span+1)

			maxErr, err := CheckActsLikeMatrix(sim, ControlledPhaseGradient(span, factor), 1, want, newRand(int64(span)))
			if err != nil {
				t.Fatal(err)
			}
			assertWithinTol(t, maxErr, testTol, "span %d factor %v", span, factor)
		}
	}
}

func TestReverseBitsTwiceIsIdentity(t *testing.T) {
	t.Parallel()

	for span := 1; span <= 6; span++ {
		sim := newTestSimulator(t, 7)
		state := RandomState(newRand(int64(span)), 7)

		if err := sim.SetState(state); err != nil {
			t.Fatal(err)
		}

		for range 2 {
			if err := sim.Run(ReverseBits(span), 1); err != nil {
				t.Fatal(err)
			}
		}

		got, err := sim.State()
		if err != nil {
			t.Fatal(err)
		}

		for i := range state {
			if got[i] != state[i] {
				t.Fatalf("span %d: amplitude %d changed after double reversal", span, i)
			}
		}
	}
}

func TestHadamardMatchesMatrix(t *testing.T) {
	t.Parallel()

	h := GenerateMatrix(2, 2, func(r, c int) complex128 {
		if r == 1 && c == 1 {
			return -complex(math.Sqrt2/2, 0)
		}
		return complex(math.Sqrt2/2, 0)
	})

	sim := newTestSimulator(t, 3)

	for row := range 3 {
		maxErr, err := CheckActsLikeMatrix(sim, Hadamard, row, h, newRand(int64(row)))
		if err != nil {
			t.Fatal(err)
		}
		assertWithinTol(t, maxErr, 1e-12, "row %d", row)
	}
}

func TestSinglePrecisionStaysWithinLooseTolerance(t *testing.T) {
	t.Parallel()

	sim := newTestSimulatorWith(t, 5, gpu.PrecisionComplex64)

	maxErr, err := CheckActsLikeMatrix(sim, OperationFunc(func(ctx EvalContext) error {
		return ApplyForwardQFT(ctx, 3)
	}), 1, FourierMatrix(3), newRand(3))
	if err != nil {
		t.Fatal(err)
	}

	assertWithinTol(t, maxErr, 1e-5, "complex64 QFT3")
}
