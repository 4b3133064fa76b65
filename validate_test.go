package algoqft

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-qft/gpu"
)

func TestChecksEnforceSimulatorTolerance(t *testing.T) {
	t.Parallel()

	strict := newTestSimulator(t, 2)

	maxErr, err := CheckActsLikeMatrix(strict, Hadamard, 0, IdentityMatrix(2), newRand(1))
	if !errors.Is(err, ErrToleranceExceeded) {
		t.Fatalf("Hadamard checked against identity: error = %v, want ErrToleranceExceeded", err)
	}
	if maxErr <= DefaultTolerance {
		t.Fatalf("reported max error %g should exceed %g", maxErr, DefaultTolerance)
	}

	opts := DefaultOptions()
	opts.Backend = gpu.NewMockBackendWithWorkers(1)
	opts.Tolerance = 10

	lax, err := NewSimulator(2, opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = lax.Close() })

	if _, err := CheckActsLikeMatrix(lax, Hadamard, 0, IdentityMatrix(2), newRand(1)); err != nil {
		t.Fatalf("with tolerance 10: %v", err)
	}
}

func TestOptionsToleranceDefaults(t *testing.T) {
	t.Parallel()

	for _, tol := range []float64{0, -1} {
		if got := (Options{Tolerance: tol}).tolerance(); got != DefaultTolerance {
			t.Errorf("tolerance() with Tolerance=%v = %g, want %g", tol, got, DefaultTolerance)
		}
	}
	if got := (Options{Tolerance: 1e-3}).tolerance(); got != 1e-3 {
		t.Errorf("tolerance() = %g, want 1e-3", got)
	}
}

func TestDirectionFactor(t *testing.T) {
	t.Parallel()

	if Forward.factor() != 1 || Inverse.factor() != -1 {
		t.Fatalf("factors = %v/%v, want 1/-1", Forward.factor(), Inverse.factor())
	}
}
