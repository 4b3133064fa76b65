package algoqft

import (
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/cwbudde/algo-qft/gpu"
)

// Shared test helper functions used across multiple test files

const testTol = 1e-6

func newTestSimulator(t *testing.T, qubits int) *Simulator {
	t.Helper()

	return newTestSimulatorWith(t, qubits, gpu.PrecisionComplex128)
}

func newTestSimulatorWith(t *testing.T, qubits int, precision gpu.PrecisionKind) *Simulator {
	t.Helper()

	opts := DefaultOptions()
	opts.Backend = gpu.NewMockBackendWithWorkers(2)
	opts.Precision = precision
	if precision == gpu.PrecisionComplex64 {
		opts.Tolerance = 1e-5
	}

	sim, err := NewSimulator(qubits, opts)
	if err != nil {
		t.Fatalf("NewSimulator(%d): %v", qubits, err)
	}
	t.Cleanup(func() { _ = sim.Close() })

	return sim
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func assertStatesClose(t *testing.T, got, want []complex128, tol float64, format string, args ...any) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf(format+": length %d, want %d", append(args, len(got), len(want))...)
	}

	for i := range want {
		if cmplx.Abs(got[i]-want[i]) > tol {
			if len(want) <= 16 {
				t.Logf("got:\n%s\nwant:\n%s", spew.Sdump(got), spew.Sdump(want))
			}
			t.Fatalf(format+": amplitude %d got %v want %v (diff=%v)", append(args, i, got[i], want[i], cmplx.Abs(got[i]-want[i]))...)
		}
	}
}

func assertWithinTol(t *testing.T, maxErr, tol float64, format string, args ...any) {
	t.Helper()

	if !(maxErr <= tol) {
		t.Fatalf(format+": max error %g exceeds %g", append(args, maxErr, tol)...)
	}
}
