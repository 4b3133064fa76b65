// Package algoqft implements the quantum Fourier transform gate family for
// a kernel-driven state-vector simulator.
//
// The amplitude vector lives on a device (see package gpu) and is only ever
// transformed in place by elementary kernel passes: bit reversal, Hadamard
// and controlled phase gradients. A QFT over s qubits is issued as O(s)
// such passes; no 2^s × 2^s matrix is formed except for s < 4, where the
// analytic matrix is attached to the gate for validation and rendering.
//
// Basic usage:
//
//	gpu.RegisterMockBackend()
//
//	sim, err := algoqft.NewSimulator(8, algoqft.DefaultOptions())
//	if err != nil {
//		// handle error
//	}
//	defer sim.Close()
//
//	gates := algoqft.DefaultFourierGates()
//	qft, _ := gates.Forward.OfSpan(4)
//	if err := sim.Apply(qft, 2); err != nil {
//		// the state is corrupted; call SetState or Reset before reuse
//	}
package algoqft
