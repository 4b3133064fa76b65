// Package reference provides slow, obviously-correct transforms used to
// check the kernel pipeline at spans where no dense matrix is built.
package reference

import (
	"math/cmplx"

	"github.com/cwbudde/algo-qft/internal/math"
)

// DFT computes y[r] = scale · Σ_c x[c]·exp(sign·2πi·r·c/n) in O(n²).
func DFT(x []complex128, sign, scale float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)

	for r := range n {
		var sum complex128
		for c := range n {
			// Reduce r*c mod n first to keep the angle small.
			sum += x[c] * cmplx.Rect(1, sign*math.TwoPi*float64((r*c)%n)/float64(n))
		}
		out[r] = sum * complex(scale, 0)
	}

	return out
}

// FFT computes the same transform as DFT with an iterative radix-2
// decimation-in-time pass. len(x) must be a power of two.
func FFT(x []complex128, sign, scale float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	if n == 0 {
		return out
	}

	bits := math.Log2(n)
	for i, v := range x {
		out[math.ReverseBits(i, bits)] = v
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := sign * math.TwoPi / float64(size)

		for start := 0; start < n; start += size {
			for j := range half {
				w := cmplx.Rect(1, step*float64(j))
				a := out[start+j]
				b := out[start+j+half] * w
				out[start+j] = a + b
				out[start+j+half] = a - b
			}
		}
	}

	for i := range out {
		out[i] *= complex(scale, 0)
	}

	return out
}

// QFTBlocks applies the normalized quantum Fourier transform (or its
// inverse) to the span-qubit block at row of every basis slice of state.
func QFTBlocks(state []complex128, row, span int, inverse bool) []complex128 {
	sign := 1.0
	if inverse {
		sign = -1
	}

	size := 1 << span
	scale := 1 / cmplx.Sqrt(complex(float64(size), 0))

	out := make([]complex128, len(state))
	block := make([]complex128, size)

	for base := range state {
		if math.BlockIndex(base, row, span) != 0 {
			continue
		}

		for b := range size {
			block[b] = state[math.WithBlockIndex(base, row, span, b)]
		}

		transformed := FFT(block, sign, real(scale))
		for b, v := range transformed {
			out[math.WithBlockIndex(base, row, span, b)] = v
		}
	}

	return out
}
