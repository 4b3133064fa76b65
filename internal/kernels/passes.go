package kernels

import (
	"github.com/cwbudde/algo-qft/internal/math"
)

// bindControlledPhaseGradient multiplies each amplitude by
// exp(i·2π·hold·step·factor/2^span) where hold is the top bit of the block
// index and step the remaining bits.
func bindControlledPhaseGradient(u Uniforms, n int) (Pass, error) {
	row, span, err := blockUniforms(u, n)
	if err != nil {
		return Pass{}, err
	}

	factor, err := u.Float(UniformFactor)
	if err != nil {
		return Pass{}, err
	}

	table := controlledPhaseTable(span, factor)
	half := len(table)
	holdBit := 1 << (row + span - 1)

	return Pass{
		Bits: row + span,
		Run: func(dst, src []complex128, lo, hi int) {
			for k := lo; k < hi; k++ {
				if k&holdBit == 0 {
					dst[k] = src[k]
					continue
				}

				step := (k >> row) & (half - 1)
				dst[k] = src[k] * table[step]
			}
		},
	}, nil
}

// bindPhaseGradient multiplies each amplitude by exp(iπ·b·factor/2^span)
// where b is the block index.
func bindPhaseGradient(u Uniforms, n int) (Pass, error) {
	row, span, err := blockUniforms(u, n)
	if err != nil {
		return Pass{}, err
	}

	factor, err := u.Float(UniformFactor)
	if err != nil {
		return Pass{}, err
	}

	table := phaseGradientTable(span, factor)

	return Pass{
		Bits: row + span,
		Run: func(dst, src []complex128, lo, hi int) {
			for k := lo; k < hi; k++ {
				dst[k] = src[k] * table[math.BlockIndex(k, row, span)]
			}
		},
	}, nil
}

func bindReverseBits(u Uniforms, n int) (Pass, error) {
	row, span, err := blockUniforms(u, n)
	if err != nil {
		return Pass{}, err
	}

	perm := math.ComputeBitReversalIndices(1 << span)

	return Pass{
		Bits: row + span,
		Run: func(dst, src []complex128, lo, hi int) {
			for k := lo; k < hi; k++ {
				dst[k] = src[math.WithBlockIndex(k, row, span, perm[math.BlockIndex(k, row, span)])]
			}
		},
	}, nil
}

func bindHadamard(u Uniforms, n int) (Pass, error) {
	row, err := u.Int(UniformRow)
	if err != nil {
		return Pass{}, err
	}

	if err := fitsIn(row+1, n); err != nil {
		return Pass{}, err
	}

	bit := 1 << row

	return Pass{
		Bits: row + 1,
		Run: func(dst, src []complex128, lo, hi int) {
			for k := lo; k < hi; k++ {
				a0 := src[k&^bit]
				a1 := src[k|bit]

				if k&bit == 0 {
					dst[k] = (a0 + a1) * math.InvSqrt2
				} else {
					dst[k] = (a0 - a1) * math.InvSqrt2
				}
			}
		},
	}, nil
}
