package kernels

import (
	"math"
	"math/cmplx"
	"sync"
)

type phaseTableKey struct {
	kernel string
	span   int
	factor float64
}

// phaseTableCache memoizes the per-block phase multipliers of the phase
// kernels. Only the ±1 factors of the Fourier decomposition are kept, so
// the cache is bounded by two tables per kernel and span. Tables are
// immutable once stored.
type phaseTableCache struct {
	m sync.Map // map[phaseTableKey][]complex128
}

func cachedFactor(factor float64) bool {
	return factor == 1 || factor == -1
}

func (c *phaseTableCache) get(kernel string, span int, factor float64, size int, angle func(i int) float64) []complex128 {
	if !cachedFactor(factor) {
		return buildPhaseTable(size, angle)
	}

	key := phaseTableKey{kernel: kernel, span: span, factor: factor}
	if v, ok := c.m.Load(key); ok {
		return v.([]complex128)
	}

	actual, _ := c.m.LoadOrStore(key, buildPhaseTable(size, angle))

	return actual.([]complex128)
}

func (c *phaseTableCache) len() int {
	n := 0
	c.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func buildPhaseTable(size int, angle func(i int) float64) []complex128 {
	table := make([]complex128, size)
	for i := range table {
		table[i] = cmplx.Rect(1, angle(i))
	}
	return table
}

var phaseTables phaseTableCache

// controlledPhaseTable returns the 2^(span-1) multipliers applied when the
// block's top bit is set, indexed by the remaining low bits.
func controlledPhaseTable(span int, factor float64) []complex128 {
	size := 1 << span
	half := size >> 1

	return phaseTables.get(ControlledPhaseGradientName, span, factor, half, func(step int) float64 {
		return 2 * math.Pi * float64(step) * factor / float64(size)
	})
}

// phaseGradientTable returns the 2^span multipliers exp(iπ·b·factor/2^span).
func phaseGradientTable(span int, factor float64) []complex128 {
	size := 1 << span

	return phaseTables.get(PhaseGradientName, span, factor, size, func(b int) float64 {
		return math.Pi * float64(b) * factor / float64(size)
	})
}
