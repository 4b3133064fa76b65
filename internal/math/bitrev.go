package math

// ComputeBitReversalIndices returns the bit-reversal permutation indices
// for a power-of-two size n. The permutation is its own inverse.
func ComputeBitReversalIndices(n int) []int {
	if n <= 0 {
		return nil
	}

	bitrev := make([]int, n)
	bits := Log2(n)

	for i := range n {
		bitrev[i] = ReverseBits(i, bits)
	}

	return bitrev
}

// Log2 returns the base-2 logarithm of n (assuming n is a power of 2).
func Log2(n int) int {
	result := 0

	for n > 1 {
		n >>= 1
		result++
	}

	return result
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// ReverseBits reverses the lower 'bits' bits of x.
// Example: ReverseBits(6, 3) = ReverseBits(0b110, 3) = 0b011 = 3.
func ReverseBits(x, bits int) int {
	result := 0
	for range bits {
		result = (result << 1) | (x & 1)
		x >>= 1
	}

	return result
}

// BlockIndex extracts the span-bit field of k that starts at bit offset.
// Example: BlockIndex(0b101100, 2, 3) = 0b011.
func BlockIndex(k, offset, span int) int {
	return (k >> offset) & (1<<span - 1)
}

// WithBlockIndex returns k with its span-bit field at bit offset replaced by v.
func WithBlockIndex(k, offset, span, v int) int {
	mask := (1<<span - 1) << offset
	return k&^mask | (v<<offset)&mask
}

// ReverseBlock reverses the span-bit field of k at bit offset and leaves
// the remaining bits untouched.
func ReverseBlock(k, offset, span int) int {
	return WithBlockIndex(k, offset, span, ReverseBits(BlockIndex(k, offset, span), span))
}
