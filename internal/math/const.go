package math

import "math"

// Mathematical constants for phase computations.

// TwoPi is 2π with full float64 precision.
const TwoPi = 2.0 * math.Pi

// InvSqrt2 is 1/√2, the Hadamard normalization.
const InvSqrt2 = 0.70710678118654752440084436210484903928483593768847
