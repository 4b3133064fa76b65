package algoqft

import "github.com/cwbudde/algo-qft/gpu"

// Options controls simulator creation.
type Options struct {
	// Backend opens the device context. Nil uses the backend registered
	// with gpu.RegisterBackend.
	Backend gpu.Backend

	// DeviceIndex selects which device to use (0 = default).
	DeviceIndex int

	// Precision is the storage precision of the amplitude buffers.
	Precision gpu.PrecisionKind

	// Tolerance is the max amplitude error CheckActsLikeMatrix,
	// CheckRoundTrip and CheckAgainstReference accept. Zero or less means
	// DefaultTolerance.
	Tolerance float64
}

// DefaultTolerance is the max amplitude error accepted by default.
const DefaultTolerance = 1e-6

// DefaultOptions returns double-precision options on the registered backend.
func DefaultOptions() Options {
	return Options{
		Precision: gpu.PrecisionComplex128,
		Tolerance: DefaultTolerance,
	}
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}
