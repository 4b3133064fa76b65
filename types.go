package algoqft

// Span limits of the Fourier transform family.
const (
	MinSpan = 1
	MaxSpan = 16

	// MatrixSpanLimit is the first span for which no dense matrix is attached.
	MatrixSpanLimit = 4
)

// MaxQubits is the largest register a Simulator will allocate.
const MaxQubits = 24

// Direction selects the forward or inverse transform.
type Direction uint8

const (
	Forward Direction = iota
	Inverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	default:
		return "unknown"
	}
}

// factor is the sign of the phase rotations for the direction.
func (d Direction) factor() float64 {
	if d == Inverse {
		return -1
	}
	return 1
}
