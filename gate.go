package algoqft

import "fmt"

// Gate is an immutable gate descriptor. It carries display metadata, the
// permanent serialized id used by saved circuits, an optional dense matrix
// and the span/direction pair that selects its decomposition.
//
// Gates hold no captured state. The matrix is shared by pointer, so
// compare gates with Equal rather than ==.
type Gate struct {
	symbol       string
	name         string
	blurb        string
	serializedID string
	span         int
	direction    Direction
	matrix       *Matrix
	stable       bool
}

// GateSpec describes a gate to build.
type GateSpec struct {
	Symbol       string
	Name         string
	Blurb        string
	SerializedID string
	Span         int
	Direction    Direction
	// Matrix is optional; leave nil for gates defined only operationally.
	Matrix *Matrix
	Stable bool
}

// NewGate builds a gate from spec. It fails if the span is outside
// [MinSpan, MaxSpan] or a matrix of the wrong size is attached.
func NewGate(spec GateSpec) (Gate, error) {
	if spec.Span < MinSpan || spec.Span > MaxSpan {
		return Gate{}, fmt.Errorf("%w: %d", ErrInvalidSpan, spec.Span)
	}
	if spec.Matrix != nil {
		n := 1 << spec.Span
		if spec.Matrix.Rows() != n || spec.Matrix.Cols() != n {
			return Gate{}, fmt.Errorf("%w: %dx%d matrix for span %d", ErrLengthMismatch, spec.Matrix.Rows(), spec.Matrix.Cols(), spec.Span)
		}
	}
	return Gate{
		symbol:       spec.Symbol,
		name:         spec.Name,
		blurb:        spec.Blurb,
		serializedID: spec.SerializedID,
		span:         spec.Span,
		direction:    spec.Direction,
		matrix:       spec.Matrix,
		stable:       spec.Stable,
	}, nil
}

// Symbol is the short label drawn on the gate.
func (g Gate) Symbol() string { return g.symbol }

// Name is the long display name.
func (g Gate) Name() string { return g.name }

// Blurb is a one-sentence description.
func (g Gate) Blurb() string { return g.blurb }

// SerializedID is the gate's permanent identity in saved circuits.
func (g Gate) SerializedID() string { return g.serializedID }

// Height is the number of consecutive qubit rows the gate occupies.
func (g Gate) Height() int { return g.span }

// Direction reports whether the gate is the forward or inverse transform.
func (g Gate) Direction() Direction { return g.direction }

// Stable reports whether the gate's behavior is settled.
func (g Gate) Stable() bool { return g.stable }

// Matrix returns the dense unitary, or nil when the gate has none.
func (g Gate) Matrix() *Matrix { return g.matrix }

// HasMatrix reports whether a dense matrix is attached.
func (g Gate) HasMatrix() bool { return g.matrix != nil }

// Apply runs the gate's decomposition on the block starting at ctx.Row.
func (g Gate) Apply(ctx EvalContext) error {
	return ApplyQFT(ctx, g.span, g.direction)
}

// Equal reports whether g and o describe the same gate, comparing attached
// matrices entry by entry.
func (g Gate) Equal(o Gate) bool {
	if g.symbol != o.symbol || g.name != o.name || g.blurb != o.blurb ||
		g.serializedID != o.serializedID || g.span != o.span ||
		g.direction != o.direction || g.stable != o.stable {
		return false
	}
	if g.matrix == nil || o.matrix == nil {
		return g.matrix == o.matrix
	}
	return g.matrix.ApproxEqual(o.matrix, 0)
}

func (g Gate) String() string {
	return fmt.Sprintf("%s(%s, height=%d)", g.serializedID, g.direction, g.span)
}
