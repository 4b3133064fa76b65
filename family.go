package algoqft

import (
	"fmt"
	"sync"

	"github.com/theapemachine/errnie"
)

// GateFamily is a fixed, immutable run of gates indexed by span.
type GateFamily struct {
	minSpan int
	gates   []Gate
}

// GenerateFamily builds one gate per span in [minSpan, maxSpan]. A range
// outside [MinSpan, MaxSpan] or a maker that fails is a programming error
// and panics.
func GenerateFamily(minSpan, maxSpan int, maker func(span int) (Gate, error)) GateFamily {
	if minSpan < MinSpan || maxSpan > MaxSpan || minSpan > maxSpan {
		panic(fmt.Sprintf("algoqft: family span range [%d, %d] outside [%d, %d]", minSpan, maxSpan, MinSpan, MaxSpan))
	}

	gates := make([]Gate, 0, maxSpan-minSpan+1)
	for span := minSpan; span <= maxSpan; span++ {
		g, err := maker(span)
		if err != nil {
			panic(fmt.Sprintf("algoqft: family member span %d: %v", span, err))
		}
		if g.Height() != span {
			panic(fmt.Sprintf("algoqft: family member for span %d has height %d", span, g.Height()))
		}
		gates = append(gates, g)
	}

	return GateFamily{minSpan: minSpan, gates: gates}
}

// Len returns the number of gates in the family.
func (f GateFamily) Len() int { return len(f.gates) }

// All returns a copy of the family's gates in span order.
func (f GateFamily) All() []Gate {
	out := make([]Gate, len(f.gates))
	copy(out, f.gates)
	return out
}

// OfSpan returns the member with the given span.
func (f GateFamily) OfSpan(span int) (Gate, bool) {
	i := span - f.minSpan
	if i < 0 || i >= len(f.gates) {
		return Gate{}, false
	}
	return f.gates[i], true
}

// FourierGates holds the forward and inverse QFT families.
type FourierGates struct {
	Forward GateFamily
	Inverse GateFamily

	all  []Gate
	byID map[string]Gate
}

// Serialized id prefixes. These are part of the saved-circuit format and
// must never change.
const (
	ForwardIDPrefix = "QFT"
	InverseIDPrefix = "QFT†"
)

// NewFourierGates builds both families for spans 1..16. Spans below
// MatrixSpanLimit carry their analytic matrix.
func NewFourierGates() *FourierGates {
	forward := GenerateFamily(MinSpan, MaxSpan, func(span int) (Gate, error) {
		spec := GateSpec{
			Symbol:       "QFT",
			Name:         "Fourier Transform Gate",
			Blurb:        "Transforms to/from phase frequency space.",
			SerializedID: fmt.Sprintf("%s%d", ForwardIDPrefix, span),
			Span:         span,
			Direction:    Forward,
			Stable:       true,
		}
		if span < MatrixSpanLimit {
			spec.Matrix = FourierMatrix(span)
		}
		return NewGate(spec)
	})

	inverse := GenerateFamily(MinSpan, MaxSpan, func(span int) (Gate, error) {
		spec := GateSpec{
			Symbol:       "QFT^†",
			Name:         "Inverse Fourier Transform Gate",
			Blurb:        "Transforms from/to phase frequency space.",
			SerializedID: fmt.Sprintf("%s%d", InverseIDPrefix, span),
			Span:         span,
			Direction:    Inverse,
			Stable:       true,
		}
		if span < MatrixSpanLimit {
			spec.Matrix = InverseFourierMatrix(span)
		}
		return NewGate(spec)
	})

	all := append(forward.All(), inverse.All()...)

	byID := make(map[string]Gate, len(all))
	for _, g := range all {
		if _, dup := byID[g.SerializedID()]; dup {
			panic(fmt.Sprintf("algoqft: duplicate serialized id %q", g.SerializedID()))
		}
		byID[g.SerializedID()] = g
	}

	errnie.Info("algoqft: built %d Fourier transform gates", len(all))

	return &FourierGates{
		Forward: forward,
		Inverse: inverse,
		all:     all,
		byID:    byID,
	}
}

// All returns the forward gates followed by the inverse gates.
func (f *FourierGates) All() []Gate {
	out := make([]Gate, len(f.all))
	copy(out, f.all)
	return out
}

// BySerializedID looks a gate up by its permanent id.
func (f *FourierGates) BySerializedID(id string) (Gate, bool) {
	g, ok := f.byID[id]
	return g, ok
}

// Family returns the family for a direction.
func (f *FourierGates) Family(dir Direction) GateFamily {
	if dir == Inverse {
		return f.Inverse
	}
	return f.Forward
}

var (
	defaultGatesOnce sync.Once
	defaultGates     *FourierGates
)

// DefaultFourierGates returns a shared instance built on first use. The
// instance is immutable.
func DefaultFourierGates() *FourierGates {
	defaultGatesOnce.Do(func() {
		defaultGates = NewFourierGates()
	})
	return defaultGates
}
