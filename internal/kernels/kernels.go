// Package kernels holds the elementary amplitude-vector passes used by the
// gate pipeline: their shader sources and the CPU bodies that execute them
// on the mock device.
package kernels

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Kernel names. These double as the entry pragma in each shader source.
const (
	ControlledPhaseGradientName = "controlled_phase_gradient"
	PhaseGradientName           = "phase_gradient"
	ReverseBitsName             = "reverse_bits"
	HadamardName                = "hadamard"
)

// Uniform names shared by the kernels.
const (
	UniformRow    = "row"
	UniformSpan   = "span"
	UniformFactor = "factor"
)

// MaxIndexBits bounds row+span for any pass.
const MaxIndexBits = 30

const entryPragma = "// kernel:"

var (
	// ErrMalformedSource is returned when a source carries no usable entry pragma.
	ErrMalformedSource = errors.New("kernels: malformed source")

	// ErrUnknownKernel is returned when a source names a kernel that is not registered.
	ErrUnknownKernel = errors.New("kernels: unknown kernel")

	// ErrMissingUniform is returned when a required uniform is not bound.
	ErrMissingUniform = errors.New("kernels: missing uniform")

	// ErrInvalidUniform is returned when a uniform value is out of range.
	ErrInvalidUniform = errors.New("kernels: invalid uniform")
)

// Uniforms are the named scalar arguments bound to one kernel pass.
type Uniforms map[string]float64

// Float returns the named uniform.
func (u Uniforms) Float(name string) (float64, error) {
	v, ok := u[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingUniform, name)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q = %v", ErrInvalidUniform, name, v)
	}

	return v, nil
}

// Int returns the named uniform, which must be a non-negative integer.
func (u Uniforms) Int(name string) (int, error) {
	v, err := u.Float(name)
	if err != nil {
		return 0, err
	}

	if v < 0 || v != math.Trunc(v) || v > MaxIndexBits {
		return 0, fmt.Errorf("%w: %q = %v", ErrInvalidUniform, name, v)
	}

	return int(v), nil
}

// Pass is a kernel with its uniforms bound, ready to run over index ranges.
type Pass struct {
	// Bits is the number of low index bits the pass reads; the buffers must
	// hold at least 1<<Bits amplitudes.
	Bits int

	// Run writes dst[lo:hi] from src. Ranges never overlap between calls of
	// the same pass, so disjoint ranges may run concurrently.
	Run func(dst, src []complex128, lo, hi int)
}

// Kernel is a registered kernel program.
type Kernel struct {
	Name     string
	Source   string
	Uniforms []string

	bind func(u Uniforms, n int) (Pass, error)
}

// Bind validates the uniforms against a buffer of n amplitudes and prepares
// a pass.
func (k *Kernel) Bind(u Uniforms, n int) (Pass, error) {
	for _, name := range k.Uniforms {
		if _, ok := u[name]; !ok {
			return Pass{}, fmt.Errorf("%s: %w: %q", k.Name, ErrMissingUniform, name)
		}
	}

	p, err := k.bind(u, n)
	if err != nil {
		return Pass{}, fmt.Errorf("%s: %w", k.Name, err)
	}

	return p, nil
}

var registry = map[string]*Kernel{
	ControlledPhaseGradientName: {
		Name:     ControlledPhaseGradientName,
		Source:   controlledPhaseGradientSource,
		Uniforms: []string{UniformRow, UniformSpan, UniformFactor},
		bind:     bindControlledPhaseGradient,
	},
	PhaseGradientName: {
		Name:     PhaseGradientName,
		Source:   phaseGradientSource,
		Uniforms: []string{UniformRow, UniformSpan, UniformFactor},
		bind:     bindPhaseGradient,
	},
	ReverseBitsName: {
		Name:     ReverseBitsName,
		Source:   reverseBitsSource,
		Uniforms: []string{UniformRow, UniformSpan},
		bind:     bindReverseBits,
	},
	HadamardName: {
		Name:     HadamardName,
		Source:   hadamardSource,
		Uniforms: []string{UniformRow},
		bind:     bindHadamard,
	},
}

// Lookup returns the registered kernel with the given name.
func Lookup(name string) (*Kernel, bool) {
	k, ok := registry[name]
	return k, ok
}

// Names lists the registered kernels in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ParseEntry extracts the kernel name from the first "// kernel: <name>"
// line of a source.
func ParseEntry(source string) (string, error) {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, entryPragma) {
			return "", fmt.Errorf("%w: first line %q is not an entry pragma", ErrMalformedSource, line)
		}

		name := strings.TrimSpace(strings.TrimPrefix(line, entryPragma))
		if name == "" || strings.ContainsAny(name, " \t") {
			return "", fmt.Errorf("%w: bad entry name %q", ErrMalformedSource, name)
		}

		return name, nil
	}

	return "", fmt.Errorf("%w: empty source", ErrMalformedSource)
}

// Resolve parses a source and returns the kernel it names.
func Resolve(source string) (*Kernel, error) {
	name, err := ParseEntry(source)
	if err != nil {
		return nil, err
	}

	k, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}

	return k, nil
}

// blockUniforms reads the row/span pair every block-addressed kernel takes
// and checks that the block fits inside n amplitudes.
func blockUniforms(u Uniforms, n int) (row, span int, err error) {
	row, err = u.Int(UniformRow)
	if err != nil {
		return 0, 0, err
	}

	span, err = u.Int(UniformSpan)
	if err != nil {
		return 0, 0, err
	}

	if span < 1 || row+span > MaxIndexBits {
		return 0, 0, fmt.Errorf("%w: row=%d span=%d", ErrInvalidUniform, row, span)
	}

	if err := fitsIn(row+span, n); err != nil {
		return 0, 0, err
	}

	return row, span, nil
}

// fitsIn reports an error when 1<<bits amplitudes do not fit in n.
func fitsIn(bits, n int) error {
	if bits > MaxIndexBits || 1<<bits > n {
		return fmt.Errorf("%w: pass addresses %d index bits, buffer holds %d amplitudes", ErrInvalidUniform, bits, n)
	}

	return nil
}
