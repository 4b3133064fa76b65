package kernels

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

const tol = 1e-12

func randomAmplitudes(n int, seed int64) []complex128 {
	rng := rand.New(rand.NewSource(seed))

	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}

	return out
}

func runPass(t *testing.T, name string, u Uniforms, src []complex128) []complex128 {
	t.Helper()

	k, ok := Lookup(name)
	if !ok {
		t.Fatalf("kernel %q not registered", name)
	}

	p, err := k.Bind(u, len(src))
	if err != nil {
		t.Fatalf("Bind(%v): %v", u, err)
	}

	dst := make([]complex128, len(src))
	p.Run(dst, src, 0, len(src))

	return dst
}

func TestParseEntry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		want    string
		wantErr bool
	}{
		{"plain", "// kernel: hadamard\nfn main() {}", "hadamard", false},
		{"leading blank lines", "\n\n   // kernel: reverse_bits\n", "reverse_bits", false},
		{"extra spacing", "// kernel:    phase_gradient   ", "phase_gradient", false},
		{"empty", "", "", true},
		{"whitespace only", "  \n\t\n", "", true},
		{"no pragma", "fn main() {}\n// kernel: hadamard", "", true},
		{"empty name", "// kernel:", "", true},
		{"two words", "// kernel: a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseEntry(tt.source)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedSource) {
					t.Fatalf("ParseEntry(%q) error = %v, want ErrMalformedSource", tt.source, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseEntry(%q): %v", tt.source, err)
			}

			if got != tt.want {
				t.Errorf("ParseEntry(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestRegisteredSourcesResolveToThemselves(t *testing.T) {
	t.Parallel()

	names := Names()
	if len(names) != 4 {
		t.Fatalf("Names() = %v, want 4 kernels", names)
	}

	for _, name := range names {
		k, _ := Lookup(name)

		resolved, err := Resolve(k.Source)
		if err != nil {
			t.Fatalf("Resolve(%s source): %v", name, err)
		}

		if resolved != k {
			t.Errorf("source of %s resolves to %s", name, resolved.Name)
		}
	}
}

func TestResolveUnknownKernel(t *testing.T) {
	t.Parallel()

	_, err := Resolve("// kernel: fused_everything\n")
	if !errors.Is(err, ErrUnknownKernel) {
		t.Fatalf("Resolve error = %v, want ErrUnknownKernel", err)
	}
}

func TestBindRejectsBadUniforms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		kernel string
		u      Uniforms
		n      int
		want   error
	}{
		{"missing factor", PhaseGradientName, Uniforms{UniformRow: 0, UniformSpan: 2}, 4, ErrMissingUniform},
		{"missing row", HadamardName, Uniforms{}, 4, ErrMissingUniform},
		{"fractional span", ReverseBitsName, Uniforms{UniformRow: 0, UniformSpan: 1.5}, 4, ErrInvalidUniform},
		{"negative row", HadamardName, Uniforms{UniformRow: -1}, 4, ErrInvalidUniform},
		{"zero span", ReverseBitsName, Uniforms{UniformRow: 0, UniformSpan: 0}, 4, ErrInvalidUniform},
		{"nan factor", ControlledPhaseGradientName, Uniforms{UniformRow: 0, UniformSpan: 2, UniformFactor: math.NaN()}, 4, ErrInvalidUniform},
		{"block past end", ReverseBitsName, Uniforms{UniformRow: 1, UniformSpan: 2}, 4, ErrInvalidUniform},
		{"qubit past end", HadamardName, Uniforms{UniformRow: 2}, 4, ErrInvalidUniform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			k, _ := Lookup(tt.kernel)

			_, err := k.Bind(tt.u, tt.n)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Bind(%v, %d) error = %v, want %v", tt.u, tt.n, err, tt.want)
			}
		})
	}
}

func TestPhaseGradientConcreteCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		span   int
		factor float64
		angle  func(k int) float64
	}{
		{3, 1, func(k int) float64 { return float64(k) * math.Pi / 8 }},
		{4, -1, func(k int) float64 { return -float64(k) * math.Pi / 16 }},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("span=%d/factor=%v", tt.span, tt.factor), func(t *testing.T) {
			t.Parallel()

			src := randomAmplitudes(1<<tt.span, 7)
			got := runPass(t, PhaseGradientName, Uniforms{UniformRow: 0, UniformSpan: float64(tt.span), UniformFactor: tt.factor}, src)

			for k := range src {
				want := src[k] * cmplx.Rect(1, tt.angle(k))
				if cmplx.Abs(got[k]-want) > tol {
					t.Fatalf("amplitude %d: got %v want %v", k, got[k], want)
				}
			}
		})
	}
}

func TestControlledPhaseGradientMatchesHoldStepFormula(t *testing.T) {
	t.Parallel()

	const (
		row    = 1
		span   = 3
		bits   = 5
		factor = 1.0
	)

	src := randomAmplitudes(1<<bits, 11)
	got := runPass(t, ControlledPhaseGradientName, Uniforms{UniformRow: row, UniformSpan: span, UniformFactor: factor}, src)

	size := float64(int(1) << span)

	for k := range src {
		outID := float64((k >> row) & (1<<span - 1))
		hold := math.Floor(outID * 2 / size)
		step := math.Mod(outID, size/2)
		want := src[k] * cmplx.Rect(1, hold*step*factor*2*math.Pi/size)

		if cmplx.Abs(got[k]-want) > tol {
			t.Fatalf("amplitude %d: got %v want %v", k, got[k], want)
		}
	}
}

func TestReverseBitsIsInvolution(t *testing.T) {
	t.Parallel()

	for span := 1; span <= 5; span++ {
		for row := 0; row+span <= 6; row++ {
			u := Uniforms{UniformRow: float64(row), UniformSpan: float64(span)}
			src := randomAmplitudes(1<<6, int64(span*10+row))

			once := runPass(t, ReverseBitsName, u, src)
			twice := runPass(t, ReverseBitsName, u, once)

			for k := range src {
				if twice[k] != src[k] {
					t.Fatalf("span=%d row=%d: amplitude %d changed after double reversal", span, row, k)
				}
			}
		}
	}
}

func TestHadamardIsSelfInverse(t *testing.T) {
	t.Parallel()

	for row := range 4 {
		u := Uniforms{UniformRow: float64(row)}
		src := randomAmplitudes(16, int64(row))

		twice := runPass(t, HadamardName, u, runPass(t, HadamardName, u, src))
		for k := range src {
			if cmplx.Abs(twice[k]-src[k]) > tol {
				t.Fatalf("row=%d: amplitude %d got %v want %v", row, k, twice[k], src[k])
			}
		}
	}
}

func TestPassRangesAreIndependent(t *testing.T) {
	t.Parallel()

	src := randomAmplitudes(64, 3)
	u := Uniforms{UniformRow: 2, UniformSpan: 3, UniformFactor: -1}

	whole := runPass(t, ControlledPhaseGradientName, u, src)

	k, _ := Lookup(ControlledPhaseGradientName)

	p, err := k.Bind(u, len(src))
	if err != nil {
		t.Fatal(err)
	}

	split := make([]complex128, len(src))
	for lo := 0; lo < len(src); lo += 7 {
		p.Run(split, src, lo, min(lo+7, len(src)))
	}

	for i := range whole {
		if whole[i] != split[i] {
			t.Fatalf("amplitude %d differs between whole and split runs", i)
		}
	}
}

func TestPhaseTablesCacheOnlyUnitFactors(t *testing.T) {
	t.Parallel()

	var c phaseTableCache
	angle := func(i int) float64 { return float64(i) }

	for _, factor := range []float64{0.37, -2.5, 0.37, 1e-9} {
		if got := c.get(PhaseGradientName, 3, factor, 8, angle); len(got) != 8 {
			t.Fatalf("table for factor %v has %d entries, want 8", factor, len(got))
		}
	}
	if n := c.len(); n != 0 {
		t.Fatalf("cache holds %d tables after non-unit factors, want 0", n)
	}

	first := c.get(PhaseGradientName, 3, 1, 8, angle)
	again := c.get(PhaseGradientName, 3, 1, 8, angle)
	c.get(PhaseGradientName, 3, -1, 8, angle)

	if &first[0] != &again[0] {
		t.Error("unit factor table was rebuilt instead of shared")
	}
	if n := c.len(); n != 2 {
		t.Errorf("cache holds %d tables, want 2", n)
	}

	if _, ok := phaseTables.m.Load(phaseTableKey{kernel: PhaseGradientName, span: 16, factor: 0.37}); ok {
		t.Error("shared cache kept a span-16 table for factor 0.37")
	}
	phaseGradientTable(16, 0.37)
	if _, ok := phaseTables.m.Load(phaseTableKey{kernel: PhaseGradientName, span: 16, factor: 0.37}); ok {
		t.Error("shared cache kept a span-16 table for factor 0.37")
	}
}
