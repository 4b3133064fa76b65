package gpu

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Features describes the host SIMD capabilities the mock device runs on.
type Features struct {
	HasAVX2      bool
	HasAVX512    bool
	HasSSE2      bool
	HasNEON      bool
	Architecture string
}

// DetectFeatures reports the available CPU features for the current process.
func DetectFeatures() Features {
	return Features{
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512F,
		HasSSE2:      cpu.X86.HasSSE2,
		HasNEON:      cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}

// VectorLanes returns how many complex128 values fit in one SIMD register.
func (f Features) VectorLanes() int {
	switch {
	case f.HasAVX512:
		return 4
	case f.HasAVX2:
		return 2
	default:
		return 1
	}
}

func (f Features) String() string {
	parts := []string{f.Architecture}
	if f.HasSSE2 {
		parts = append(parts, "sse2")
	}
	if f.HasAVX2 {
		parts = append(parts, "avx2")
	}
	if f.HasAVX512 {
		parts = append(parts, "avx512")
	}
	if f.HasNEON {
		parts = append(parts, "neon")
	}
	return strings.Join(parts, "+")
}
