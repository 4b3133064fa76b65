package gpu

import "github.com/cwbudde/algo-qft/internal/kernels"

// PrecisionKind describes the storage precision of device buffers.
type PrecisionKind uint8

const (
	PrecisionComplex64 PrecisionKind = iota
	PrecisionComplex128
)

func (p PrecisionKind) String() string {
	switch p {
	case PrecisionComplex64:
		return "complex64"
	case PrecisionComplex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// DeviceInfo describes a GPU device.
type DeviceInfo struct {
	Name       string
	Vendor     string
	Driver     string
	MemoryMB   int
	ComputeCap string
	Features   Features
}

// BackendInfo describes a backend implementation.
type BackendInfo struct {
	Name        string
	Version     string
	Description string
}

// Uniforms are the named scalar arguments bound to a kernel pass.
type Uniforms = kernels.Uniforms

// Kernel identifies a kernel program by name and source.
type Kernel struct {
	Name   string
	Source string
}

// Call is one kernel pass to run: the program plus its bound uniforms.
type Call struct {
	Kernel   Kernel
	Uniforms Uniforms
}

// BuiltinKernel returns the descriptor of a kernel shipped with the package.
func BuiltinKernel(name string) (Kernel, bool) {
	k, ok := kernels.Lookup(name)
	if !ok {
		return Kernel{}, false
	}

	return Kernel{Name: k.Name, Source: k.Source}, true
}

// BuiltinKernelNames lists the kernels shipped with the package.
func BuiltinKernelNames() []string {
	return kernels.Names()
}
