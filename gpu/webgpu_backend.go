package gpu

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cwbudde/algo-qft/internal/kernels"
)

// WebGPUBackend targets WebGPU devices. The kernel sources are WGSL, but
// device submission is not wired yet: the backend reports itself
// unavailable, and its contexts only check shader sources. Compile
// resolves and validates a kernel the way a device compile would and then
// returns ErrNotImplemented.
type WebGPUBackend struct{}

func (b *WebGPUBackend) Info() BackendInfo {
	return BackendInfo{
		Name:        "webgpu",
		Version:     "validate-only",
		Description: "WebGPU backend (WGSL validation, no device submission)",
	}
}

func (b *WebGPUBackend) Available() bool {
	return false
}

func (b *WebGPUBackend) Devices() ([]DeviceInfo, error) {
	return nil, ErrBackendUnavailable
}

// NewContext opens a device-less context usable for shader validation.
func (b *WebGPUBackend) NewContext(deviceIndex int) (Context, error) {
	if deviceIndex != 0 {
		return nil, fmt.Errorf("webgpu backend: device index %d out of range", deviceIndex)
	}

	return &webgpuContext{}, nil
}

// RegisterWebGPUBackend registers the WebGPU backend.
func RegisterWebGPUBackend() {
	RegisterBackend(&WebGPUBackend{})
}

type webgpuContext struct {
	mu     sync.Mutex
	closed bool
}

func (c *webgpuContext) Device() DeviceInfo {
	return DeviceInfo{Name: "WebGPU (no adapter)", Driver: "webgpu"}
}

func (c *webgpuContext) NewBuffer(int, PrecisionKind) (Buffer, error) {
	return nil, ErrNotImplemented
}

func (c *webgpuContext) Compile(k Kernel) (Program, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	if _, err := resolveShader(k); err != nil {
		return nil, err
	}

	return nil, fmt.Errorf("%w: %s: webgpu submission", ErrNotImplemented, k.Name)
}

func (c *webgpuContext) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

// resolveShader checks that k's WGSL source declares k's entry, has a
// compute entry point and reads every uniform the kernel binds, and
// returns the kernel definition it resolves to.
func resolveShader(k Kernel) (*kernels.Kernel, error) {
	def, err := kernels.Resolve(k.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompile, k.Name, err)
	}

	if def.Name != k.Name {
		return nil, fmt.Errorf("%w: %s: source declares entry %q", ErrCompile, k.Name, def.Name)
	}

	if !strings.Contains(k.Source, "@compute") || !strings.Contains(k.Source, "fn main(") {
		return nil, fmt.Errorf("%w: %s: no compute entry point", ErrCompile, k.Name)
	}

	for _, u := range def.Uniforms {
		if !strings.Contains(k.Source, "params."+u) {
			return nil, fmt.Errorf("%w: %s: uniform %q is never read", ErrCompile, k.Name, u)
		}
	}

	return def, nil
}
