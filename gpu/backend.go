package gpu

import "sync"

// Backend is implemented by GPU backends (WebGPU, CUDA, Metal, etc.).
// It is responsible for device discovery, buffer allocation, and execution.
type Backend interface {
	Info() BackendInfo
	Available() bool
	Devices() ([]DeviceInfo, error)
	NewContext(deviceIndex int) (Context, error)
}

// Context represents a backend-specific GPU context tied to a device.
type Context interface {
	Device() DeviceInfo
	// NewBuffer allocates a device buffer of complex amplitudes.
	NewBuffer(elemCount int, precision PrecisionKind) (Buffer, error)
	// Compile turns a kernel source into an executable program.
	Compile(k Kernel) (Program, error)
	Close() error
}

// Buffer is a device buffer.
type Buffer interface {
	Len() int
	Precision() PrecisionKind
	// Upload copies from host to device.
	Upload(src []complex128) error
	// Download copies from device to host.
	Download(dst []complex128) error
	Close() error
}

// Program is a compiled kernel.
type Program interface {
	Kernel() Kernel
	// Run executes one pass reading src and writing dst. It returns once the
	// pass has completed.
	Run(dst, src Buffer, uniforms Uniforms) error
}

var (
	backendMu sync.RWMutex
	backend   Backend
)

// RegisterBackend registers a GPU backend. Passing nil clears the backend.
func RegisterBackend(b Backend) {
	backendMu.Lock()
	backend = b
	backendMu.Unlock()
}

// CurrentBackendInfo reports the currently registered backend, if any.
func CurrentBackendInfo() (BackendInfo, bool) {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()
	if b == nil {
		return BackendInfo{}, false
	}
	return b.Info(), true
}

// NewContext opens a context on the registered backend.
func NewContext(deviceIndex int) (Context, error) {
	b := getBackend()
	if b == nil {
		return nil, ErrNoBackend
	}

	if !b.Available() {
		return nil, ErrBackendUnavailable
	}

	return b.NewContext(deviceIndex)
}

func getBackend() Backend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()
	return b
}
