package gpu

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/theapemachine/errnie"

	"github.com/cwbudde/algo-qft/internal/kernels"
)

// minParallelPass is the smallest pass the mock device splits across workers.
const minParallelPass = 1 << 12

// registersPerChunk sets worker chunk alignment: every chunk starts on a
// multiple of this many SIMD registers of amplitudes.
const registersPerChunk = 64

// MockBackend is a CPU-backed GPU backend for development and tests.
// It satisfies the GPU backend interfaces but executes on the CPU.
type MockBackend struct {
	device  DeviceInfo
	workers int
	align   int
}

// NewMockBackend returns a mock backend with a single fake device that
// spreads each pass over GOMAXPROCS workers.
func NewMockBackend() *MockBackend {
	return NewMockBackendWithWorkers(runtime.GOMAXPROCS(0))
}

// NewMockBackendWithWorkers returns a mock backend that splits each pass
// across at most workers goroutines.
func NewMockBackendWithWorkers(workers int) *MockBackend {
	if workers < 1 {
		workers = 1
	}

	features := DetectFeatures()

	return &MockBackend{
		device: DeviceInfo{
			Name:       "MockGPU",
			Vendor:     "algoqft",
			Driver:     "mock",
			MemoryMB:   0,
			ComputeCap: "cpu/" + features.String(),
			Features:   features,
		},
		workers: workers,
		align:   registersPerChunk * features.VectorLanes(),
	}
}

func (b *MockBackend) Info() BackendInfo {
	return BackendInfo{
		Name:        "mock",
		Version:     "0.2",
		Description: "CPU-backed mock GPU backend",
	}
}

func (b *MockBackend) Available() bool {
	return true
}

func (b *MockBackend) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{b.device}, nil
}

func (b *MockBackend) NewContext(deviceIndex int) (Context, error) {
	if deviceIndex != 0 {
		return nil, fmt.Errorf("mock backend: device index %d out of range", deviceIndex)
	}

	errnie.Info("mock backend: context on %s (%s), %d workers", b.device.Name, b.device.ComputeCap, b.workers)

	return &mockContext{device: b.device, workers: b.workers, align: b.align}, nil
}

// RegisterMockBackend registers the mock backend as the active backend.
func RegisterMockBackend() {
	RegisterBackend(NewMockBackend())
}

type mockContext struct {
	device  DeviceInfo
	workers int
	align   int

	mu     sync.Mutex
	closed bool
}

func (c *mockContext) Device() DeviceInfo {
	return c.device
}

func (c *mockContext) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *mockContext) NewBuffer(elemCount int, precision PrecisionKind) (Buffer, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}
	if elemCount < 0 {
		return nil, ErrInvalidLength
	}
	switch precision {
	case PrecisionComplex64, PrecisionComplex128:
		return &mockBuffer{
			owner:     c,
			precision: precision,
			data:      make([]complex128, elemCount),
		}, nil
	default:
		return nil, ErrNotImplemented
	}
}

func (c *mockContext) Compile(k Kernel) (Program, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}

	def, err := resolveShader(k)
	if err != nil {
		return nil, err
	}

	return &mockProgram{owner: c, kernel: k, def: def}, nil
}

func (c *mockContext) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

type mockBuffer struct {
	owner     *mockContext
	precision PrecisionKind
	data      []complex128
}

func (b *mockBuffer) Len() int {
	return len(b.data)
}

func (b *mockBuffer) Precision() PrecisionKind {
	return b.precision
}

func (b *mockBuffer) Upload(src []complex128) error {
	if b.data == nil && b.owner == nil {
		return ErrClosed
	}
	if src == nil {
		return ErrNilSlice
	}
	if len(src) < len(b.data) {
		return ErrLengthMismatch
	}
	copy(b.data, src[:len(b.data)])
	b.round(0, len(b.data))
	return nil
}

func (b *mockBuffer) Download(dst []complex128) error {
	if b.data == nil && b.owner == nil {
		return ErrClosed
	}
	if dst == nil {
		return ErrNilSlice
	}
	if len(dst) < len(b.data) {
		return ErrLengthMismatch
	}
	copy(dst[:len(b.data)], b.data)
	return nil
}

// round emulates single-precision device storage for complex64 buffers.
func (b *mockBuffer) round(lo, hi int) {
	if b.precision != PrecisionComplex64 {
		return
	}
	for i := lo; i < hi; i++ {
		b.data[i] = complex128(complex64(b.data[i]))
	}
}

func (b *mockBuffer) Close() error {
	b.data = nil
	b.owner = nil
	return nil
}

type mockProgram struct {
	owner  *mockContext
	kernel Kernel
	def    *kernels.Kernel
}

func (p *mockProgram) Kernel() Kernel {
	return p.kernel
}

func (p *mockProgram) Run(dst, src Buffer, uniforms Uniforms) error {
	if p.owner.isClosed() {
		return ErrClosed
	}

	out, ok := dst.(*mockBuffer)
	if !ok || out.owner != p.owner {
		return ErrForeignBuffer
	}
	in, ok := src.(*mockBuffer)
	if !ok || in.owner != p.owner {
		return ErrForeignBuffer
	}
	if out == in {
		return ErrAliasedBuffers
	}
	if out.Len() != in.Len() || out.precision != in.precision {
		return ErrLengthMismatch
	}

	pass, err := p.def.Bind(uniforms, in.Len())
	if err != nil {
		return err
	}

	n := in.Len()
	workers := p.owner.workers
	if n < minParallelPass || workers == 1 {
		pass.Run(out.data, in.data, 0, n)
		out.round(0, n)
		return nil
	}

	var wg sync.WaitGroup
	for _, r := range splitPass(n, workers, p.owner.align) {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			pass.Run(out.data, in.data, lo, hi)
			out.round(lo, hi)
		}(r[0], r[1])
	}
	wg.Wait()

	return nil
}

// splitPass cuts [0, n) into at most workers contiguous ranges whose
// starts are multiples of align.
func splitPass(n, workers, align int) [][2]int {
	align = max(align, 1)
	chunk := (n + workers - 1) / workers
	chunk = (chunk + align - 1) / align * align

	ranges := make([][2]int, 0, workers)
	for lo := 0; lo < n; lo += chunk {
		ranges = append(ranges, [2]int{lo, min(lo+chunk, n)})
	}
	return ranges
}
