package gpu

import "errors"

var (
	// ErrNoBackend is returned when no GPU backend is registered.
	ErrNoBackend = errors.New("algoqft/gpu: no backend registered")

	// ErrBackendUnavailable is returned when the backend is registered but not available
	// on the current system (e.g., no device, driver missing).
	ErrBackendUnavailable = errors.New("algoqft/gpu: backend unavailable")

	// ErrNotImplemented is returned by stubbed operations.
	ErrNotImplemented = errors.New("algoqft/gpu: not implemented")

	// ErrInvalidLength is returned for buffer sizes that are not a power of two.
	ErrInvalidLength = errors.New("algoqft/gpu: invalid length")

	// ErrNilSlice is returned when an upload or download slice is nil.
	ErrNilSlice = errors.New("algoqft/gpu: nil slice")

	// ErrLengthMismatch is returned when slice or buffer lengths are not as required.
	ErrLengthMismatch = errors.New("algoqft/gpu: length mismatch")

	// ErrCompile is returned when a kernel source cannot be compiled. It marks a
	// defect in the kernel definitions and is never retried.
	ErrCompile = errors.New("algoqft/gpu: kernel compilation failed")

	// ErrForeignBuffer is returned when a program is run against buffers that
	// belong to a different context or backend.
	ErrForeignBuffer = errors.New("algoqft/gpu: buffer from another context")

	// ErrAliasedBuffers is returned when a pass would read and write the same buffer.
	ErrAliasedBuffers = errors.New("algoqft/gpu: source and destination alias")

	// ErrCorruptState is returned by a state trader after a pass failed part way
	// through a gate. The amplitudes must be re-uploaded before further passes.
	ErrCorruptState = errors.New("algoqft/gpu: amplitude state corrupted by failed pass")

	// ErrLeaseReleased is returned when a pass is run on a lease that was
	// already given back.
	ErrLeaseReleased = errors.New("algoqft/gpu: state lease released")

	// ErrClosed is returned when a closed resource is used.
	ErrClosed = errors.New("algoqft/gpu: use of closed resource")
)
