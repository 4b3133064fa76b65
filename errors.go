package algoqft

import "errors"

// Sentinel errors returned by gate operations.
var (
	// ErrInvalidSpan is returned when a span is outside the supported range.
	// Gate spans must lie in [MinSpan, MaxSpan].
	ErrInvalidSpan = errors.New("algoqft: invalid qubit span")

	// ErrRowOutOfRange is returned when a gate's block does not fit in the
	// simulated register at the requested row.
	ErrRowOutOfRange = errors.New("algoqft: qubit row out of range")

	// ErrNoTrader is returned when an evaluation context has no state trader.
	ErrNoTrader = errors.New("algoqft: evaluation context has no state trader")

	// ErrInvalidQubitCount is returned for simulator sizes outside [1, MaxQubits].
	ErrInvalidQubitCount = errors.New("algoqft: invalid qubit count")

	// ErrLengthMismatch is returned when a state or matrix does not have the
	// size an operation requires.
	ErrLengthMismatch = errors.New("algoqft: length mismatch")

	// ErrNilSlice is returned when a nil state is passed in.
	ErrNilSlice = errors.New("algoqft: nil slice")

	// ErrToleranceExceeded is returned by the validation helpers when the
	// simulated state drifts further from the expected one than
	// Options.Tolerance allows.
	ErrToleranceExceeded = errors.New("algoqft: tolerance exceeded")
)
