package algoqft

import (
	"fmt"
	"sync/atomic"

	"github.com/theapemachine/errnie"

	"github.com/cwbudde/algo-qft/gpu"
)

// Simulator owns the device resources for one register of qubits: a
// context, a dispatcher with its program cache and the double-buffered
// state. It is safe for concurrent use; operations are applied one at a
// time, each holding the state for all of its passes.
type Simulator struct {
	qubits     int
	opts       Options
	ctx        gpu.Context
	dispatcher *gpu.Dispatcher
	trader     *gpu.StateTrader
	closed     atomic.Bool
}

// NewSimulator allocates a register of qubits initialized to |0…0⟩.
func NewSimulator(qubits int, opts Options) (*Simulator, error) {
	if qubits < 1 || qubits > MaxQubits {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidQubitCount, qubits, MaxQubits)
	}

	var (
		ctx gpu.Context
		err error
	)
	if opts.Backend != nil {
		if !opts.Backend.Available() {
			return nil, gpu.ErrBackendUnavailable
		}
		ctx, err = opts.Backend.NewContext(opts.DeviceIndex)
	} else {
		ctx, err = gpu.NewContext(opts.DeviceIndex)
	}
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}

	dispatcher := gpu.NewDispatcher(ctx)

	trader, err := gpu.NewStateTrader(dispatcher, 1<<qubits, opts.Precision)
	if err != nil {
		_ = ctx.Close()
		return nil, fmt.Errorf("allocate state: %w", err)
	}

	s := &Simulator{
		qubits:     qubits,
		opts:       opts,
		ctx:        ctx,
		dispatcher: dispatcher,
		trader:     trader,
	}

	if err := s.Reset(); err != nil {
		_ = s.Close()
		return nil, err
	}

	errnie.Info("algoqft: simulator with %d qubits (%s) on %s", qubits, opts.Precision, ctx.Device().Name)

	return s, nil
}

// Qubits returns the register size.
func (s *Simulator) Qubits() int { return s.qubits }

// Options returns the options the simulator was created with.
func (s *Simulator) Options() Options { return s.opts }

// Dispatcher returns the simulator's kernel dispatcher.
func (s *Simulator) Dispatcher() *gpu.Dispatcher { return s.dispatcher }

// Passes returns the number of kernel passes run so far.
func (s *Simulator) Passes() int { return s.trader.Passes() }

// Context returns an evaluation context positioned at row.
func (s *Simulator) Context(row int) EvalContext {
	return EvalContext{Row: row, Trader: s.trader}
}

// Apply applies gate to the block starting at row. If it fails part way
// the state is corrupted and must be replaced with SetState or Reset.
func (s *Simulator) Apply(g Gate, row int) error {
	return s.Run(g, row)
}

// Run applies any operation at row. No other operation on the simulator
// interleaves with its passes.
func (s *Simulator) Run(op Operation, row int) error {
	if s.closed.Load() {
		return gpu.ErrClosed
	}
	return s.Context(row).Exclusive(op.Apply)
}

// State downloads the current amplitudes.
func (s *Simulator) State() ([]complex128, error) {
	out := make([]complex128, 1<<s.qubits)
	if err := s.trader.Download(out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetState uploads amplitudes. The state is used as is; it is not
// normalized.
func (s *Simulator) SetState(state []complex128) error {
	if state == nil {
		return ErrNilSlice
	}
	if len(state) != 1<<s.qubits {
		return fmt.Errorf("%w: got %d amplitudes, want %d", ErrLengthMismatch, len(state), 1<<s.qubits)
	}
	return s.trader.Upload(state)
}

// Reset puts the register back into |0…0⟩.
func (s *Simulator) Reset() error {
	state := make([]complex128, 1<<s.qubits)
	state[0] = 1
	return s.trader.Upload(state)
}

// Close releases the device resources. It waits for an operation in
// flight to finish. Afterwards every method that touches the state
// returns gpu.ErrClosed. Closing twice is a no-op.
func (s *Simulator) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	firstErr := s.trader.Close()
	if err := s.ctx.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
