package gpu

import (
	"fmt"
	"sync"
)

// StateTrader owns the active and scratch amplitude buffers. Each pass
// reads the active buffer, writes the scratch buffer, and then the two
// trade places so the next pass reads what was just written.
//
// A gate application spans many passes and must own the state for all of
// them. Borrow hands out that ownership as a Lease; until it is released,
// ShadeAndTrade, Upload, Download and Close on the trader block, and
// other borrowers wait. A single ShadeAndTrade on the trader is itself a
// one-pass lease.
type StateTrader struct {
	dispatcher *Dispatcher

	// gate is held for a whole gate application, mu for one pass.
	gate sync.Mutex

	mu      sync.Mutex
	active  Buffer
	scratch Buffer
	passes  int
	fault   error
	closed  bool
}

// Lease is exclusive ownership of a trader's state for the passes of one
// gate application. A lease is not safe for concurrent use.
type Lease struct {
	t        *StateTrader
	released bool
}

// NewStateTrader allocates a double buffer of size amplitudes on the
// dispatcher's context. size must be a power of two. The active buffer
// starts as all zeros.
func NewStateTrader(d *Dispatcher, size int, precision PrecisionKind) (*StateTrader, error) {
	if size < 1 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d amplitudes", ErrInvalidLength, size)
	}

	active, err := d.ctx.NewBuffer(size, precision)
	if err != nil {
		return nil, err
	}

	scratch, err := d.ctx.NewBuffer(size, precision)
	if err != nil {
		_ = active.Close()
		return nil, err
	}

	return &StateTrader{
		dispatcher: d,
		active:     active,
		scratch:    scratch,
	}, nil
}

// Len returns the number of amplitudes held, or 0 once closed.
func (t *StateTrader) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.active == nil {
		return 0
	}
	return t.active.Len()
}

// Precision returns the storage precision of both buffers.
func (t *StateTrader) Precision() PrecisionKind {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return PrecisionComplex128
	}
	return t.active.Precision()
}

// Borrow blocks until no other gate application owns the state and
// returns a lease for the caller's passes. The lease must be released.
func (t *StateTrader) Borrow() *Lease {
	t.gate.Lock()
	return &Lease{t: t}
}

// Trader returns the trader the lease was taken on.
func (l *Lease) Trader() *StateTrader {
	return l.t
}

// ShadeAndTrade runs one pass under the lease.
func (l *Lease) ShadeAndTrade(call Call) error {
	if l.released {
		return ErrLeaseReleased
	}
	return l.t.shade(call)
}

// Release gives the state back. Releasing twice is a no-op.
func (l *Lease) Release() {
	if l.released {
		return
	}
	l.released = true
	l.t.gate.Unlock()
}

// ShadeAndTrade runs one kernel pass active→scratch and swaps the buffers.
// It waits for any outstanding lease. If the pass fails the trader is
// marked corrupted: every later pass fails with ErrCorruptState until the
// state is replaced with Upload.
func (t *StateTrader) ShadeAndTrade(call Call) error {
	t.gate.Lock()
	defer t.gate.Unlock()

	return t.shade(call)
}

func (t *StateTrader) shade(call Call) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if t.fault != nil {
		return fmt.Errorf("%w: %w", ErrCorruptState, t.fault)
	}

	if err := t.dispatcher.Run(call, t.scratch, t.active); err != nil {
		t.fault = err
		return err
	}

	t.active, t.scratch = t.scratch, t.active
	t.passes++

	return nil
}

// Upload replaces the active amplitudes and clears any corruption mark.
func (t *StateTrader) Upload(src []complex128) error {
	t.gate.Lock()
	defer t.gate.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if len(src) != t.active.Len() {
		return fmt.Errorf("%w: got %d amplitudes, want %d", ErrLengthMismatch, len(src), t.active.Len())
	}
	if err := t.active.Upload(src); err != nil {
		return err
	}

	t.fault = nil

	return nil
}

// Download copies the active amplitudes into dst. It waits for any
// outstanding lease, so it never observes a half-applied gate.
func (t *StateTrader) Download(dst []complex128) error {
	t.gate.Lock()
	defer t.gate.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if t.fault != nil {
		return fmt.Errorf("%w: %w", ErrCorruptState, t.fault)
	}

	return t.active.Download(dst)
}

// Passes returns how many passes have completed since creation.
func (t *StateTrader) Passes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.passes
}

// Err returns the failure that corrupted the state, if any.
func (t *StateTrader) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fault
}

// Close releases both buffers once any outstanding lease is released.
// Closing twice is a no-op.
func (t *StateTrader) Close() error {
	t.gate.Lock()
	defer t.gate.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	for _, b := range []Buffer{t.active, t.scratch} {
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
