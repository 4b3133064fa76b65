package gpu

import (
	"fmt"
	"sync"

	"github.com/theapemachine/errnie"
)

type programKey struct {
	name   string
	source string
}

// Dispatcher compiles kernels on a context and caches the resulting
// programs, so each kernel is compiled at most once per context.
type Dispatcher struct {
	ctx Context

	mu       sync.Mutex
	programs map[programKey]Program
}

// NewDispatcher returns a dispatcher bound to ctx.
func NewDispatcher(ctx Context) *Dispatcher {
	return &Dispatcher{
		ctx:      ctx,
		programs: make(map[programKey]Program),
	}
}

// Context returns the context programs are compiled on.
func (d *Dispatcher) Context() Context {
	return d.ctx
}

// Program returns the compiled program for k, compiling it on first use.
// Compilation errors are returned as is and not cached; they indicate a
// broken kernel definition.
func (d *Dispatcher) Program(k Kernel) (Program, error) {
	key := programKey{name: k.Name, source: k.Source}

	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.programs[key]; ok {
		return p, nil
	}

	p, err := d.ctx.Compile(k)
	if err != nil {
		return nil, err
	}

	errnie.Info("dispatcher: compiled kernel %s on %s", k.Name, d.ctx.Device().Name)

	d.programs[key] = p

	return p, nil
}

// Run compiles (if needed) and executes one call from src into dst.
func (d *Dispatcher) Run(call Call, dst, src Buffer) error {
	p, err := d.Program(call.Kernel)
	if err != nil {
		return err
	}

	if err := p.Run(dst, src, call.Uniforms); err != nil {
		return fmt.Errorf("run %s: %w", call.Kernel.Name, err)
	}

	return nil
}

// Len returns the number of cached programs.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.programs)
}
