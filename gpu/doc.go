// Package gpu provides the device side of the gate pipeline: kernel
// compilation, amplitude buffers and the double-buffered state trader that
// runs one kernel pass at a time.
//
// A backend must be registered before contexts can be created. The
// CPU-backed MockBackend executes every kernel with its reference body and
// is what tests and the command-line tools use.
package gpu
