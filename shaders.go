package algoqft

import (
	"fmt"

	"github.com/cwbudde/algo-qft/gpu"
	"github.com/cwbudde/algo-qft/internal/kernels"
)

var (
	controlledPhaseGradientShader = builtinShader(kernels.ControlledPhaseGradientName)
	phaseGradientShader           = builtinShader(kernels.PhaseGradientName)
	reverseBitsShader             = builtinShader(kernels.ReverseBitsName)
	hadamardShader                = builtinShader(kernels.HadamardName)
)

func builtinShader(name string) gpu.Kernel {
	k, ok := gpu.BuiltinKernel(name)
	if !ok {
		panic(fmt.Sprintf("algoqft: builtin kernel %q missing", name))
	}
	return k
}

// ketCall binds the block uniforms (row, span) of ctx plus any extra
// uniforms to a shader.
func ketCall(shader gpu.Kernel, ctx EvalContext, span int, extra gpu.Uniforms) gpu.Call {
	u := gpu.Uniforms{
		kernels.UniformRow:  float64(ctx.Row),
		kernels.UniformSpan: float64(span),
	}
	for name, v := range extra {
		u[name] = v
	}
	return gpu.Call{Kernel: shader, Uniforms: u}
}
