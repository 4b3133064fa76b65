package kernels

// Shader sources. Amplitudes are stored as vec2<f32> (re, im); each
// invocation writes exactly one output amplitude.

const prelude = `
struct Params {
    row: u32,
    span: u32,
    factor: f32,
}

@group(0) @binding(0) var<storage, read> src: array<vec2<f32>>;
@group(0) @binding(1) var<storage, read_write> dst: array<vec2<f32>>;
@group(0) @binding(2) var<uniform> params: Params;

fn cmul(a: vec2<f32>, b: vec2<f32>) -> vec2<f32> {
    return vec2<f32>(a.x * b.x - a.y * b.y, a.x * b.y + a.y * b.x);
}

fn block_id(k: u32) -> u32 {
    return (k >> params.row) & ((1u << params.span) - 1u);
}
`

const controlledPhaseGradientSource = `// kernel: controlled_phase_gradient
` + prelude + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    let k = id.x;
    if (k >= arrayLength(&src)) {
        return;
    }
    let size = f32(1u << params.span);
    let out_id = f32(block_id(k));
    let hold = floor(out_id * 2.0 / size);
    let step = out_id % (size / 2.0);
    let angle = hold * step * params.factor * 6.2831853071795864769 / size;
    dst[k] = cmul(src[k], vec2<f32>(cos(angle), sin(angle)));
}
`

const phaseGradientSource = `// kernel: phase_gradient
` + prelude + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    let k = id.x;
    if (k >= arrayLength(&src)) {
        return;
    }
    let size = f32(1u << params.span);
    let angle = f32(block_id(k)) * params.factor * 3.1415926535897932384 / size;
    dst[k] = cmul(src[k], vec2<f32>(cos(angle), sin(angle)));
}
`

const reverseBitsSource = `// kernel: reverse_bits
` + prelude + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    let k = id.x;
    if (k >= arrayLength(&src)) {
        return;
    }
    let b = block_id(k);
    let r = reverseBits(b) >> (32u - params.span);
    let mask = ((1u << params.span) - 1u) << params.row;
    dst[k] = src[(k & ~mask) | (r << params.row)];
}
`

const hadamardSource = `// kernel: hadamard
` + prelude + `
@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    let k = id.x;
    if (k >= arrayLength(&src)) {
        return;
    }
    let bit = 1u << params.row;
    let a0 = src[k & ~bit];
    let a1 = src[k | bit];
    let s = select(1.0, -1.0, (k & bit) != 0u);
    dst[k] = (a0 + s * a1) * 0.70710678118654752440;
}
`
