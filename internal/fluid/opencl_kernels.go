package fluid

// openCLKernelSource holds one kernel per stage layout. Argument order
// matches the layout params exactly; vector fields are interleaved float
// buffers (two floats per cell for velocity, three for colour).
const openCLKernelSource = `
inline int wrap_index(int i, int n) {
    i = i % n;
    return i < 0 ? i + n : i;
}

inline int cell(int x, int y, int2 size) {
    return wrap_index(y, size.y) * size.x + wrap_index(x, size.x);
}

inline void sample(__global const float* data, int ch, int2 size, float2 p, float* out) {
    float2 f = floor(p);
    float2 t = p - f;
    int x0 = (int)f.x;
    int y0 = (int)f.y;
    int i00 = cell(x0, y0, size) * ch;
    int i10 = cell(x0 + 1, y0, size) * ch;
    int i01 = cell(x0, y0 + 1, size) * ch;
    int i11 = cell(x0 + 1, y0 + 1, size) * ch;
    for (int c = 0; c < ch; c++) {
        float top = data[i00 + c] + (data[i10 + c] - data[i00 + c]) * t.x;
        float bottom = data[i01 + c] + (data[i11 + c] - data[i01 + c]) * t.x;
        out[c] = top + (bottom - top) * t.y;
    }
}

__kernel void advect(
    const int2 size,
    const float dt,
    const float2 pointer,
    const float2 impulse,
    const float radius,
    const float4 tint,
    __global const float* velocity,
    __global const float* colour,
    __global float* velocity_out,
    __global float* colour_out)
{
    int idx = get_global_id(0);
    if (idx >= size.x * size.y) {
        return;
    }
    int x = idx % size.x;
    int y = idx / size.x;
    float2 here = (float2)((float)x, (float)y);
    float2 back = here - dt * (float2)(velocity[idx * 2], velocity[idx * 2 + 1]);

    float v[2];
    float c[3];
    sample(velocity, 2, size, back, v);
    sample(colour, 3, size, back, c);

    float w = 0.0f;
    if (radius > 0.0f) {
        w = clamp(1.0f - length(here - pointer) / radius, 0.0f, 1.0f);
    }
    if (w > 0.0f) {
        v[0] += w * impulse.x / dt;
        v[1] += w * impulse.y / dt;
        float m = w * min(1.0f, length(impulse));
        c[0] = mix(c[0], tint.x, m);
        c[1] = mix(c[1], tint.y, m);
        c[2] = mix(c[2], tint.z, m);
    }
    velocity_out[idx * 2] = v[0];
    velocity_out[idx * 2 + 1] = v[1];
    colour_out[idx * 3] = c[0];
    colour_out[idx * 3 + 1] = c[1];
    colour_out[idx * 3 + 2] = c[2];
}

__kernel void divergence(
    const int2 size,
    const float dt,
    __global const float* velocity,
    __global float* divergence_out)
{
    int idx = get_global_id(0);
    if (idx >= size.x * size.y) {
        return;
    }
    int x = idx % size.x;
    int y = idx / size.x;
    float du = velocity[cell(x + 1, y, size) * 2] - velocity[cell(x - 1, y, size) * 2];
    float dv = velocity[cell(x, y + 1, size) * 2 + 1] - velocity[cell(x, y - 1, size) * 2 + 1];
    divergence_out[idx] = (du + dv) * (0.5f / dt);
}

__kernel void jacobi(
    const int2 size,
    __global const float* pressure,
    __global const float* divergence,
    __global float* pressure_out)
{
    int idx = get_global_id(0);
    if (idx >= size.x * size.y) {
        return;
    }
    int x = idx % size.x;
    int y = idx / size.x;
    float sum = pressure[cell(x - 1, y, size)] + pressure[cell(x + 1, y, size)] +
                pressure[cell(x, y - 1, size)] + pressure[cell(x, y + 1, size)];
    pressure_out[idx] = (sum - divergence[idx]) * 0.25f;
}

__kernel void project(
    const int2 size,
    const float dt,
    __global const float* velocity,
    __global const float* pressure,
    __global float* velocity_out)
{
    int idx = get_global_id(0);
    if (idx >= size.x * size.y) {
        return;
    }
    int x = idx % size.x;
    int y = idx / size.x;
    float gx = pressure[cell(x + 1, y, size)] - pressure[cell(x - 1, y, size)];
    float gy = pressure[cell(x, y + 1, size)] - pressure[cell(x, y - 1, size)];
    float s = 0.5f * dt;
    velocity_out[idx * 2] = velocity[idx * 2] - s * gx;
    velocity_out[idx * 2 + 1] = velocity[idx * 2 + 1] - s * gy;
}
`
