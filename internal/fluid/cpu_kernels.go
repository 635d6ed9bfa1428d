package fluid

import "math"

// Host versions of the stage programs. They follow the OpenCL kernels in
// opencl_kernels.go cell for cell.

func (d *cpuDevice) advect(a *kernelArgs) {
	w, h := a.grid()
	dt := a.float(ParamTimestep)
	pointer := a.vec2(ParamPointer)
	impulse := a.vec2(ParamImpulse)
	radius := a.float(ParamImpulseRadius)
	tint := a.vec3(ParamImpulseTint)
	vel := a.surface(ParamVelocity, Vec2)
	col := a.surface(ParamColour, RGB)
	velOut := a.surface(ParamVelocityOut, Vec2)
	colOut := a.surface(ParamColourOut, RGB)
	if a.err != nil {
		return
	}

	strength := float32(math.Hypot(float64(impulse[0]), float64(impulse[1])))
	if strength > 1 {
		strength = 1
	}
	var v [2]float32
	var c [3]float32
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			px := float32(x) - dt*vel[i*2]
			py := float32(y) - dt*vel[i*2+1]
			sampleBilinear(vel, 2, w, h, px, py, v[:])
			sampleBilinear(col, 3, w, h, px, py, c[:])

			dx, dy := float32(x)-pointer[0], float32(y)-pointer[1]
			if f := falloff(float32(math.Sqrt(float64(dx*dx+dy*dy))), radius); f > 0 {
				v[0] += f * impulse[0] / dt
				v[1] += f * impulse[1] / dt
				m := f * strength
				for ch := range c {
					c[ch] += (tint[ch] - c[ch]) * m
				}
			}
			velOut[i*2], velOut[i*2+1] = v[0], v[1]
			colOut[i*3], colOut[i*3+1], colOut[i*3+2] = c[0], c[1], c[2]
		}
	}
}

func (d *cpuDevice) divergence(a *kernelArgs) {
	w, h := a.grid()
	dt := a.float(ParamTimestep)
	vel := a.surface(ParamVelocity, Vec2)
	out := a.surface(ParamDivergenceOut, Scalar)
	if a.err != nil {
		return
	}
	scale := 0.5 / dt
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			du := vel[cellIndex(x+1, y, w, h)*2] - vel[cellIndex(x-1, y, w, h)*2]
			dv := vel[cellIndex(x, y+1, w, h)*2+1] - vel[cellIndex(x, y-1, w, h)*2+1]
			out[y*w+x] = (du + dv) * scale
		}
	}
}

func (d *cpuDevice) jacobi(a *kernelArgs) {
	w, h := a.grid()
	p := a.surface(ParamPressure, Scalar)
	div := a.surface(ParamDivergence, Scalar)
	out := a.surface(ParamPressureOut, Scalar)
	if a.err != nil {
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := p[cellIndex(x-1, y, w, h)] + p[cellIndex(x+1, y, w, h)] +
				p[cellIndex(x, y-1, w, h)] + p[cellIndex(x, y+1, w, h)]
			i := y*w + x
			out[i] = (sum - div[i]) * 0.25
		}
	}
}

func (d *cpuDevice) project(a *kernelArgs) {
	w, h := a.grid()
	dt := a.float(ParamTimestep)
	vel := a.surface(ParamVelocity, Vec2)
	p := a.surface(ParamPressure, Scalar)
	out := a.surface(ParamVelocityOut, Vec2)
	if a.err != nil {
		return
	}
	scale := 0.5 * dt
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := p[cellIndex(x+1, y, w, h)] - p[cellIndex(x-1, y, w, h)]
			gy := p[cellIndex(x, y+1, w, h)] - p[cellIndex(x, y-1, w, h)]
			i := (y*w + x) * 2
			out[i] = vel[i] - scale*gx
			out[i+1] = vel[i+1] - scale*gy
		}
	}
}
