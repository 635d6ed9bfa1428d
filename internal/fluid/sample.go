package fluid

import "math"

// wrap maps i into [0, n) with repeat addressing.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// cellIndex returns the cell index of (x, y) with both axes wrapped.
func cellIndex(x, y, width, height int) int {
	return wrap(y, height)*width + wrap(x, width)
}

// sampleBilinear interpolates the ch-channel field data at the fractional
// cell position (x, y) into out, wrapping at every border.
func sampleBilinear(data []float32, ch, width, height int, x, y float32, out []float32) {
	fx0 := float32(math.Floor(float64(x)))
	fy0 := float32(math.Floor(float64(y)))
	tx, ty := x-fx0, y-fy0
	x0, y0 := int(fx0), int(fy0)

	i00 := cellIndex(x0, y0, width, height) * ch
	i10 := cellIndex(x0+1, y0, width, height) * ch
	i01 := cellIndex(x0, y0+1, width, height) * ch
	i11 := cellIndex(x0+1, y0+1, width, height) * ch
	for c := 0; c < ch; c++ {
		top := data[i00+c] + (data[i10+c]-data[i00+c])*tx
		bottom := data[i01+c] + (data[i11+c]-data[i01+c])*tx
		out[c] = top + (bottom-top)*ty
	}
}

// falloff weights the impulse at distance d from the pointer. It is zero at
// and beyond radius and zero everywhere when radius <= 0.
func falloff(d, radius float32) float32 {
	if radius <= 0 || d >= radius {
		return 0
	}
	return 1 - d/radius
}

// clamp01 clamps v to [0, 1]; NaN maps to 0.
func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
