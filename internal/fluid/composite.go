package fluid

// Composite converts a colour field (three floats per cell) into RGBA8
// pixels in dst, clamping each channel to [0, 1]. dst must hold four bytes
// per cell.
func Composite(colour []float32, dst []byte) {
	n := min(len(colour)/3, len(dst)/4)
	for i := 0; i < n; i++ {
		c := colour[i*3 : i*3+3]
		p := dst[i*4 : i*4+4]
		p[0] = toByte(c[0])
		p[1] = toByte(c[1])
		p[2] = toByte(c[2])
		p[3] = 0xff
	}
}

func toByte(v float32) byte {
	return byte(clamp01(v)*255 + 0.5)
}
