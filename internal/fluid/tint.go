package fluid

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// impulseTint picks the dye colour for an impulse: fully saturated, with
// the hue following the direction of motion. A zero impulse gets white; it
// is never mixed in because its strength is zero.
func impulseTint(impulse [2]float32) [3]float32 {
	if impulse[0] == 0 && impulse[1] == 0 {
		return [3]float32{1, 1, 1}
	}
	hue := math.Atan2(float64(impulse[1]), float64(impulse[0])) * 180 / math.Pi
	if hue < 0 {
		hue += 360
	}
	c := colorful.Hsv(hue, 1, 1).Clamped()
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}
