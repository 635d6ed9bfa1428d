package fluid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Equal(t, 0, wrap(0, 5))
	assert.Equal(t, 4, wrap(-1, 5))
	assert.Equal(t, 0, wrap(5, 5))
	assert.Equal(t, 3, wrap(-7, 5))
}

func TestSampleBilinear(t *testing.T) {
	// 2x2 scalar field
	data := []float32{0, 1, 2, 3}
	out := make([]float32, 1)

	sampleBilinear(data, 1, 2, 2, 0, 0, out)
	assert.InDelta(t, 0, out[0], 1e-6)

	sampleBilinear(data, 1, 2, 2, 0.5, 0.5, out)
	assert.InDelta(t, 1.5, out[0], 1e-6)

	// wraps from the last column back to the first
	sampleBilinear(data, 1, 2, 2, 1.5, 0, out)
	assert.InDelta(t, 0.5, out[0], 1e-6)

	sampleBilinear(data, 1, 2, 2, -0.5, 0, out)
	assert.InDelta(t, 0.5, out[0], 1e-6)
}

func TestFalloff(t *testing.T) {
	assert.Equal(t, float32(1), falloff(0, 10))
	assert.InDelta(t, 0.5, falloff(5, 10), 1e-6)
	assert.Equal(t, float32(0), falloff(10, 10))
	assert.Equal(t, float32(0), falloff(20, 10))
	assert.Equal(t, float32(0), falloff(0, 0))
	assert.Equal(t, float32(0), falloff(0, -3))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, float32(0), clamp01(-1))
	assert.Equal(t, float32(0.25), clamp01(0.25))
	assert.Equal(t, float32(1), clamp01(7))
	assert.Equal(t, float32(0), clamp01(float32(math.NaN())))
}
