package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposite(t *testing.T) {
	colour := []float32{
		0, 0.5, 1,
		-1, 2, 0.25,
	}
	dst := make([]byte, 8)
	Composite(colour, dst)
	assert.Equal(t, []byte{0, 128, 255, 255, 0, 255, 64, 255}, dst)
}

func TestImpulseTint(t *testing.T) {
	assert.Equal(t, [3]float32{1, 1, 1}, impulseTint([2]float32{}))

	red := impulseTint([2]float32{1, 0})
	assert.InDelta(t, 1, red[0], 1e-6)
	assert.InDelta(t, 0, red[1], 1e-6)
	assert.InDelta(t, 0, red[2], 1e-6)

	// straight down the screen is 90 degrees: yellow-green
	down := impulseTint([2]float32{0, 2})
	assert.InDelta(t, 0.5, down[0], 1e-6)
	assert.InDelta(t, 1, down[1], 1e-6)
	assert.InDelta(t, 0, down[2], 1e-6)
}

func TestWithScratchZeroes(t *testing.T) {
	err := withScratch(4, func(buf []float32) error {
		assert.Len(t, buf, 4)
		for i := range buf {
			buf[i] = 9
		}
		return nil
	})
	assert.NoError(t, err)

	err = withScratch(3, func(buf []float32) error {
		assert.Equal(t, []float32{0, 0, 0}, buf)
		return nil
	})
	assert.NoError(t, err)
}
