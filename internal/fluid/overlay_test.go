package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLattice(t *testing.T) {
	pts := Lattice(30, 20, 10)
	require.Len(t, pts, 6)
	assert.Equal(t, Point{5, 5}, pts[0])
	assert.Equal(t, Point{25, 15}, pts[5])

	assert.Len(t, Lattice(3, 2, 1), 6)
	assert.Len(t, Lattice(3, 2, 0), 6, "spacing is clamped to one")
	assert.Empty(t, Lattice(0, 10, 10))
}

func TestGlyphPointsAlongDirection(t *testing.T) {
	g, ok := glyphAt(Point{10, 10}, [2]float32{2, 0}, 8)
	require.True(t, ok)
	assert.InDelta(t, 14.5, g.Tip[0], 1e-5)
	assert.InDelta(t, 10.5, g.Tip[1], 1e-5)
	// base is behind the centre and symmetric about the axis
	assert.InDelta(t, 6.5, g.Left[0], 1e-5)
	assert.InDelta(t, 6.5, g.Right[0], 1e-5)
	assert.InDelta(t, g.Left[1]-10.5, 10.5-g.Right[1], 1e-5)
	assert.NotEqual(t, g.Left[1], g.Right[1])

	_, ok = glyphAt(Point{1, 1}, [2]float32{0, 0}, 8)
	assert.False(t, ok)
}

func TestVelocityGlyphs(t *testing.T) {
	const w, h = 4, 4
	vel := make([]float32, w*h*2)
	vel[(1*w+1)*2+1] = -3 // upwards at (1,1)

	gs := VelocityGlyphs(vel, w, h, []Point{{1, 1}, {2, 2}}, 2)
	require.Len(t, gs, 1, "zero velocity gets no glyph")
	assert.Less(t, gs[0].Tip[1], gs[0].Left[1])
	assert.InDelta(t, 1.5, gs[0].Tip[0], 1e-5)
}

func TestPressureGlyphs(t *testing.T) {
	const w, h = 5, 5
	p := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p[y*w+x] = float32(x)
		}
	}
	gs := PressureGlyphs(p, w, h, []Point{{2, 2}}, 4)
	require.Len(t, gs, 1)
	assert.Greater(t, gs[0].Tip[0], gs[0].Left[0], "points up the gradient")
	assert.InDelta(t, 2.5, gs[0].Tip[1], 1e-5)
}

func TestGlyphKindColour(t *testing.T) {
	assert.Equal(t, [3]float32{1, 0, 0}, VelocityGlyph.Colour())
	assert.Equal(t, [3]float32{0, 0, 1}, PressureGlyph.Colour())
}
