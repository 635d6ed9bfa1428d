package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/orglofch/gpu-fluid/internal/fluid"
	"go.uber.org/zap"
)

// Draw composites the dye field, the enabled indicator overlays and the
// optional debug text.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Clear()
	if err := g.sim.ReadColour(g.colour); err != nil {
		g.log.Error("reading colour field", zap.Error(err))
		return
	}
	fluid.Composite(g.colour, g.pixels)
	screen.WritePixels(g.pixels)

	g.drawOverlay(screen)

	if g.debug {
		tps := ebiten.ActualTPS()
		if tps < 0 {
			tps = 0
		}
		cfg := g.sim.Config()
		debugMsg := fmt.Sprintf("FPS: %.1f (%.1f TPS)\nDevice: %s\nSteps: %d this frame (cap %d, +/-)\nStep: %.2f ms\nIterations: %d\nSpacing: %d",
			ebiten.ActualFPS(), tps, g.sim.Device().Name(), g.lastSteps, g.clock.MaxSteps,
			g.lastSimDuration.Seconds()*1000, cfg.Iterations, g.sim.Overlay().Spacing)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout reports the logical screen size used by Ebiten. One pixel is one
// grid cell.
func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }

func (g *Game) drawOverlay(screen *ebiten.Image) {
	ov := g.sim.Overlay()
	if !ov.Velocity && !ov.Pressure {
		return
	}
	pts := fluid.Lattice(g.width, g.height, ov.Spacing)
	if ov.Velocity {
		if err := g.sim.ReadVelocity(g.velocity); err != nil {
			g.log.Error("reading velocity field", zap.Error(err))
		} else {
			gs := fluid.VelocityGlyphs(g.velocity, g.width, g.height, pts, ov.Spacing)
			g.glyphs.draw(screen, gs, fluid.VelocityGlyph.Colour())
		}
	}
	if ov.Pressure {
		if err := g.sim.ReadPressure(g.pressure); err != nil {
			g.log.Error("reading pressure field", zap.Error(err))
		} else {
			gs := fluid.PressureGlyphs(g.pressure, g.width, g.height, pts, ov.Spacing)
			g.glyphs.draw(screen, gs, fluid.PressureGlyph.Colour())
		}
	}
}

// maxGlyphsPerBatch keeps vertex indices within uint16.
const maxGlyphsPerBatch = math.MaxUint16 / 3

// glyphBatch turns overlay glyphs into solid-colour triangles.
type glyphBatch struct {
	src      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newGlyphBatch() *glyphBatch { return &glyphBatch{} }

func (b *glyphBatch) source() *ebiten.Image {
	if b.src == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		b.src = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return b.src
}

func (b *glyphBatch) draw(dst *ebiten.Image, glyphs []fluid.Glyph, rgb [3]float32) {
	for start := 0; start < len(glyphs); start += maxGlyphsPerBatch {
		end := min(start+maxGlyphsPerBatch, len(glyphs))
		b.vertices, b.indices = appendGlyphTriangles(b.vertices[:0], b.indices[:0], glyphs[start:end], rgb)
		dst.DrawTriangles(b.vertices, b.indices, b.source(), nil)
	}
}

// appendGlyphTriangles appends one triangle per glyph. glyphs must not
// exceed maxGlyphsPerBatch.
func appendGlyphTriangles(vs []ebiten.Vertex, is []uint16, glyphs []fluid.Glyph, rgb [3]float32) ([]ebiten.Vertex, []uint16) {
	for _, gl := range glyphs {
		base := uint16(len(vs))
		for _, p := range [3][2]float32{gl.Tip, gl.Left, gl.Right} {
			vs = append(vs, ebiten.Vertex{
				DstX:   p[0],
				DstY:   p[1],
				SrcX:   1,
				SrcY:   1,
				ColorR: rgb[0],
				ColorG: rgb[1],
				ColorB: rgb[2],
				ColorA: 1,
			})
		}
		is = append(is, base, base+1, base+2)
	}
	return vs, is
}
