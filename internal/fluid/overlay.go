package fluid

import "math"

// Point is a pixel position on the canvas.
type Point struct{ X, Y int }

// Lattice returns indicator positions every spacing pixels, centred in each
// spacing x spacing tile. Spacing below one is treated as one.
func Lattice(width, height, spacing int) []Point {
	spacing = max(spacing, 1)
	off := spacing / 2
	nx := (width - off + spacing - 1) / spacing
	ny := (height - off + spacing - 1) / spacing
	if nx <= 0 || ny <= 0 {
		return nil
	}
	pts := make([]Point, 0, nx*ny)
	for y := off; y < height; y += spacing {
		for x := off; x < width; x += spacing {
			pts = append(pts, Point{x, y})
		}
	}
	return pts
}

// Glyph is a triangle pointing from its base towards Tip.
type Glyph struct {
	Tip, Left, Right [2]float32
}

// GlyphKind selects the field a glyph shows.
type GlyphKind int

const (
	VelocityGlyph GlyphKind = iota
	PressureGlyph
)

// Colour is the RGB colour glyphs of this kind are drawn in.
func (k GlyphKind) Colour() [3]float32 {
	if k == PressureGlyph {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{1, 0, 0}
}

// glyphAt builds a glyph of the given length centred on at and pointing
// along dir. Zero vectors have no direction and produce no glyph.
func glyphAt(at Point, dir [2]float32, length float32) (Glyph, bool) {
	n := float32(math.Hypot(float64(dir[0]), float64(dir[1])))
	if n == 0 || math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
		return Glyph{}, false
	}
	ux, uy := dir[0]/n, dir[1]/n
	cx, cy := float32(at.X)+0.5, float32(at.Y)+0.5
	half := length / 2
	side := length / 4
	bx, by := cx-ux*half, cy-uy*half
	return Glyph{
		Tip:   [2]float32{cx + ux*half, cy + uy*half},
		Left:  [2]float32{bx - uy*side, by + ux*side},
		Right: [2]float32{bx + uy*side, by - ux*side},
	}, true
}

// glyphLength scales glyphs with the lattice so neighbours do not overlap.
func glyphLength(spacing int) float32 { return float32(max(spacing, 1)) * 0.8 }

// VelocityGlyphs orients a glyph along the sampled velocity at each point.
// vel holds two floats per cell of a width x height grid.
func VelocityGlyphs(vel []float32, width, height int, pts []Point, spacing int) []Glyph {
	out := make([]Glyph, 0, len(pts))
	l := glyphLength(spacing)
	for _, p := range pts {
		i := cellIndex(p.X, p.Y, width, height) * 2
		if g, ok := glyphAt(p, [2]float32{vel[i], vel[i+1]}, l); ok {
			out = append(out, g)
		}
	}
	return out
}

// PressureGlyphs orients a glyph along the central pressure gradient at each
// point.
func PressureGlyphs(pressure []float32, width, height int, pts []Point, spacing int) []Glyph {
	out := make([]Glyph, 0, len(pts))
	l := glyphLength(spacing)
	for _, p := range pts {
		gx := pressure[cellIndex(p.X+1, p.Y, width, height)] - pressure[cellIndex(p.X-1, p.Y, width, height)]
		gy := pressure[cellIndex(p.X, p.Y+1, width, height)] - pressure[cellIndex(p.X, p.Y-1, width, height)]
		if g, ok := glyphAt(p, [2]float32{gx / 2, gy / 2}, l); ok {
			out = append(out, g)
		}
	}
	return out
}
