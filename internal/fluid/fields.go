package fluid

import (
	"fmt"

	"go.uber.org/zap"
)

// fieldStore owns every surface of the simulation. Surfaces are allocated
// once and released in reverse order of acquisition.
type fieldStore struct {
	dev Device

	velocity   FlipBuffer[Surface]
	colour     FlipBuffer[Surface]
	divergence Surface
	pressure   FlipBuffer[Surface]

	acquired []Surface
}

func newFieldStore(dev Device, cfg Config, log *zap.Logger) (*fieldStore, error) {
	f := &fieldStore{dev: dev}
	pair := func(format Format) (FlipBuffer[Surface], error) {
		a, err := f.alloc(format)
		if err != nil {
			return FlipBuffer[Surface]{}, err
		}
		b, err := f.alloc(format)
		if err != nil {
			return FlipBuffer[Surface]{}, err
		}
		return NewFlipBuffer(a, b), nil
	}

	var err error
	if f.velocity, err = pair(Vec2); err != nil {
		f.release()
		return nil, fmt.Errorf("allocating velocity field: %w", err)
	}
	if f.colour, err = pair(RGB); err != nil {
		f.release()
		return nil, fmt.Errorf("allocating colour field: %w", err)
	}
	if f.divergence, err = f.alloc(Scalar); err != nil {
		f.release()
		return nil, fmt.Errorf("allocating divergence field: %w", err)
	}
	if f.pressure, err = pair(Scalar); err != nil {
		f.release()
		return nil, fmt.Errorf("allocating pressure field: %w", err)
	}
	log.Debug("allocated fields",
		zap.Int("surfaces", len(f.acquired)),
		zap.Int("cells", cfg.cells()))

	if err := f.seed(cfg); err != nil {
		f.release()
		return nil, err
	}
	return f, nil
}

func (f *fieldStore) alloc(format Format) (Surface, error) {
	s, err := f.dev.NewSurface(format)
	if err != nil {
		return Surface{}, err
	}
	f.acquired = append(f.acquired, s)
	return s, nil
}

// seed writes the initial state: zero velocity, divergence and pressure and
// the checker colour pattern.
func (f *fieldStore) seed(cfg Config) error {
	n := cfg.cells()
	err := withScratch(n*int(RGB), func(buf []float32) error {
		seedColour(buf, cfg.Width, cfg.Height)
		a, b := f.colour.Both()
		if err := f.dev.Upload(a, buf); err != nil {
			return err
		}
		return f.dev.Upload(b, buf)
	})
	if err != nil {
		return fmt.Errorf("seeding colour field: %w", err)
	}
	for _, s := range []Surface{f.divergence} {
		if err := f.dev.Clear(s); err != nil {
			return fmt.Errorf("clearing %s: %w", s, err)
		}
	}
	for _, fb := range []*FlipBuffer[Surface]{&f.velocity, &f.pressure} {
		a, b := fb.Both()
		if err := f.dev.Clear(a); err != nil {
			return fmt.Errorf("clearing %s: %w", a, err)
		}
		if err := f.dev.Clear(b); err != nil {
			return fmt.Errorf("clearing %s: %w", b, err)
		}
	}
	return nil
}

func (f *fieldStore) release() {
	for i := len(f.acquired) - 1; i >= 0; i-- {
		f.dev.ReleaseSurface(f.acquired[i])
	}
	f.acquired = nil
}

// seedColour fills buf (3 floats per cell) with overlapping stripes so that
// motion is visible from the first frame.
func seedColour(buf []float32, width, height int) {
	bit := func(b bool) float32 {
		if b {
			return 1
		}
		return 0
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			buf[i+0] = bit((x+y)%100 < 50)
			buf[i+1] = bit(x%100 < 50)
			buf[i+2] = bit(y%100 < 50)
		}
	}
}
