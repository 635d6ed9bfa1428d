package fluid

import (
	"errors"
	"fmt"
)

// Defaults for a simulation. The grid is one cell per window pixel.
const (
	DefaultWidth            = 1080
	DefaultHeight           = 720
	DefaultIterations       = 200
	DefaultTimestep         = 1.0 / 60.0
	DefaultImpulseRadius    = 40
	DefaultImpulseDivisor   = 10
	DefaultIndicatorSpacing = 10
	DefaultStepRate         = 60
	DefaultMaxStepsPerFrame = 4
)

var (
	// ErrInvalidConfig is returned when a Config cannot describe a grid.
	ErrInvalidConfig = errors.New("invalid simulation config")
)

// Config describes a simulation. It is fixed for the lifetime of the
// Simulation built from it.
type Config struct {
	Width, Height int

	// Iterations is the number of Jacobi relaxation passes per pressure
	// solve. Quality of the projection depends on it; there is no
	// convergence test.
	Iterations int

	// Timestep is the logical duration of one simulation step in seconds.
	// Every stage uses the same value.
	Timestep float32

	ImpulseRadius  float32
	ImpulseDivisor float32

	IndicatorSpacing int

	StepRate         float64
	MaxStepsPerFrame int
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		Iterations:       DefaultIterations,
		Timestep:         DefaultTimestep,
		ImpulseRadius:    DefaultImpulseRadius,
		ImpulseDivisor:   DefaultImpulseDivisor,
		IndicatorSpacing: DefaultIndicatorSpacing,
		StepRate:         DefaultStepRate,
		MaxStepsPerFrame: DefaultMaxStepsPerFrame,
	}
}

// Validate reports the first field that would make per-cell indexing or the
// solver undefined.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height %d", ErrInvalidConfig, c.Height)
	case c.Iterations <= 0:
		return fmt.Errorf("%w: iterations %d", ErrInvalidConfig, c.Iterations)
	case !(c.Timestep > 0):
		return fmt.Errorf("%w: timestep %v", ErrInvalidConfig, c.Timestep)
	case !(c.ImpulseDivisor > 0):
		return fmt.Errorf("%w: impulse divisor %v", ErrInvalidConfig, c.ImpulseDivisor)
	case c.StepRate < 0:
		return fmt.Errorf("%w: step rate %v", ErrInvalidConfig, c.StepRate)
	}
	return nil
}

// cells returns the number of grid cells.
func (c Config) cells() int { return c.Width * c.Height }
