package fluid

import (
	"fmt"
	"time"

	"github.com/orglofch/gpu-fluid/internal/metrics"
	"go.uber.org/zap"
)

// Simulation owns the fields and compiled stages of one fluid grid. It is
// driven from a single goroutine: input calls and Step must not overlap.
type Simulation struct {
	cfg Config
	dev Device
	log *zap.Logger
	rec metrics.Recorder

	fields *fieldStore
	stages stageSet

	impulse ImpulseState
	overlay OverlayConfig
	steps   uint64
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Simulation) { s.log = log }
}

// WithMetrics sets the recorder for step and stage timings.
func WithMetrics(rec metrics.Recorder) Option {
	return func(s *Simulation) { s.rec = rec }
}

// New validates cfg, compiles the stage programs on dev and allocates and
// seeds every field. The caller keeps ownership of dev and must close it
// after Destroy.
func New(cfg Config, dev Device, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg: cfg,
		dev: dev,
		log: zap.NewNop(),
		rec: metrics.Nop,
		impulse: ImpulseState{
			Radius: cfg.ImpulseRadius,
		},
		overlay: OverlayConfig{Spacing: max(cfg.IndicatorSpacing, 1)},
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.stages, err = compileStages(dev); err != nil {
		return nil, err
	}
	if s.fields, err = newFieldStore(dev, cfg, s.log); err != nil {
		return nil, err
	}
	s.rec.SetIterations(cfg.Iterations)
	s.log.Info("simulation ready",
		zap.String("device", dev.Name()),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("iterations", cfg.Iterations),
		zap.Float32("timestep", cfg.Timestep))
	return s, nil
}

// Step advances the simulation by one logical timestep: advection,
// divergence, pressure solve and projection, in that order. The pending
// impulse is consumed.
func (s *Simulation) Step() error {
	start := time.Now()
	for _, st := range []struct {
		name string
		run  func() error
	}{
		{s.stages.advect.Name, s.advect},
		{s.stages.divergence.Name, s.computeDivergence},
		{s.stages.jacobi.Name, s.solvePressure},
		{s.stages.project.Name, s.project},
	} {
		stageStart := time.Now()
		if err := st.run(); err != nil {
			s.log.Error("step failed",
				zap.String("stage", st.name),
				zap.Uint64("step", s.steps),
				zap.Error(err))
			return fmt.Errorf("step %d: %w", s.steps, err)
		}
		s.rec.ObserveStage(st.name, time.Since(stageStart))
	}
	s.steps++
	s.rec.ObserveStep(time.Since(start))
	return nil
}

// Steps returns the number of completed steps.
func (s *Simulation) Steps() uint64 { return s.steps }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Device returns the device the simulation runs on.
func (s *Simulation) Device() Device { return s.dev }

// ReadColour downloads the current colour field, three floats per cell.
func (s *Simulation) ReadColour(dst []float32) error {
	return s.dev.Download(s.fields.colour.Front(), dst)
}

// ReadVelocity downloads the current velocity field, two floats per cell.
func (s *Simulation) ReadVelocity(dst []float32) error {
	return s.dev.Download(s.fields.velocity.Front(), dst)
}

// ReadPressure downloads the pressure from the last solve.
func (s *Simulation) ReadPressure(dst []float32) error {
	return s.dev.Download(s.fields.pressure.Front(), dst)
}

// ReadDivergence downloads the divergence computed by the last step.
func (s *Simulation) ReadDivergence(dst []float32) error {
	return s.dev.Download(s.fields.divergence, dst)
}

// Destroy releases every surface in reverse order of allocation. The
// Simulation must not be used afterwards.
func (s *Simulation) Destroy() {
	if s.fields == nil {
		return
	}
	s.fields.release()
	s.fields = nil
	s.log.Info("simulation destroyed", zap.Uint64("steps", s.steps))
}
