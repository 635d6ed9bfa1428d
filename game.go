package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/orglofch/gpu-fluid/internal/fluid"
	"github.com/orglofch/gpu-fluid/internal/metrics"
	"go.uber.org/zap"
)

// Game adapts a fluid.Simulation to ebiten's update/draw loop.
type Game struct {
	sim   *fluid.Simulation
	clock *fluid.Clock
	log   *zap.Logger
	rec   metrics.Recorder
	debug bool

	width, height int

	lastUpdate      time.Time
	lastSimDuration time.Duration
	lastSteps       int

	// host copies of device fields, reused every frame
	colour   []float32
	velocity []float32
	pressure []float32
	pixels   []byte

	glyphs *glyphBatch
}

// newGame wires sim into a Game. The simulation stays owned by the caller.
func newGame(sim *fluid.Simulation, s settings, log *zap.Logger, rec metrics.Recorder) *Game {
	cfg := sim.Config()
	cells := cfg.Width * cfg.Height
	return &Game{
		sim:      sim,
		clock:    fluid.NewClock(cfg.StepRate, cfg.MaxStepsPerFrame),
		log:      log,
		rec:      rec,
		debug:    s.Debug,
		width:    cfg.Width,
		height:   cfg.Height,
		colour:   make([]float32, cells*3),
		velocity: make([]float32, cells*2),
		pressure: make([]float32, cells),
		pixels:   make([]byte, cells*4),
		glyphs:   newGlyphBatch(),
	}
}

// Update applies input, then runs as many fixed steps as the clock allows.
func (g *Game) Update() error {
	if g.handleInput() {
		return ebiten.Termination
	}
	g.handleDebugControls()

	now := time.Now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
	}
	steps, dropped := g.clock.Advance(now.Sub(g.lastUpdate))
	g.lastUpdate = now
	if dropped > 0 {
		g.rec.AddDroppedSteps(dropped)
		g.log.Debug("dropped simulation steps", zap.Int("dropped", dropped))
	}

	simStart := time.Now()
	for i := 0; i < steps; i++ {
		if err := g.sim.Step(); err != nil {
			return err
		}
	}
	if steps > 0 {
		g.lastSimDuration = time.Since(simStart)
	}
	g.lastSteps = steps
	return nil
}

// adjustStepsCap changes the per-frame catch-up limit within bounds.
func (g *Game) adjustStepsCap(delta int) {
	g.clock.MaxSteps = min(max(g.clock.MaxSteps+delta, minStepsCap), maxStepsCap)
}
