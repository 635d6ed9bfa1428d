package main

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/orglofch/gpu-fluid/internal/fluid"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Application constants that are not part of the simulation config.
const (
	windowTitle   = "GPU Fluid"
	stepsCapDelta = 1
	minStepsCap   = 1
	maxStepsCap   = 32
)

// settings is the optional JSON settings file. Missing keys keep the value
// they had before decoding.
type settings struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Iterations       int     `json:"iterations"`
	Timestep         float32 `json:"timestep"`
	ImpulseRadius    float32 `json:"impulse_radius"`
	ImpulseDivisor   float32 `json:"impulse_divisor"`
	IndicatorSpacing int     `json:"indicator_spacing"`
	StepRate         float64 `json:"step_rate"`
	MaxStepsPerFrame int     `json:"max_steps_per_frame"`

	Device   string `json:"device"`
	VSync    bool   `json:"vsync"`
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level"`
}

func defaultSettings() settings {
	c := fluid.DefaultConfig()
	return settings{
		Width:            c.Width,
		Height:           c.Height,
		Iterations:       c.Iterations,
		Timestep:         c.Timestep,
		ImpulseRadius:    c.ImpulseRadius,
		ImpulseDivisor:   c.ImpulseDivisor,
		IndicatorSpacing: c.IndicatorSpacing,
		StepRate:         c.StepRate,
		MaxStepsPerFrame: c.MaxStepsPerFrame,
		Device:           "auto",
		VSync:            true,
		LogLevel:         "info",
	}
}

// loadSettings decodes path over the defaults. An empty path returns the
// defaults unchanged.
func loadSettings(path string) (settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading settings: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("decoding settings %s: %w", path, err)
	}
	return s, nil
}

func (s settings) fluidConfig() fluid.Config {
	return fluid.Config{
		Width:            s.Width,
		Height:           s.Height,
		Iterations:       s.Iterations,
		Timestep:         s.Timestep,
		ImpulseRadius:    s.ImpulseRadius,
		ImpulseDivisor:   s.ImpulseDivisor,
		IndicatorSpacing: s.IndicatorSpacing,
		StepRate:         s.StepRate,
		MaxStepsPerFrame: s.MaxStepsPerFrame,
	}
}
