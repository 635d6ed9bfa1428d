package main

import (
	"flag"
	"time"
)

// Command-line flags. Flags given explicitly override the settings file,
// which overrides the built-in defaults.
var (
	// configFlag names an optional JSON settings file.
	configFlag = flag.String("config", "", "path to a JSON settings file")

	widthFlag      = flag.Int("width", 0, "grid and window width in pixels")
	heightFlag     = flag.Int("height", 0, "grid and window height in pixels")
	iterationsFlag = flag.Int("iterations", 0, "Jacobi iterations per pressure solve")
	timestepFlag   = flag.Float64("timestep", 0, "logical seconds per simulation step")

	// impulseRadiusFlag sets the pointer impulse radius; 0 disables impulses.
	impulseRadiusFlag = flag.Float64("impulse-radius", 0, "pointer impulse radius in pixels")

	spacingFlag = flag.Int("spacing", 0, "indicator glyph spacing in pixels")

	vsyncFlag = flag.Bool("vsync", true, "synchronise presentation with the display")

	// debugFlag enables the FPS and step overlay plus the steps-cap hotkeys.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation overlay")

	logLevelFlag = flag.String("log-level", "", "log level (debug, info, warn, error)")

	// metricsAddrFlag serves Prometheus metrics when set, e.g. ":9090".
	metricsAddrFlag = flag.String("metrics-addr", "", "address for the /metrics endpoint")

	cpuProfileFlag         = flag.String("cpuprofile", "", "write a CPU profile to this file")
	cpuProfileDurationFlag = flag.Duration("cpuprofile-duration", 15*time.Second, "stop CPU profiling after this long (0 runs until exit)")

	deviceFlag = flag.String("device", "", "compute device: auto, cpu or opencl")
)

// applyFlags overlays every flag the user set explicitly onto s.
func applyFlags(fs *flag.FlagSet, s *settings) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			s.Width = *widthFlag
		case "height":
			s.Height = *heightFlag
		case "iterations":
			s.Iterations = *iterationsFlag
		case "timestep":
			s.Timestep = float32(*timestepFlag)
		case "impulse-radius":
			s.ImpulseRadius = float32(*impulseRadiusFlag)
		case "spacing":
			s.IndicatorSpacing = *spacingFlag
		case "vsync":
			s.VSync = *vsyncFlag
		case "debug":
			s.Debug = *debugFlag
		case "log-level":
			s.LogLevel = *logLevelFlag
		case "device":
			s.Device = *deviceFlag
		}
	})
}
