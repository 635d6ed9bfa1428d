package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/orglofch/gpu-fluid/internal/fluid"
	"github.com/orglofch/gpu-fluid/internal/logger"
	"github.com/orglofch/gpu-fluid/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	s, err := loadSettings(*configFlag)
	if err != nil {
		return err
	}
	applyFlags(flag.CommandLine, &s)

	log, err := logger.New(logger.Config{Level: s.LogLevel, Development: s.Debug})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg := s.fluidConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec, err := setupMetrics(ctx, *metricsAddrFlag, log)
	if err != nil {
		return err
	}

	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag, *cpuProfileDurationFlag)
		if err != nil {
			return fmt.Errorf("starting CPU profile: %w", err)
		}
		defer stop()
		log.Info("recording CPU profile",
			zap.String("path", *cpuProfileFlag),
			zap.Duration("duration", *cpuProfileDurationFlag))
	}

	dev, err := openDevice(s.Device, cfg.Width, cfg.Height, log)
	if err != nil {
		return fmt.Errorf("opening device: %w", err)
	}
	defer dev.Close()
	log.Info("compute device ready", zap.String("device", dev.Name()))

	sim, err := fluid.New(cfg, dev, fluid.WithLogger(log.Named("fluid")), fluid.WithMetrics(rec))
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	defer sim.Destroy()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetVsyncEnabled(s.VSync)
	if err := ebiten.RunGame(newGame(sim, s, log, rec)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// setupMetrics returns a Prometheus recorder served on addr, or the no-op
// recorder when addr is empty.
func setupMetrics(ctx context.Context, addr string, log *zap.Logger) (metrics.Recorder, error) {
	if addr == "" {
		return metrics.Nop, nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rec, err := metrics.NewPrometheus(reg)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}
	metrics.Serve(ctx, addr, reg, log)
	return rec, nil
}
