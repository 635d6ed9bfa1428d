package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Recorder receives timing and solver counters from the simulation.
type Recorder interface {
	ObserveStep(d time.Duration)
	ObserveStage(stage string, d time.Duration)
	SetIterations(n int)
	AddDroppedSteps(n int)
}

// Nop discards everything.
var Nop Recorder = nop{}

type nop struct{}

func (nop) ObserveStep(time.Duration)          {}
func (nop) ObserveStage(string, time.Duration) {}
func (nop) SetIterations(int)                  {}
func (nop) AddDroppedSteps(int)                {}

// Prometheus is a Recorder backed by Prometheus collectors.
type Prometheus struct {
	stepDuration  prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	steps         prometheus.Counter
	iterations    prometheus.Gauge
	dropped       prometheus.Counter
}

// stepBuckets cover sub-millisecond GPU steps up to multi-frame CPU steps.
var stepBuckets = prometheus.ExponentialBuckets(0.0001, 2, 14)

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fluid_step_duration_seconds",
			Help:    "Time spent submitting and executing one simulation step",
			Buckets: stepBuckets,
		}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fluid_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage",
			Buckets: stepBuckets,
		}, []string{"stage"}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fluid_steps_total",
			Help: "Number of completed simulation steps",
		}),
		iterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fluid_pressure_iterations",
			Help: "Jacobi iterations per pressure solve",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fluid_dropped_steps_total",
			Help: "Logical steps skipped because the frame fell too far behind",
		}),
	}
	for _, c := range []prometheus.Collector{p.stepDuration, p.stageDuration, p.steps, p.iterations, p.dropped} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) ObserveStep(d time.Duration) {
	p.stepDuration.Observe(d.Seconds())
	p.steps.Inc()
}

func (p *Prometheus) ObserveStage(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *Prometheus) SetIterations(n int) { p.iterations.Set(float64(n)) }

func (p *Prometheus) AddDroppedSteps(n int) {
	if n > 0 {
		p.dropped.Add(float64(n))
	}
}

// Serve exposes the collectors of gatherer on addr until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
}
