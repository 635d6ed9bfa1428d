package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheus(reg)
	require.NoError(t, err)

	rec.ObserveStep(2 * time.Millisecond)
	rec.ObserveStep(3 * time.Millisecond)
	rec.ObserveStage("pressure", time.Millisecond)
	rec.SetIterations(200)
	rec.AddDroppedSteps(3)
	rec.AddDroppedSteps(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.steps))
	assert.Equal(t, 200.0, testutil.ToFloat64(rec.iterations))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.dropped))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.stageDuration))
}

func TestPrometheusDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg)
	require.NoError(t, err)

	_, err = NewPrometheus(reg)
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop.ObserveStep(time.Second)
		Nop.ObserveStage("advection", time.Second)
		Nop.SetIterations(1)
		Nop.AddDroppedSteps(1)
	})
}
