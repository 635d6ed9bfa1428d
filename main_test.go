package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/orglofch/gpu-fluid/internal/fluid"
	"github.com/orglofch/gpu-fluid/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenDevice(t *testing.T) {
	dev, err := openDevice("cpu", 8, 8, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "cpu", dev.Name())
	dev.Close()

	_, err = openDevice("vulkan", 8, 8, zap.NewNop())
	assert.ErrorContains(t, err, "unknown device")

	dev, err = openDevice("auto", 8, 8, zap.NewNop())
	require.NoError(t, err, "auto always finds a device")
	dev.Close()
}

func TestSetupMetricsDisabled(t *testing.T) {
	rec, err := setupMetrics(context.Background(), "", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, metrics.Nop, rec)
}

func TestCommandsFor(t *testing.T) {
	pressed := map[ebiten.Key]bool{ebiten.KeyV: true, ebiten.KeyC: true}
	cmds := commandsFor(func(k ebiten.Key) bool { return pressed[k] })
	assert.Equal(t, []fluid.Command{fluid.CommandToggleVelocity, fluid.CommandDecreaseSpacing}, cmds)

	assert.Empty(t, commandsFor(func(ebiten.Key) bool { return false }))
}

func TestAdjustStepsCap(t *testing.T) {
	g := &Game{clock: fluid.NewClock(60, 4)}
	g.adjustStepsCap(-10)
	assert.Equal(t, minStepsCap, g.clock.MaxSteps)
	g.adjustStepsCap(100)
	assert.Equal(t, maxStepsCap, g.clock.MaxSteps)
}

func TestAppendGlyphTriangles(t *testing.T) {
	glyphs := []fluid.Glyph{
		{Tip: [2]float32{1, 2}, Left: [2]float32{3, 4}, Right: [2]float32{5, 6}},
		{Tip: [2]float32{7, 8}, Left: [2]float32{9, 10}, Right: [2]float32{11, 12}},
	}
	vs, is := appendGlyphTriangles(nil, nil, glyphs, [3]float32{0, 0, 1})
	require.Len(t, vs, 6)
	assert.Equal(t, []uint16{0, 1, 2, 3, 4, 5}, is)
	assert.Equal(t, float32(7), vs[3].DstX)
	assert.Equal(t, float32(12), vs[5].DstY)
	for _, v := range vs {
		assert.Equal(t, float32(1), v.ColorB)
		assert.Equal(t, float32(0), v.ColorR)
		assert.Equal(t, float32(1), v.ColorA)
	}
}

func TestStartCPUProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.pprof")
	stop, err := startCPUProfile(path, time.Hour)
	require.NoError(t, err)
	stop()
	stop()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
