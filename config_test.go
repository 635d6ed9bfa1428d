package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/orglofch/gpu-fluid/internal/fluid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := loadSettings("")
	require.NoError(t, err)
	assert.Equal(t, fluid.DefaultConfig(), s.fluidConfig())
	assert.Equal(t, "auto", s.Device)
	assert.True(t, s.VSync)
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width": 320, "iterations": 50, "device": "cpu", "vsync": false}`), 0o644))

	s, err := loadSettings(path)
	require.NoError(t, err)
	cfg := s.fluidConfig()
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, fluid.DefaultHeight, cfg.Height, "missing keys keep their defaults")
	assert.Equal(t, 50, cfg.Iterations)
	assert.Equal(t, "cpu", s.Device)
	assert.False(t, s.VSync)
	assert.NoError(t, cfg.Validate())
}

func TestLoadSettingsErrors(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width": "wide"}`), 0o644))
	_, err = loadSettings(path)
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	require.NoError(t, flag.CommandLine.Set("width", "64"))
	require.NoError(t, flag.CommandLine.Set("impulse-radius", "0"))
	require.NoError(t, flag.CommandLine.Set("device", "cpu"))

	s := defaultSettings()
	applyFlags(flag.CommandLine, &s)
	assert.Equal(t, 64, s.Width)
	assert.Equal(t, float32(0), s.ImpulseRadius)
	assert.Equal(t, "cpu", s.Device)
	assert.Equal(t, fluid.DefaultHeight, s.Height, "unset flags leave settings alone")
}
