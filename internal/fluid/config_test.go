package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }},
		{"zero timestep", func(c *Config) { c.Timestep = 0 }},
		{"zero divisor", func(c *Config) { c.ImpulseDivisor = 0 }},
		{"negative step rate", func(c *Config) { c.StepRate = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigAllowsDisabledImpulse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ImpulseRadius = 0
	assert.NoError(t, cfg.Validate())
}
