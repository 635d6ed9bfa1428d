package fluid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock(100, 4) // 10ms per step

	steps, dropped := c.Advance(25 * time.Millisecond)
	assert.Equal(t, 2, steps)
	assert.Zero(t, dropped)

	// the 5ms remainder carries over
	steps, _ = c.Advance(5 * time.Millisecond)
	assert.Equal(t, 1, steps)

	steps, _ = c.Advance(3 * time.Millisecond)
	assert.Equal(t, 0, steps)
}

func TestClockCapsBacklog(t *testing.T) {
	c := NewClock(100, 4)

	steps, dropped := c.Advance(95 * time.Millisecond)
	assert.Equal(t, 4, steps)
	assert.Equal(t, 5, dropped)

	// dropped steps are not replayed
	steps, dropped = c.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, steps)
	assert.Zero(t, dropped)
}

func TestClockTickLocked(t *testing.T) {
	c := NewClock(0, 4)
	for _, d := range []time.Duration{0, time.Millisecond, time.Second} {
		steps, dropped := c.Advance(d)
		assert.Equal(t, 1, steps)
		assert.Zero(t, dropped)
	}
}

func TestClockReset(t *testing.T) {
	c := NewClock(100, 4)
	c.Advance(9 * time.Millisecond)
	c.Reset()
	steps, _ := c.Advance(5 * time.Millisecond)
	assert.Zero(t, steps)
}
