package fluid

import "time"

// Clock converts wall time into a count of fixed logical steps.
type Clock struct {
	// Step is the wall time one logical step represents. Zero means one
	// step per Advance call.
	Step time.Duration
	// MaxSteps caps the steps returned by one Advance. Backlog beyond it is
	// dropped rather than carried into later frames.
	MaxSteps int

	acc time.Duration
}

// NewClock returns a clock running rate steps per second. A rate of zero
// ties stepping to Advance calls.
func NewClock(rate float64, maxSteps int) *Clock {
	c := &Clock{MaxSteps: max(maxSteps, 1)}
	if rate > 0 {
		c.Step = time.Duration(float64(time.Second) / rate)
	}
	return c
}

// Advance adds elapsed wall time and returns how many steps to run now and
// how many were dropped to stay within MaxSteps.
func (c *Clock) Advance(elapsed time.Duration) (steps, dropped int) {
	if c.Step <= 0 {
		return 1, 0
	}
	if elapsed > 0 {
		c.acc += elapsed
	}
	n := int(c.acc / c.Step)
	c.acc -= time.Duration(n) * c.Step
	if n > c.MaxSteps {
		dropped = n - c.MaxSteps
		n = c.MaxSteps
	}
	return n, dropped
}

// Reset discards accumulated time.
func (c *Clock) Reset() { c.acc = 0 }
