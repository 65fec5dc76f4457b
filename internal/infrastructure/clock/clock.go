// Package clock provides the frame clocks used by the headless driver.
package clock

import (
	"time"

	"github.com/younwookim/simian/internal/platform"
)

// Real paces frames against the wall clock.
type Real struct {
	now   func() time.Time
	sleep func(time.Duration)
	last  time.Time
}

var _ platform.Clock = (*Real)(nil)

// RealOption configures a Real clock
type RealOption func(*Real)

// WithNow overrides the time source
func WithNow(now func() time.Time) RealOption {
	return func(c *Real) {
		c.now = now
	}
}

// WithSleep overrides how the clock waits
func WithSleep(sleep func(time.Duration)) RealOption {
	return func(c *Real) {
		c.sleep = sleep
	}
}

// NewReal creates a wall clock
func NewReal(opts ...RealOption) *Real {
	c := &Real{
		now:   time.Now,
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tick implements platform.Clock. targetFPS <= 0 disables pacing.
func (c *Real) Tick(targetFPS int) time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	if targetFPS > 0 {
		budget := time.Second / time.Duration(targetFPS)
		if spent := now.Sub(c.last); spent < budget {
			c.sleep(budget - spent)
			now = c.now()
		}
	}

	elapsed := now.Sub(c.last)
	c.last = now
	return elapsed
}

// Fixed returns the same step on every tick without waiting.
type Fixed struct {
	Step  time.Duration
	ticks int
}

var _ platform.Clock = (*Fixed)(nil)

// NewFixed creates a clock that advances by step per tick
func NewFixed(step time.Duration) *Fixed {
	return &Fixed{Step: step}
}

// NewFixedFPS creates a clock that advances by 1/fps per tick.
// A non-positive fps falls back to platform.DefaultFPS.
func NewFixedFPS(fps int) *Fixed {
	if fps <= 0 {
		fps = platform.DefaultFPS
	}
	return NewFixed(time.Second / time.Duration(fps))
}

// Tick implements platform.Clock
func (c *Fixed) Tick(_ int) time.Duration {
	c.ticks++
	return c.Step
}

// Ticks returns how many times Tick was called
func (c *Fixed) Ticks() int {
	return c.ticks
}
