// Package timing supplies the simulation's notion of time.
package timing

import (
	"sync"
	"time"
)

// Clock reports the current instant used for cooldowns and lifetimes.
type Clock interface {
	Now() time.Time
}

// Origin is where a SimClock starts. It is deliberately not the zero Time,
// which components use to mean "never".
var Origin = time.Unix(0, 0).UTC()

// SimClock advances only when the update loop says so, so paused time does
// not count toward cooldowns or projectile lifetimes.
type SimClock struct {
	now time.Time
}

func NewSimClock() *SimClock {
	return &SimClock{now: Origin}
}

func (c *SimClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by dt seconds. Negative dt is ignored.
func (c *SimClock) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	c.now = c.now.Add(Seconds(dt))
}

// Elapsed returns the simulated time since Origin.
func (c *SimClock) Elapsed() time.Duration {
	return c.now.Sub(Origin)
}

// ManualClock is a settable Clock for tests and tools.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Seconds converts a float number of seconds to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
