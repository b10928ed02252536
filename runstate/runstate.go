// Package runstate holds the Running/Paused/Stopped/Exiting flag that decides
// whether the update loop ticks.
package runstate

import "go.uber.org/zap"

type State int

const (
	Stopped State = iota
	Running
	Paused
	Exiting
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Exiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Controller owns the run state. Exiting is terminal.
//
//	Stopped --run--> Running --pause--> Paused --pause--> Running
//	Running|Paused --stop--> Stopped --stop--> Running (restart)
//	any --exit--> Exiting
type Controller struct {
	state   State
	restart bool
	logger  *zap.Logger
}

func NewController(logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{state: Stopped, logger: logger}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Running() bool {
	return c.state == Running
}

// Run starts or resumes. Starting from Stopped arms a restart, collected by
// TakeRestart.
func (c *Controller) Run() {
	switch c.state {
	case Stopped:
		c.restart = true
		c.set(Running)
	case Paused:
		c.set(Running)
	}
}

func (c *Controller) Pause() {
	if c.state == Running {
		c.set(Paused)
	}
}

func (c *Controller) Stop() {
	if c.state == Running || c.state == Paused {
		c.set(Stopped)
	}
}

func (c *Controller) Exit() {
	c.set(Exiting)
}

// TogglePause flips Running and Paused; it has no effect while Stopped.
func (c *Controller) TogglePause() {
	switch c.state {
	case Running:
		c.Pause()
	case Paused:
		c.Run()
	}
}

// ToggleStop flips between Stopped and Running.
func (c *Controller) ToggleStop() {
	if c.state == Stopped {
		c.Run()
		return
	}
	c.Stop()
}

// TakeRestart reports whether a Stopped to Running transition happened since
// the last call.
func (c *Controller) TakeRestart() bool {
	r := c.restart
	c.restart = false
	return r
}

func (c *Controller) set(s State) {
	if c.state == Exiting || c.state == s {
		return
	}
	c.logger.Info("run state changed", zap.Stringer("from", c.state), zap.Stringer("to", s))
	c.state = s
}
