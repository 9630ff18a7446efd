package player

import (
	"context"
	"time"
)

// Monitor is the background watcher that reconciles observed process
// liveness into the session state, decoupled from user-issued commands.
// Unexpected exits are delivered event-style by the controller's reaper;
// the monitor's poll tick drives the startup-confirmation transition and
// keeps status fresh at a bounded interval.
//
// The monitor never restarts playback: recovery from Failed is always an
// explicit user action.
type Monitor struct {
	ctrl     *Controller
	interval time.Duration
	done     chan struct{}
}

// NewMonitor creates a monitor for the controller. If interval is zero the
// controller's configured poll interval is used.
func NewMonitor(c *Controller, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = c.opts.PollInterval
	}
	return &Monitor{
		ctrl:     c,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start polls until the context is canceled or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return nil
		case now := <-ticker.C:
			m.ctrl.checkHealth(now)
		}
	}
}

// Stop stops the monitor. It does not touch the player process.
func (m *Monitor) Stop() {
	close(m.done)
}
