package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/tmaehler/airband/internal/core"
	apperrors "github.com/tmaehler/airband/internal/errors"
)

// Controller manages at most one external playback process. It is the sole
// owner of the process handle: nothing else signals the process or reads
// its exit status.
//
// All state transitions happen under a single mutex, shared with the health
// monitor, so a stop racing a detected crash resolves to whichever
// transition takes the lock first; the loser observes the new state and
// backs off.
//
// Play and Stop additionally serialize on cmdMu across their whole
// stop-then-spawn sequence. Callers may issue commands from concurrent
// goroutines (the TUI dispatches each key action on its own), and without
// that ordering two overlapping Plays could both pass the stop phase and
// leave a second process running unmanaged.
type Controller struct {
	opts Options

	cmdMu sync.Mutex // serializes Play/Stop end to end

	mu        sync.Mutex
	state     core.State
	station   *core.Station
	reason    string
	startedAt time.Time
	cmd       *exec.Cmd
	done      chan struct{} // closed when the current process is reaped
	gen       uint64        // ties reap events to the process they belong to

	verbose bool
	logf    func(format string, args ...interface{})
}

// New creates a controller. Zero-value option fields get defaults.
func New(opts Options) *Controller {
	return &Controller{
		opts:  opts.withDefaults(),
		state: core.StateIdle,
	}
}

// SetVerbose enables diagnostic logging through logf.
func (c *Controller) SetVerbose(verbose bool, logf func(format string, args ...interface{})) {
	c.verbose = verbose
	c.logf = logf
}

func (c *Controller) debugf(format string, args ...interface{}) {
	if c.verbose && c.logf != nil {
		c.logf(format, args...)
	}
}

// Play starts playback of station, replacing any current stream. A running
// process is stopped first, blocking until it terminated or the bounded
// stop wait elapsed. Play returns once the new process has been spawned;
// confirmation that audio is actually flowing is the monitor's job.
func (c *Controller) Play(ctx context.Context, station core.Station) error {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()

	if err := c.stopCurrent(ctx); err != nil && !errors.Is(err, apperrors.ErrStopTimeout) {
		return fmt.Errorf("failed to stop current playback: %w", err)
	}

	// The process outlives ctx (which only bounds the command), so it is
	// deliberately not tied to it via CommandContext.
	args := append(slices.Clone(c.opts.Args), station.URL)
	cmd := exec.Command(c.opts.Command, args...)
	// The player must not write to the terminal the UI owns.
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %q", apperrors.ErrPlayerNotFound, c.opts.Command)
		}
		return fmt.Errorf("failed to spawn player: %w", err)
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	st := station
	c.cmd = cmd
	c.station = &st
	c.state = core.StateStarting
	c.reason = ""
	c.startedAt = time.Now()
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	c.debugf("spawned %s (pid %d) for %s", c.opts.Command, cmd.Process.Pid, station.Name)

	go c.reap(gen, cmd, done)
	return nil
}

// reap waits for the process to exit and reconciles the exit into the state
// machine. A requested stop is finalized by Stop itself; anything else is an
// unexpected exit and becomes Failed with the captured reason.
func (c *Controller) reap(gen uint64, cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()
	close(done)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return // a newer process owns the session
	}

	switch c.state {
	case core.StateStarting:
		c.state = core.StateFailed
		c.reason = "exited during startup: " + exitReason(err)
		c.debugf("player failed during startup: %s", c.reason)
	case core.StatePlaying:
		c.state = core.StateFailed
		c.reason = exitReason(err)
		c.debugf("player exited unexpectedly: %s", c.reason)
	}
}

// Stop terminates the current process, if any. Stopping when idle is a
// no-op; stopping a failed session acknowledges the failure and returns to
// idle. The wait is bounded: a termination signal, the grace period, then a
// force kill, so the caller is never blocked indefinitely.
func (c *Controller) Stop(ctx context.Context) error {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()
	return c.stopCurrent(ctx)
}

// stopCurrent does the actual termination. Callers must hold c.cmdMu.
func (c *Controller) stopCurrent(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case core.StateIdle:
		c.mu.Unlock()
		return nil
	case core.StateFailed:
		c.toIdleLocked()
		c.mu.Unlock()
		return nil
	}

	cmd := c.cmd
	done := c.done
	c.state = core.StateStopping
	c.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		c.finalizeStop()
		return nil
	}

	c.debugf("stopping player (pid %d)", cmd.Process.Pid)
	_ = cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-done:
	case <-time.After(c.opts.StopGrace):
		c.debugf("player ignored SIGTERM, killing")
		_ = cmd.Process.Kill()
		select {
		case <-done:
		case <-time.After(c.opts.StopGrace):
			c.finalizeStop()
			return apperrors.ErrStopTimeout
		}
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		select {
		case <-done:
		case <-time.After(c.opts.StopGrace):
			c.finalizeStop()
			return ctx.Err()
		}
	}

	c.finalizeStop()
	return nil
}

func (c *Controller) finalizeStop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == core.StateStopping {
		c.toIdleLocked()
	}
}

// toIdleLocked resets the session. Callers must hold c.mu.
func (c *Controller) toIdleLocked() {
	c.state = core.StateIdle
	c.station = nil
	c.reason = ""
	c.cmd = nil
	c.done = nil
}

// Status returns a point-in-time snapshot of the session. It never blocks
// on the process.
func (c *Controller) Status() core.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := core.Snapshot{
		State:     c.state,
		Reason:    c.reason,
		StartedAt: c.startedAt,
	}
	if c.station != nil {
		st := *c.station
		snap.Station = &st
	}
	return snap
}

// Close tears the session down, killing the process if still running.
func (c *Controller) Close() error {
	return c.Stop(context.Background())
}

// checkHealth is invoked by the monitor on every poll tick. Exit detection
// is event-driven through reap; the tick's job is startup confirmation:
// a process still alive past the confirmation window is considered playing.
func (c *Controller) checkHealth(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == core.StateStarting && now.Sub(c.startedAt) >= c.opts.StartupConfirm {
		c.state = core.StatePlaying
		c.debugf("playback confirmed for %s", c.station.Name)
	}
}

// exitReason renders a process exit for the Failed state.
func exitReason(err error) string {
	if err == nil {
		return "player exited (stream ended)"
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return fmt.Sprintf("player exited with code %d", code)
		}
		return "player " + exitErr.ProcessState.String()
	}
	return err.Error()
}
