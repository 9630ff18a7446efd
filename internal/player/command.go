package player

import (
	"fmt"
	"os/exec"
	"time"

	apperrors "github.com/tmaehler/airband/internal/errors"
)

// DefaultCommand is the player binary used when none is configured.
const DefaultCommand = "ffplay"

// DefaultArgs returns the flags passed to ffplay before the stream URL:
// headless, quiet, audio-only, stream-friendly buffering, and exit when
// the stream ends so the monitor can observe it.
func DefaultArgs() []string {
	return []string{
		"-nodisp",
		"-hide_banner",
		"-loglevel", "panic",
		"-vn",
		"-infbuf",
		"-autoexit",
	}
}

// Options configures the external player invocation and the timing knobs
// of the session state machine.
type Options struct {
	// Command is the player binary. Defaults to ffplay.
	Command string
	// Args are the flags placed before the stream URL. Defaults to
	// DefaultArgs when nil.
	Args []string
	// StopGrace is how long Stop waits after a termination signal before
	// force-killing the process. Defaults to 2s.
	StopGrace time.Duration
	// StartupConfirm is how long a freshly spawned process must stay alive
	// before playback counts as confirmed. Defaults to 2s.
	StartupConfirm time.Duration
	// PollInterval is the health monitor tick. Defaults to 1s.
	PollInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Command == "" {
		o.Command = DefaultCommand
	}
	if o.Args == nil {
		o.Args = DefaultArgs()
	}
	if o.StopGrace <= 0 {
		o.StopGrace = 2 * time.Second
	}
	if o.StartupConfirm <= 0 {
		o.StartupConfirm = 2 * time.Second
	}
	if o.PollInterval <= 0 {
		o.PollInterval = time.Second
	}
	return o
}

// CheckCommand verifies that the player binary can be found on PATH.
func CheckCommand(command string) error {
	if command == "" {
		command = DefaultCommand
	}
	if _, err := exec.LookPath(command); err != nil {
		return fmt.Errorf("%w: %q", apperrors.ErrPlayerNotFound, command)
	}
	return nil
}
