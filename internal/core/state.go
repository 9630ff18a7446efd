package core

import "time"

// State identifies a phase of the playback session.
type State int

const (
	// StateIdle means no player process exists.
	StateIdle State = iota
	// StateStarting means a player process was spawned but playback is
	// not yet confirmed.
	StateStarting
	// StatePlaying means the player process is alive and considered healthy.
	StatePlaying
	// StateStopping means termination was requested and is in progress.
	StateStopping
	// StateFailed means the player process died without a stop request.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StatePlaying:
		return "playing"
	case StateStopping:
		return "stopping"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Active reports whether a player process is expected to be alive.
func (s State) Active() bool {
	return s == StateStarting || s == StatePlaying
}

// Snapshot is a read-only view of the playback session at one instant.
type Snapshot struct {
	State     State
	Station   *Station  // target station, nil when idle
	Reason    string    // failure reason, set only when State is StateFailed
	StartedAt time.Time // when the current/last process was spawned
}

// HasStation returns true if the snapshot carries a target station.
func (s Snapshot) HasStation() bool {
	return s.Station != nil
}
