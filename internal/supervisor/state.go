package supervisor

import (
	"errors"
	"fmt"
	"time"
)

// State is a step of the supervision sequence.
type State string

const (
	StateNotStarted     State = "not_started"
	StateProbing        State = "probing"
	StateAlreadyRunning State = "already_running"
	StateLaunching      State = "launching"
	StateNotFound       State = "executable_not_found"
	StateSpawnFailed    State = "spawn_failed"
	StateWaitingReady   State = "waiting_ready"
	StateReady          State = "ready"
	StateTimedOut       State = "timed_out"
	StateExited         State = "exited"
)

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	switch s {
	case StateAlreadyRunning, StateNotFound, StateSpawnFailed, StateReady, StateTimedOut, StateExited:
		return true
	default:
		return false
	}
}

var (
	// ErrExecutableNotFound means no candidate executable exists under the base directory.
	ErrExecutableNotFound = errors.New("backend executable not found")
	// ErrSpawnFailed means the OS refused to start the backend.
	ErrSpawnFailed = errors.New("backend spawn failed")
	// ErrReadinessTimedOut means the port never opened within the poll budget.
	ErrReadinessTimedOut = errors.New("backend readiness timed out")
	// ErrBackendExited means the backend process ended before its port opened.
	ErrBackendExited = errors.New("backend exited before becoming ready")
)

// Result is the outcome of EnsureRunning.
type Result struct {
	State      State
	Launched   bool
	PID        int
	Executable string
	Attempts   int
	Elapsed    time.Duration
	Err        error
}

// OK reports whether the backend is reachable.
func (r Result) OK() bool {
	return r.State == StateAlreadyRunning || r.State == StateReady
}

// Message renders a one-line description suitable for logs and CLI output.
func (r Result) Message() string {
	switch r.State {
	case StateAlreadyRunning:
		return "backend already running"
	case StateReady:
		return fmt.Sprintf("backend started (pid %d, ready after %d probes in %s)", r.PID, r.Attempts, r.Elapsed.Round(time.Millisecond))
	case StateNotStarted:
		return "backend supervision not started"
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return string(r.State)
}

// TeardownResult describes what Teardown did.
type TeardownResult struct {
	Stopped bool
	PID     int
	Outcome string
	Err     error
}
