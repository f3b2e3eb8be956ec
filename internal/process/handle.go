package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"
)

// StopOutcome describes how a Terminate call ended.
type StopOutcome string

const (
	// StopAlreadyExited means the process was gone before any signal was sent.
	StopAlreadyExited StopOutcome = "already_exited"
	// StopTerminated means the process exited after the termination signal.
	StopTerminated StopOutcome = "terminated"
	// StopKilled means the grace period lapsed and the process was force-killed.
	StopKilled StopOutcome = "killed"
)

// Handle is an opaque reference to a running child process.
type Handle interface {
	PID() int
	// Exited is closed once the process has been reaped.
	Exited() <-chan struct{}
	// ExitErr is the reaped process's wait error: nil for a clean exit or
	// while it is still running.
	ExitErr() error
	// Terminate signals the process, waits up to grace for it to exit, then
	// force-kills it. A zero grace kills immediately.
	Terminate(grace time.Duration) (StopOutcome, error)
}

// killWait bounds how long Terminate waits for the reaper after SIGKILL.
const killWait = 2 * time.Second

type execHandle struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu      sync.Mutex
	waitErr error
}

func newExecHandle(cmd *exec.Cmd) *execHandle {
	h := &execHandle{cmd: cmd, done: make(chan struct{})}
	go h.reap()
	return h
}

func (h *execHandle) reap() {
	err := h.cmd.Wait()
	h.mu.Lock()
	h.waitErr = err
	h.mu.Unlock()
	close(h.done)
}

func (h *execHandle) PID() int { return h.cmd.Process.Pid }

func (h *execHandle) Exited() <-chan struct{} { return h.done }

func (h *execHandle) ExitErr() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.waitErr
}

func (h *execHandle) exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *execHandle) Terminate(grace time.Duration) (StopOutcome, error) {
	if h.exited() {
		return StopAlreadyExited, nil
	}

	if grace > 0 {
		if err := signalTerminate(h.cmd.Process); err != nil {
			if h.exited() || errors.Is(err, os.ErrProcessDone) {
				return StopAlreadyExited, nil
			}
			return "", fmt.Errorf("signal pid %d: %w", h.PID(), err)
		}
		timer := time.NewTimer(grace)
		defer timer.Stop()
		select {
		case <-h.done:
			return StopTerminated, nil
		case <-timer.C:
		}
	}

	if err := signalKill(h.cmd.Process); err != nil {
		if h.exited() || errors.Is(err, os.ErrProcessDone) {
			return StopTerminated, nil
		}
		return "", fmt.Errorf("kill pid %d: %w", h.PID(), err)
	}
	select {
	case <-h.done:
	case <-time.After(killWait):
		return StopKilled, fmt.Errorf("pid %d still running after kill", h.PID())
	}
	return StopKilled, nil
}
