//go:build !windows

package process

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureCommand puts the child in its own process group so terminal
// signals aimed at the launcher do not reach it and teardown can stop any
// grandchildren it forks.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func signalTerminate(proc *os.Process) error {
	return signalGroup(proc, unix.SIGTERM)
}

func signalKill(proc *os.Process) error {
	return signalGroup(proc, unix.SIGKILL)
}

func signalGroup(proc *os.Process, sig syscall.Signal) error {
	err := unix.Kill(-proc.Pid, sig)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.ESRCH) {
		// Group already gone; fall back to the leader in case it left the group.
		if err := proc.Signal(sig); err != nil {
			if errors.Is(err, os.ErrProcessDone) {
				return os.ErrProcessDone
			}
			return err
		}
		return nil
	}
	return err
}
