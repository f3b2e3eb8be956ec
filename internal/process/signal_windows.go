//go:build windows

package process

import (
	"os"
	"os/exec"
	"syscall"
)

func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

// Windows has no SIGTERM equivalent for arbitrary console processes.
func signalTerminate(proc *os.Process) error {
	return proc.Kill()
}

func signalKill(proc *os.Process) error {
	return proc.Kill()
}
