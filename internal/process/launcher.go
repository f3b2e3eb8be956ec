package process

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Spec carries the environment a child is started in.
type Spec struct {
	Dir    string
	Env    []string // nil inherits the launcher's environment
	Stdout io.Writer
	Stderr io.Writer
}

// Launcher starts the backend executable.
type Launcher interface {
	Launch(path string, args []string, spec Spec) (Handle, error)
}

// ExecLauncher launches real OS processes with os/exec.
type ExecLauncher struct{}

// Launch starts path with args and returns once the process exists. Failures
// are returned as-is for the caller to report; nothing is retried.
func (ExecLauncher) Launch(path string, args []string, spec Spec) (Handle, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("launch: executable path is empty")
	}
	cmd := exec.Command(path, args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	configureCommand(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch %s: %w", path, err)
	}
	return newExecHandle(cmd), nil
}
