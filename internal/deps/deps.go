// Package deps reports whether the external programs the launcher relies on
// are present.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/zserge/lorca"

	"hiddengems/internal/process"
)

// Status reports the availability of a dependency.
type Status struct {
	Name      string
	Command   string
	Optional  bool
	Available bool
	Detail    string
}

// Requirement names a binary looked up on PATH or by absolute path.
type Requirement struct {
	Name     string
	Command  string
	Optional bool
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{Name: req.Name, Command: cmd, Optional: req.Optional}
		switch {
		case cmd == "":
			status.Detail = "command not configured"
		default:
			if path, err := exec.LookPath(cmd); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found", cmd)
			} else {
				status.Command = path
				status.Available = true
			}
		}
		results = append(results, status)
	}
	return results
}

// locateChrome is replaced in tests.
var locateChrome = lorca.LocateChrome

// CheckBrowser reports the Chrome or Chromium binary used for the app window.
// It is optional because --headless runs need no browser.
func CheckBrowser() Status {
	status := Status{Name: "Chrome/Chromium", Optional: true}
	if path := locateChrome(); path != "" {
		status.Command = path
		status.Available = true
		return status
	}
	status.Detail = "no Chrome or Chromium installation found; the window cannot open"
	return status
}

// CheckInterpreter reports the backend interpreter beneath baseDir.
func CheckInterpreter(candidates []string, baseDir string) Status {
	status := Status{Name: "Backend interpreter"}
	path, err := process.NewResolver(candidates).Resolve(baseDir)
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	status.Command = path
	status.Available = true
	return status
}

// Launcher returns every check relevant to a desktop run. Candidates that
// are bare command names are also listed one by one as PATH lookups.
func Launcher(candidates []string, baseDir string) []Status {
	statuses := []Status{CheckInterpreter(candidates, baseDir)}
	statuses = append(statuses, CheckBinaries(pathRequirements(candidates))...)
	return append(statuses, CheckBrowser())
}

func pathRequirements(candidates []string) []Requirement {
	var reqs []Requirement
	for _, c := range candidates {
		if process.IsCommand(c) {
			reqs = append(reqs, Requirement{Name: "Interpreter on PATH", Command: strings.TrimSpace(c), Optional: true})
		}
	}
	return reqs
}
