package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotFound reports that no candidate executable exists.
var ErrNotFound = errors.New("executable not found")

// NotFoundError lists every path the resolver tried.
type NotFoundError struct {
	BaseDir string
	Tried   []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s in %s (tried %s)", ErrNotFound, e.BaseDir, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// PlatformCandidates returns the interpreter paths tried for goos, in order.
// The POSIX virtualenv layout is always the last resort so environments
// created by POSIX-style tooling on Windows still resolve.
func PlatformCandidates(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			filepath.Join(".venv", "Scripts", "python.exe"),
			".venv/bin/python",
		}
	default:
		return []string{
			".venv/bin/python",
			".venv/bin/python3",
		}
	}
}

// Resolver finds the backend executable beneath a base directory.
type Resolver struct {
	Candidates []string
}

// NewResolver uses candidates when given, otherwise the current platform's defaults.
func NewResolver(candidates []string) Resolver {
	if len(candidates) == 0 {
		candidates = PlatformCandidates(runtime.GOOS)
	}
	cp := make([]string, len(candidates))
	copy(cp, candidates)
	return Resolver{Candidates: cp}
}

// IsCommand reports whether candidate is a bare command name looked up on
// PATH rather than a path.
func IsCommand(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	return candidate != "" && !strings.ContainsAny(candidate, `/\`) && filepath.VolumeName(candidate) == ""
}

// Resolve returns the first candidate that exists as a regular file.
// Relative candidates are joined to baseDir, absolute ones are used as-is
// and bare command names are looked up on PATH.
func (r Resolver) Resolve(baseDir string) (string, error) {
	tried := make([]string, 0, len(r.Candidates))
	for _, candidate := range r.Candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if IsCommand(candidate) {
			tried = append(tried, candidate+" on PATH")
			if path, err := exec.LookPath(candidate); err == nil {
				return path, nil
			}
			continue
		}
		path := candidate
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, filepath.FromSlash(candidate))
		}
		tried = append(tried, path)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		return path, nil
	}
	return "", &NotFoundError{BaseDir: baseDir, Tried: tried}
}
