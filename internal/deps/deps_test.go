package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	results := CheckBinaries([]Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset"},
	})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" || results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected missing status %#v", results[1])
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected unset status %#v", results[2])
	}
}

func TestCheckBrowser(t *testing.T) {
	orig := locateChrome
	t.Cleanup(func() { locateChrome = orig })

	locateChrome = func() string { return "/usr/bin/chromium" }
	if st := CheckBrowser(); !st.Available || st.Command != "/usr/bin/chromium" || !st.Optional {
		t.Fatalf("unexpected status %#v", st)
	}

	locateChrome = func() string { return "" }
	if st := CheckBrowser(); st.Available || st.Detail == "" {
		t.Fatalf("expected missing browser, got %#v", st)
	}
}

func TestCheckInterpreter(t *testing.T) {
	base := t.TempDir()
	if st := CheckInterpreter([]string{".venv/bin/python"}, base); st.Available || st.Detail == "" {
		t.Fatalf("expected missing interpreter, got %#v", st)
	}

	exe := filepath.Join(base, ".venv", "bin", "python")
	if err := os.MkdirAll(filepath.Dir(exe), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(exe, nil, 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}
	if st := CheckInterpreter([]string{".venv/bin/python"}, base); !st.Available || st.Command != exe {
		t.Fatalf("expected interpreter found, got %#v", st)
	}
}

func TestLauncherChecksPathCandidates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH lookup needs an executable extension on windows")
	}
	orig := locateChrome
	t.Cleanup(func() { locateChrome = orig })
	locateChrome = func() string { return "" }

	binDir := t.TempDir()
	py := filepath.Join(binDir, "hiddengems-python")
	if err := os.WriteFile(py, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	statuses := Launcher([]string{".venv/bin/python", "hiddengems-python", "hiddengems-missing"}, t.TempDir())
	if len(statuses) != 4 {
		t.Fatalf("expected interpreter, two PATH checks and browser, got %#v", statuses)
	}
	if !statuses[0].Available || statuses[0].Command != py {
		t.Fatalf("expected interpreter resolved from PATH, got %#v", statuses[0])
	}
	if !statuses[1].Available || statuses[1].Command != py || !statuses[1].Optional {
		t.Fatalf("unexpected PATH status %#v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Command != "hiddengems-missing" {
		t.Fatalf("unexpected missing PATH status %#v", statuses[2])
	}
	if statuses[3].Name != "Chrome/Chromium" {
		t.Fatalf("expected browser check last, got %#v", statuses[3])
	}
}

func TestLauncherWithoutPathCandidates(t *testing.T) {
	statuses := Launcher([]string{".venv/bin/python"}, t.TempDir())
	if len(statuses) != 2 {
		t.Fatalf("expected interpreter and browser checks only, got %#v", statuses)
	}
}
