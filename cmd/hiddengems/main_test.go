package main

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"hiddengems/internal/deps"
	"hiddengems/internal/supervisor"
)

type cliTestEnv struct {
	configPath string
	baseDir    string
	port       int
}

func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()
	return port
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	root := t.TempDir()
	home := filepath.Join(root, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)

	env := &cliTestEnv{
		configPath: filepath.Join(root, "hiddengems.toml"),
		baseDir:    filepath.Join(root, "app"),
		port:       closedPort(t),
	}
	if err := os.MkdirAll(env.baseDir, 0o755); err != nil {
		t.Fatalf("mkdir base: %v", err)
	}
	content := fmt.Sprintf(`[backend]
port = %d
base_dir = %q
poll_interval_ms = 10
max_attempts = 2
env_files = []
required_env = []

[paths]
state_dir = %q
log_dir = %q
`, env.port, env.baseDir, filepath.Join(root, "state"), filepath.Join(root, "logs"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	setupCLITestEnv(t)
	target := filepath.Join(t.TempDir(), "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init without --force to refuse overwriting")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--force"}, ""); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "show"}, target)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# loaded from "+target)
	requireContains(t, out, "[backend]")
	requireContains(t, out, "port = 5001")
}

func TestStatusReportsUnreachableBackend(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Backend not reachable at 127.0.0.1:"+strconv.Itoa(env.port))
	requireContains(t, out, "not found")
	requireContains(t, out, env.baseDir)
}

func TestStatusHonoursPortOverride(t *testing.T) {
	env := setupCLITestEnv(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)

	out, _, err := runCLI(t, []string{"--port", port, "status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Backend running at 127.0.0.1:"+port)
	requireContains(t, out, "http://localhost:"+port)
}

func TestBackendStartMissingExecutable(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"backend", "start"}, env.configPath)
	if !errors.Is(err, supervisor.ErrExecutableNotFound) {
		t.Fatalf("expected ErrExecutableNotFound, got %v", err)
	}
}

func TestBackendStartAlreadyRunning(t *testing.T) {
	env := setupCLITestEnv(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)

	out, _, err := runCLI(t, []string{"backend", "start", "--port", port}, env.configPath)
	if err != nil {
		t.Fatalf("backend start: %v", err)
	}
	requireContains(t, out, "Backend already running at 127.0.0.1:"+port)
}

func TestBackendFlagsOnlyOverrideWhenSet(t *testing.T) {
	flags := newBackendFlags()
	if err := flags.flagSet().Parse(nil); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ov := flags.overrides(); ov.Port != 0 || ov.BaseDir != "" {
		t.Fatalf("expected empty overrides, got %+v", ov)
	}

	flags = newBackendFlags()
	if err := flags.flagSet().Parse([]string{"--port", "6001", "--base-dir", "/srv/gems"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ov := flags.overrides(); ov.Port != 6001 || ov.BaseDir != "/srv/gems" {
		t.Fatalf("unexpected overrides %+v", ov)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Setting", "Value"}, [][]string{{"Address", "127.0.0.1:5001"}, {"Reachable"}})
	requireContains(t, out, "Setting")
	requireContains(t, out, "127.0.0.1:5001")
	requireContains(t, out, "Reachable")
	if strings.Contains(out, "SETTING") {
		t.Fatalf("expected headers kept as written, got:\n%s", out)
	}
	if strings.Contains(out, "<nil>") {
		t.Fatalf("expected short rows padded with blanks, got:\n%s", out)
	}
	if renderTable(nil, nil) != "" {
		t.Fatal("expected empty table without headers")
	}
}

func TestDependencyRows(t *testing.T) {
	rows := dependencyRows([]deps.Status{
		{Name: "Backend interpreter", Command: "/app/.venv/bin/python", Available: true},
		{Name: "Chrome/Chromium", Optional: true, Detail: "no browser"},
		{Name: "Other", Detail: "gone"},
	}, false)
	want := [][]string{
		{"Backend interpreter", "OK", "/app/.venv/bin/python"},
		{"Chrome/Chromium", "OPTIONAL", "no browser"},
		{"Other", "MISSING", "gone"},
	}
	for i := range want {
		if strings.Join(rows[i], "|") != strings.Join(want[i], "|") {
			t.Fatalf("row %d: got %v want %v", i, rows[i], want[i])
		}
	}
}
