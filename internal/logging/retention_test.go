package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCleanupOldLogsRemovesExpiredMatches(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "hiddengems-old.log")
	fresh := filepath.Join(dir, "hiddengems-fresh.log")
	current := filepath.Join(dir, "hiddengems-current.log")
	other := filepath.Join(dir, "notes.txt")
	for _, path := range []string{old, fresh, current, other} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	stale := time.Now().AddDate(0, 0, -10)
	for _, path := range []string{old, current, other} {
		if err := os.Chtimes(path, stale, stale); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}

	CleanupOldLogs(NewNop(), 5, RetentionTarget{Dir: dir, Pattern: "hiddengems-*.log", Exclude: []string{current}})

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected expired log removed, stat err=%v", err)
	}
	for _, path := range []string{fresh, current, other} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s kept: %v", path, err)
		}
	}
}

func TestCleanupOldLogsDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hiddengems-old.log")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stale := time.Now().AddDate(-1, 0, 0)
	if err := os.Chtimes(path, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	CleanupOldLogs(nil, 0, RetentionTarget{Dir: dir, Pattern: "*.log"})

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file kept when retention disabled: %v", err)
	}
}

func TestCleanupOldLogsPrunesRotatedBackendLogs(t *testing.T) {
	dir := t.TempDir()
	live := filepath.Join(dir, "backend.log")
	rotated := filepath.Join(dir, "backend.log.20250101T000000.000")
	for _, path := range []string{live, rotated} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		stale := time.Now().AddDate(0, 0, -30)
		if err := os.Chtimes(path, stale, stale); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}

	CleanupOldLogs(NewNop(), 7, RetentionTarget{Dir: dir, Pattern: "backend.log.*"})

	if _, err := os.Stat(rotated); !os.IsNotExist(err) {
		t.Fatalf("expected rotated backend log removed, stat err=%v", err)
	}
	if _, err := os.Stat(live); err != nil {
		t.Fatalf("expected live backend log kept: %v", err)
	}
}

func TestRotateLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backend.log")

	if got, err := RotateLog(path, 8); err != nil || got != "" {
		t.Fatalf("missing file: got %q, %v", got, err)
	}

	if err := os.WriteFile(path, []byte("short"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, err := RotateLog(path, 8); err != nil || got != "" {
		t.Fatalf("small file: got %q, %v", got, err)
	}

	if err := os.WriteFile(path, []byte("a much longer line"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := RotateLog(path, 8)
	if err != nil {
		t.Fatalf("RotateLog: %v", err)
	}
	if ok, _ := filepath.Match(filepath.Join(dir, "backend.log.*"), got); !ok {
		t.Fatalf("unexpected rotated name %q", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected live path freed, stat err=%v", err)
	}
	if content, err := os.ReadFile(got); err != nil || string(content) != "a much longer line" {
		t.Fatalf("rotated content = %q, %v", content, err)
	}
}

func TestRotateLogDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backend.log")
	if err := os.WriteFile(path, []byte("a much longer line"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, err := RotateLog(path, 0); err != nil || got != "" {
		t.Fatalf("expected no rotation, got %q, %v", got, err)
	}
}
