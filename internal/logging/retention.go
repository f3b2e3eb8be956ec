package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RetentionTarget selects files in Dir matching the glob Pattern ("*" when
// empty). Exclude names files that are never pruned, such as the live run log.
type RetentionTarget struct {
	Dir     string
	Pattern string
	Exclude []string
}

// CleanupOldLogs deletes target files last modified more than retentionDays
// ago. Zero or negative retentionDays keeps everything.
func CleanupOldLogs(logger *slog.Logger, retentionDays int, targets ...RetentionTarget) {
	if retentionDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, target := range targets {
		for _, path := range target.expired(cutoff) {
			if err := os.Remove(path); err != nil {
				WarnWithContext(logger, "old log not removed", "log_retention_failed",
					String("path", path),
					Error(err),
					Hint("check permissions on paths.log_dir"),
					Impact("old logs keep using disk space"),
				)
				continue
			}
			if logger != nil {
				logger.Info("old log removed", String("path", path), Event("log_pruned"))
			}
		}
	}
}

func (t RetentionTarget) expired(cutoff time.Time) []string {
	dir := strings.TrimSpace(t.Dir)
	if dir == "" {
		return nil
	}
	pattern := strings.TrimSpace(t.Pattern)
	if pattern == "" {
		pattern = "*"
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil
	}
	keep := make(map[string]bool, len(t.Exclude))
	for _, p := range t.Exclude {
		keep[absPath(p)] = true
	}
	var out []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() || keep[absPath(m)] {
			continue
		}
		if info.ModTime().Before(cutoff) {
			out = append(out, m)
		}
	}
	return out
}

func absPath(p string) string {
	if abs, err := filepath.Abs(strings.TrimSpace(p)); err == nil {
		return abs
	}
	return p
}

// RotateLog renames path to "<path>.<UTC timestamp>" once it reaches
// maxBytes, so an append-only log starts fresh and the old one can be pruned
// with a "<name>.*" RetentionTarget. It reports the new name, or "" when
// nothing was rotated.
func RotateLog(path string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		return "", nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() < maxBytes {
		return "", nil
	}
	rotated := path + "." + time.Now().UTC().Format("20060102T150405.000")
	if err := os.Rename(path, rotated); err != nil {
		return "", fmt.Errorf("rotate %s: %w", path, err)
	}
	return rotated, nil
}
