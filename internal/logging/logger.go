package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"hiddengems/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level string
	// Format is "console" (the default) or "json".
	Format string
	// OutputPaths lists "stdout", "stderr" or file paths. Empty means stdout.
	OutputPaths []string
	Development bool
	// SessionID, when set, is stamped on every record.
	SessionID string
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := ParseLevel(opts.Level)
	out, err := openOutputs(opts.OutputPaths)
	if err != nil {
		return nil, err
	}
	source := opts.Development || level <= slog.LevelDebug

	var handler slog.Handler
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		handler = newConsoleHandler(out, level, source)
	case "json":
		handler = newJSONHandler(out, level, source)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
	return slog.New(withSession(handler, opts.SessionID)), nil
}

// NewFromConfig builds a logger from the [logging] section. A non-empty
// levelOverride beats logging.level.
func NewFromConfig(cfg *config.Config, levelOverride string, outputs ...string) (*slog.Logger, error) {
	opts := Options{Level: levelOverride, OutputPaths: outputs}
	if cfg != nil {
		opts.Format = cfg.Logging.Format
		if strings.TrimSpace(opts.Level) == "" {
			opts.Level = cfg.Logging.Level
		}
	}
	return New(opts)
}

// ParseLevel maps a config or flag value to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// withSession binds the run's session ID ahead of any later attrs or groups.
func withSession(h slog.Handler, sessionID string) slog.Handler {
	if h == nil {
		return NoopHandler{}
	}
	if sessionID = strings.TrimSpace(sessionID); sessionID == "" {
		return h
	}
	return h.WithAttrs([]slog.Attr{slog.String(FieldSessionID, sessionID)})
}

func openOutputs(paths []string) (io.Writer, error) {
	seen := make(map[string]bool, len(paths))
	var writers []io.Writer
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		switch p {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				return nil, fmt.Errorf("create log dir for %s: %w", p, err)
			}
			f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", p, err)
			}
			writers = append(writers, f)
		}
	}
	switch len(writers) {
	case 0:
		return os.Stdout, nil
	case 1:
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}
