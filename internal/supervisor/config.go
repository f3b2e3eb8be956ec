package supervisor

import (
	"time"

	"hiddengems/internal/config"
)

// BackendConfig is the immutable description of the supervised backend.
// Host and Port together are the only readiness signal.
type BackendConfig struct {
	Host         string
	Port         int
	BaseDir      string
	Candidates   []string
	Args         []string
	PollInterval time.Duration
	MaxAttempts  int
	ProbeTimeout time.Duration
	StopGrace    time.Duration
	EnvFiles     []string
	RequiredEnv  []string
	// LockPath serializes launches across launcher instances; empty disables it.
	LockPath string
	// LogPath receives the backend's stdout and stderr; empty discards them.
	LogPath string
	// LogMaxBytes rotates LogPath before a launch once it is this large.
	LogMaxBytes int64
}

// NewBackendConfig snapshots the backend section of cfg.
func NewBackendConfig(cfg *config.Config) BackendConfig {
	return BackendConfig{
		Host:         cfg.Backend.Host,
		Port:         cfg.Backend.Port,
		BaseDir:      cfg.Backend.BaseDir,
		Candidates:   clone(cfg.Backend.Candidates),
		Args:         clone(cfg.Backend.Args),
		PollInterval: cfg.PollInterval(),
		MaxAttempts:  cfg.Backend.MaxAttempts,
		ProbeTimeout: cfg.ProbeTimeout(),
		StopGrace:    cfg.StopGrace(),
		EnvFiles:     clone(cfg.Backend.EnvFiles),
		RequiredEnv:  clone(cfg.Backend.RequiredEnv),
		LockPath:     cfg.LockPath(),
		LogPath:      cfg.BackendLogPath(),
		LogMaxBytes:  cfg.BackendLogMaxBytes(),
	}
}

// MaxWait is the worst-case readiness wait, excluding probe latency.
func (c BackendConfig) MaxWait() time.Duration {
	if c.MaxAttempts <= 1 {
		return 0
	}
	return c.PollInterval * time.Duration(c.MaxAttempts-1)
}

func clone(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
