package config

import (
	_ "embed"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Backend describes the supervised backend service and how to reach it.
type Backend struct {
	Host             string   `toml:"host"`
	Port             int      `toml:"port"`
	BaseDir          string   `toml:"base_dir"`
	Candidates       []string `toml:"candidates"`
	Args             []string `toml:"args"`
	PollIntervalMS   int      `toml:"poll_interval_ms"`
	MaxAttempts      int      `toml:"max_attempts"`
	ProbeTimeoutMS   int      `toml:"probe_timeout_ms"`
	StopGraceSeconds int      `toml:"stop_grace_seconds"`
	EnvFiles         []string `toml:"env_files"`
	RequiredEnv      []string `toml:"required_env"`
}

// Window describes the single application window.
type Window struct {
	Name       string `toml:"name"`
	Title      string `toml:"title"`
	URL        string `toml:"url"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Resizable  bool   `toml:"resizable"`
	SettleMS   int    `toml:"settle_ms"`
	ProfileDir string `toml:"profile_dir"`
}

// Paths contains state and log directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
	// BackendMaxMB rotates backend.log at startup once it reaches this size;
	// 0 disables rotation.
	BackendMaxMB int `toml:"backend_max_mb"`
}

// Config encapsulates all configuration values for the launcher.
//
// Configuration sections:
//   - Backend: readiness address, executable candidates, poll policy, env files
//   - Window: the named window and its display properties
//   - Paths: state (launch lock) and log directories
//   - Logging: log format, level, and retention
type Config struct {
	Backend Backend `toml:"backend"`
	Window  Window  `toml:"window"`
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Overrides carry command-line values that take precedence over the file.
// Zero values leave the file's settings alone.
type Overrides struct {
	Port    int
	BaseDir string
}

func (o Overrides) apply(cfg *Config) {
	if o.Port != 0 {
		cfg.Backend.Port = o.Port
	}
	if strings.TrimSpace(o.BaseDir) != "" {
		cfg.Backend.BaseDir = o.BaseDir
	}
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	return LoadWithOverrides(path, Overrides{})
}

// LoadWithOverrides is Load with overrides applied before normalization, so
// derived values such as the default window URL follow them.
func LoadWithOverrides(path string, overrides Overrides) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	overrides.apply(&cfg)

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if os.IsNotExist(err) {
				return "", false, fmt.Errorf("config file %q not found", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %q is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// BackendAddress returns the host:port pair used as the single readiness signal.
func (c *Config) BackendAddress() string {
	return net.JoinHostPort(c.Backend.Host, strconv.Itoa(c.Backend.Port))
}

// PollInterval returns the pause between readiness probes.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Backend.PollIntervalMS) * time.Millisecond
}

// ProbeTimeout returns the per-attempt TCP connect timeout.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Backend.ProbeTimeoutMS) * time.Millisecond
}

// StopGrace returns how long teardown waits after the termination signal
// before force-killing the backend.
func (c *Config) StopGrace() time.Duration {
	return time.Duration(c.Backend.StopGraceSeconds) * time.Second
}

// SettleDelay returns the pause between supervision and window creation.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Window.SettleMS) * time.Millisecond
}

// LockPath is the file lock serializing backend launches across launcher instances.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "backend.lock")
}

// BackendLogPath is where the backend's stdout and stderr are appended.
func (c *Config) BackendLogPath() string {
	return filepath.Join(c.Paths.LogDir, "backend.log")
}

// BackendLogMaxBytes is logging.backend_max_mb in bytes.
func (c *Config) BackendLogMaxBytes() int64 {
	return int64(c.Logging.BackendMaxMB) << 20
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}
