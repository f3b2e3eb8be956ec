package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBackend(); err != nil {
		return err
	}
	if err := c.validateWindow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBackend() error {
	if c.Backend.Port < 1 || c.Backend.Port > 65535 {
		return fmt.Errorf("backend.port must be between 1 and 65535, got %d", c.Backend.Port)
	}
	if c.Backend.PollIntervalMS <= 0 {
		return errors.New("backend.poll_interval_ms must be positive")
	}
	if c.Backend.MaxAttempts < 1 {
		return errors.New("backend.max_attempts must be at least 1")
	}
	if c.Backend.ProbeTimeoutMS <= 0 {
		return errors.New("backend.probe_timeout_ms must be positive")
	}
	if c.Backend.StopGraceSeconds < 0 {
		return errors.New("backend.stop_grace_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateWindow() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.SettleMS < 0 {
		return errors.New("window.settle_ms must be zero or positive")
	}
	parsed, err := url.Parse(c.Window.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("window.url must be an absolute URL, got %q", c.Window.URL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be zero or positive")
	}
	if c.Logging.BackendMaxMB < 0 {
		return errors.New("logging.backend_max_mb must be zero or positive")
	}
	return nil
}
