package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeBackend(); err != nil {
		return err
	}
	if err := c.normalizeWindow(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeBackend() error {
	c.Backend.Host = strings.TrimSpace(c.Backend.Host)
	if c.Backend.Host == "" {
		c.Backend.Host = defaultBackendHost
	}

	baseDir, err := resolveBaseDir(c.Backend.BaseDir)
	if err != nil {
		return fmt.Errorf("backend.base_dir: %w", err)
	}
	c.Backend.BaseDir = baseDir

	c.Backend.Candidates = trimList(c.Backend.Candidates)
	c.Backend.Args = trimList(c.Backend.Args)
	c.Backend.RequiredEnv = trimList(c.Backend.RequiredEnv)

	envFiles := make([]string, 0, len(c.Backend.EnvFiles))
	for _, file := range trimList(c.Backend.EnvFiles) {
		if !strings.HasPrefix(file, "~") && !filepath.IsAbs(file) {
			file = filepath.Join(c.Backend.BaseDir, file)
		}
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("backend.env_files: %w", err)
		}
		envFiles = append(envFiles, expanded)
	}
	c.Backend.EnvFiles = envFiles
	return nil
}

// resolveBaseDir picks the directory holding the backend. An empty value
// means the working directory; a src-tauri working directory is replaced by
// its parent so launches from the shell project behave like launches from
// the repository root.
func resolveBaseDir(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		value = wd
	}
	expanded, err := expandPath(value)
	if err != nil {
		return "", err
	}
	if filepath.Base(expanded) == tauriDirName {
		expanded = filepath.Dir(expanded)
	}
	return expanded, nil
}

func (c *Config) normalizeWindow() error {
	c.Window.Name = strings.TrimSpace(c.Window.Name)
	if c.Window.Name == "" {
		c.Window.Name = defaultWindowName
	}
	c.Window.Title = strings.TrimSpace(c.Window.Title)
	if c.Window.Title == "" {
		c.Window.Title = defaultWindowTitle()
	}
	c.Window.URL = strings.TrimSpace(c.Window.URL)
	if c.Window.URL == "" {
		u := url.URL{Scheme: windowURLScheme, Host: windowURLHost + ":" + strconv.Itoa(c.Backend.Port)}
		c.Window.URL = u.String()
	}
	if strings.TrimSpace(c.Window.ProfileDir) != "" {
		dir, err := expandPath(c.Window.ProfileDir)
		if err != nil {
			return fmt.Errorf("window.profile_dir: %w", err)
		}
		c.Window.ProfileDir = dir
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
