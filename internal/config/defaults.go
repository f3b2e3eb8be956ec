package config

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultConfigPath         = "~/.config/hiddengems/config.toml"
	projectConfigName         = "hiddengems.toml"
	defaultAppName            = "hidden gems"
	defaultBackendHost        = "127.0.0.1"
	defaultBackendPort        = 5001
	defaultPollIntervalMS     = 500
	defaultMaxAttempts        = 30
	defaultProbeTimeoutMS     = 500
	defaultStopGraceSeconds   = 5
	defaultUserEnvFile        = "~/.config/hiddengems/.env"
	defaultWindowName         = "main"
	defaultWindowWidth        = 1200
	defaultWindowHeight       = 800
	defaultWindowSettleMS     = 500
	defaultStateDir           = "~/.local/share/hiddengems"
	defaultLogDir             = "~/.local/share/hiddengems/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogRetentionDays   = 30
	defaultBackendLogMaxMB    = 10
	tauriDirName              = "src-tauri"
	windowURLScheme           = "http"
	windowURLHost             = "localhost"
	requiredBackendAPIKeyName = "GROQ_API_KEY"
)

// defaultWindowTitle renders the application name the way it appears in window chrome.
func defaultWindowTitle() string {
	return cases.Title(language.English).String(defaultAppName)
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Backend: Backend{
			Host:             defaultBackendHost,
			Port:             defaultBackendPort,
			Args:             []string{"-m", "web.app"},
			PollIntervalMS:   defaultPollIntervalMS,
			MaxAttempts:      defaultMaxAttempts,
			ProbeTimeoutMS:   defaultProbeTimeoutMS,
			StopGraceSeconds: defaultStopGraceSeconds,
			EnvFiles:         []string{".env", defaultUserEnvFile},
			RequiredEnv:      []string{requiredBackendAPIKeyName},
		},
		Window: Window{
			Name:      defaultWindowName,
			Width:     defaultWindowWidth,
			Height:    defaultWindowHeight,
			Resizable: true,
			SettleMS:  defaultWindowSettleMS,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
			BackendMaxMB:  defaultBackendLogMaxMB,
		},
	}
}
