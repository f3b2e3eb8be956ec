package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"hiddengems/internal/config"
)

type commandContext struct {
	configFlag *string
	backend    *backendFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag *string, backend *backendFlags) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		backend:    backend,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.LoadWithOverrides(path, c.backend.overrides())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// loadedConfigPath is the config file in effect, or empty when defaults were used.
func (c *commandContext) loadedConfigPath() string {
	if _, err := c.ensureConfig(); err != nil || !c.configSeen {
		return ""
	}
	return c.configPath
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
