package main

import (
	"fmt"
	"log/slog"

	"framealign/internal/config"
	"framealign/internal/logging"
)

// commandContext carries lazily-loaded configuration shared across commands.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
	configPath string
	fileExists bool
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads and caches the configuration for the current invocation.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolvedPath, exists, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	c.cfg = cfg
	c.configPath = resolvedPath
	c.fileExists = exists
	return cfg, nil
}

// newLogger builds the run logger from the loaded configuration.
func (c *commandContext) newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
}
