package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"vqasset/internal/asset"
	"vqasset/internal/config"
	"vqasset/internal/dataset"
	"vqasset/internal/logging"
	"vqasset/internal/services"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "load config", path, err)
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = services.Wrap(services.ErrConfiguration, "cli", "apply --log-level", level, err)
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrIO, "cli", "ensure directories", resolved, err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerValue returns the process logger, falling back to a no-op logger when
// the log file cannot be opened so commands still produce their output.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// loadDataset reads the dataset at path using the configured asset defaults.
// The returned context carries the dataset label for log correlation.
func (c *commandContext) loadDataset(ctx context.Context, path string, opts asset.Options) (context.Context, *dataset.Dataset, error) {
	ds, err := dataset.Load(ctx, path, opts, c.loggerValue())
	if err != nil {
		return ctx, nil, err
	}
	return services.WithDataset(ctx, ds.Name), ds, nil
}

func (c *commandContext) assetOptions() (asset.Options, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return asset.Options{}, err
	}
	return cfg.AssetOptions(), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
