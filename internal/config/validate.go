package config

import (
	"errors"
	"fmt"

	"vqasset/internal/asset"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAsset(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkdirRoot == "" {
		return errors.New("paths.workdir_root must be set")
	}
	return nil
}

func (c *Config) validateAsset() error {
	if _, err := asset.ParseYUVType(c.Asset.DefaultYUVType); err != nil {
		return fmt.Errorf("asset.default_yuv_type: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
