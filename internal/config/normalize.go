package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAsset()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(workdirRootEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.WorkdirRoot = value
	}
	if strings.TrimSpace(c.Paths.WorkdirRoot) == "" {
		c.Paths.WorkdirRoot = defaultWorkdirRoot
	}
	var err error
	if c.Paths.WorkdirRoot, err = expandPath(strings.TrimSpace(c.Paths.WorkdirRoot)); err != nil {
		return fmt.Errorf("paths.workdir_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAsset() {
	c.Asset.DefaultYUVType = strings.TrimSpace(c.Asset.DefaultYUVType)
	if c.Asset.DefaultYUVType == "" {
		c.Asset.DefaultYUVType = Default().Asset.DefaultYUVType
	}
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
