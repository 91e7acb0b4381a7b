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
	if err := c.normalizeTool(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeMenu()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.ImportDir, err = expandPath(strings.TrimSpace(c.Paths.ImportDir)); err != nil {
		return fmt.Errorf("paths.import_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTool() error {
	if strings.TrimSpace(c.Tool.Path) == "" {
		if value, ok := os.LookupEnv("CHDMAN_PATH"); ok {
			c.Tool.Path = value
		}
	}
	var err error
	if c.Tool.Path, err = expandPath(strings.TrimSpace(strings.Trim(c.Tool.Path, `"`))); err != nil {
		return fmt.Errorf("tool.path: %w", err)
	}
	if c.Tool.PSPHunkSize == 0 {
		c.Tool.PSPHunkSize = defaultPSPHunkSize
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

func (c *Config) normalizeMenu() {
	if c.Menu.Width == 0 {
		c.Menu.Width = defaultMenuWidth
	}
	c.Menu.Color = strings.ToLower(strings.TrimSpace(c.Menu.Color))
	if c.Menu.Color == "" {
		c.Menu.Color = defaultMenuColor
	}
}
