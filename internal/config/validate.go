package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTool(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateMenu(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTool() error {
	if c.Tool.PSPHunkSize < 0 {
		return errors.New("tool.psp_hunk_size must be positive")
	}
	// chdman requires the hunk size to be a whole number of 2048 byte sectors
	// for DVD images.
	if c.Tool.PSPHunkSize%2048 != 0 {
		return fmt.Errorf("tool.psp_hunk_size must be a multiple of 2048, got %d", c.Tool.PSPHunkSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be zero or positive")
	}
	return nil
}

func (c *Config) validateMenu() error {
	if c.Menu.Width < minMenuWidth {
		return fmt.Errorf("menu.width must be at least %d", minMenuWidth)
	}
	switch c.Menu.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("menu.color: unsupported value %q", c.Menu.Color)
	}
	return nil
}
