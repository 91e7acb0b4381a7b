package chdman

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chdbatch/internal/config"
)

// DefaultPath returns where chdman is expected: the configured path when set,
// otherwise next to the application binary.
func DefaultPath(cfg *config.Config, appDir string) string {
	if cfg != nil && strings.TrimSpace(cfg.Tool.Path) != "" {
		return cfg.Tool.Path
	}
	return filepath.Join(appDir, config.ToolBinary())
}

// Validate checks that path names an existing file called exactly like the
// chdman executable. A user-supplied path is accepted only when it passes.
func Validate(path string) error {
	path = strings.TrimSpace(strings.ReplaceAll(path, `"`, ""))
	if path == "" {
		return Wrap(ErrNotFound, "locate", "no path entered", nil)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Wrap(ErrNotFound, "locate", fmt.Sprintf("%s not valid: %q does not exist", config.ToolBinary(), path), nil)
	}
	if filepath.Base(path) != config.ToolBinary() {
		return Wrap(ErrValidation, "locate", fmt.Sprintf("%s not found: %q is a different file", config.ToolBinary(), filepath.Base(path)), nil)
	}
	return nil
}
