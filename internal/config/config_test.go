package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"chdbatch/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("CHDMAN_PATH", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "chdbatch", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Tool.Path != "" {
		t.Fatalf("expected empty tool path, got %q", cfg.Tool.Path)
	}
	if cfg.Tool.PSPHunkSize != 2048 {
		t.Fatalf("unexpected hunk size: %d", cfg.Tool.PSPHunkSize)
	}
	if cfg.Menu.Width != config.Default().Menu.Width {
		t.Fatalf("unexpected menu width: %d", cfg.Menu.Width)
	}
	if cfg.LogPath() != filepath.Join(wantLogDir, config.LogFileName) {
		t.Fatalf("unexpected log path: %q", cfg.LogPath())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.LogDir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "chdbatch.toml")

	type payload struct {
		Tool struct {
			Path        string `toml:"path"`
			PSPHunkSize int    `toml:"psp_hunk_size"`
		} `toml:"tool"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
		Menu struct {
			Width int `toml:"width"`
		} `toml:"menu"`
	}
	custom := payload{}
	custom.Tool.Path = filepath.Join(tempDir, "bin", "chdman")
	custom.Tool.PSPHunkSize = 4096
	custom.Logging.Format = " JSON "
	custom.Logging.Level = "Debug"
	custom.Menu.Width = 80

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Tool.Path != custom.Tool.Path {
		t.Fatalf("unexpected tool path: %q", cfg.Tool.Path)
	}
	if cfg.Tool.PSPHunkSize != 4096 {
		t.Fatalf("unexpected hunk size: %d", cfg.Tool.PSPHunkSize)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
	if cfg.Menu.Width != 80 {
		t.Fatalf("unexpected menu width: %d", cfg.Menu.Width)
	}
}

func TestLoadUsesToolPathFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	want := filepath.Join(t.TempDir(), "chdman")
	t.Setenv("CHDMAN_PATH", `"`+want+`"`)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Tool.Path != want {
		t.Fatalf("expected tool path from env, got %q", cfg.Tool.Path)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "chdbatch.toml")
	if err := os.WriteFile(configPath, []byte("[tool]\nhunk = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "bad format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "bad level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "narrow menu", mutate: func(c *config.Config) { c.Menu.Width = 10 }, wantErr: "menu.width"},
		{name: "bad color", mutate: func(c *config.Config) { c.Menu.Color = "rainbow" }, wantErr: "menu.color"},
		{name: "odd hunk", mutate: func(c *config.Config) { c.Tool.PSPHunkSize = 1000 }, wantErr: "psp_hunk_size"},
		{name: "negative retention", mutate: func(c *config.Config) { c.Logging.RetentionDays = -1 }, wantErr: "retention_days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	t.Setenv("HOME", t.TempDir())
	if _, _, exists, err := config.Load(target); err != nil || !exists {
		t.Fatalf("expected sample config to load, exists=%v err=%v", exists, err)
	}
}
