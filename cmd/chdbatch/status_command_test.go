package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(filepath.Join(env.baseDir, "import"), 0o755); err != nil {
		t.Fatalf("mkdir import: %v", err)
	}

	out, _, err := runCLI(t, []string{"status", "--config", env.configPath}, "")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "chdman:")
	requireContains(t, out, "[OK] "+env.toolPath)
	requireContains(t, out, "Log directory:")
	requireContains(t, out, "Import directory:")
	if strings.Contains(out, "[ERROR]") {
		t.Fatalf("unexpected error line:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("status must not colorize a buffer:\n%s", out)
	}
}

func TestStatusReportsMissingTool(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.toolPath); err != nil {
		t.Fatalf("remove stub: %v", err)
	}

	out, _, err := runCLI(t, []string{"status", "--config", env.configPath}, "")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "[ERROR] "+env.toolPath)
}

func TestRenderStatusLine(t *testing.T) {
	got := renderStatusLine("chdman", statusOK, "/opt/chdman", false)
	if got != "  chdman:              [OK] /opt/chdman" {
		t.Fatalf("unexpected line %q", got)
	}
	if colored := renderStatusLine("x", statusError, "", true); !strings.Contains(colored, "\x1b[31m") {
		t.Fatalf("expected red escape, got %q", colored)
	}
}
