package deps

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeStub(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

func TestResolveSkipsBlankCandidates(t *testing.T) {
	if _, _, err := resolve([]candidate{{SourceConfig, "  "}}); err == nil {
		t.Fatal("expected error when no candidate is usable")
	}
}

func TestResolveReportsFirstFailure(t *testing.T) {
	tmp := t.TempDir()
	plain := filepath.Join(tmp, "chdman")
	if err := os.WriteFile(plain, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PATH", "")
	_, _, err := resolve([]candidate{{SourceAppDir, plain}, {SourcePath, "chdman"}})
	if runtime.GOOS != "windows" && !errors.Is(err, errNotExecutable) {
		t.Fatalf("expected not-executable error from first candidate, got %v", err)
	}
}

func TestCheckChdmanPrefersConfiguredPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on executable bits")
	}
	tmp := t.TempDir()
	configured := filepath.Join(tmp, "custom", "chdman")
	writeStub(t, configured)
	writeStub(t, filepath.Join(tmp, "app", "chdman"))

	status := CheckChdman(configured, filepath.Join(tmp, "app"), "chdman")
	if !status.Available || status.Command != configured || status.Source != SourceConfig {
		t.Fatalf("expected configured chdman, got %#v", status)
	}
}

func TestCheckChdmanConfiguredMissing(t *testing.T) {
	tmp := t.TempDir()
	status := CheckChdman(filepath.Join(tmp, "nope", "chdman"), tmp, "chdman")
	if status.Available {
		t.Fatal("expected missing configured path to be unavailable")
	}
	if !strings.Contains(status.Detail, "config path") || status.Command == "chdman" {
		t.Fatalf("unexpected detail %q", status.Detail)
	}
}

func TestCheckChdmanApplicationDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on executable bits")
	}
	appDir := t.TempDir()
	candidate := filepath.Join(appDir, "chdman")
	writeStub(t, candidate)
	t.Setenv("PATH", "")

	status := CheckChdman("", appDir, "chdman")
	if !status.Available || status.Command != candidate || status.Source != SourceAppDir {
		t.Fatalf("expected application dir chdman, got %#v", status)
	}
}

func TestCheckChdmanPathFallback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on executable bits")
	}
	binDir := t.TempDir()
	onPath := filepath.Join(binDir, "chdman")
	writeStub(t, onPath)
	t.Setenv("PATH", binDir)

	status := CheckChdman("", t.TempDir(), "chdman")
	if !status.Available || status.Command != onPath || status.Source != SourcePath {
		t.Fatalf("expected PATH chdman, got %#v", status)
	}
	if status.Detail == "" {
		t.Fatal("expected a note about PATH resolution")
	}
}

func TestCheckChdmanNotFound(t *testing.T) {
	t.Setenv("PATH", "")
	status := CheckChdman("", t.TempDir(), "chdman")
	if status.Available {
		t.Fatal("expected chdman resolution to fail")
	}
	if status.Detail == "" {
		t.Fatal("expected detail message when chdman is unavailable")
	}
}
