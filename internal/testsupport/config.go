package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"chdbatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ImportDir = filepath.Join(base, "import")
	cfgVal.Menu.Color = "never"
	cfgVal.Batch.ExtractProgress = false

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithStubbedTool writes a stub chdman that exits with exitCode and points
// the config at it. On success the stub creates the -o output file.
func WithStubbedTool(exitCode int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tool.Path = StubTool(b.t, filepath.Join(b.baseDir, "bin"), exitCode)
	}
}

// StubTool writes a POSIX shell chdman stub into dir and returns its path.
// The stub records its arguments one per line in <dir>/calls.log.
func StubTool(t testing.TB, dir string, exitCode int) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub tool requires a POSIX shell")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	script := fmt.Sprintf(`#!/bin/sh
log="%s"
out=""
for arg in "$@"; do
  printf '%%s\n' "$arg" >> "$log"
done
echo "--" >> "$log"
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then out="$2"; fi
  shift
done
if [ %d -eq 0 ] && [ -n "$out" ]; then
  printf 'chd-output' > "$out"
fi
exit %d
`, filepath.Join(dir, "calls.log"), exitCode, exitCode)
	target := filepath.Join(dir, config.ToolBinary())
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", target, err)
	}
	return target
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
