package deps

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Source records where an external program was resolved from.
type Source string

const (
	SourceNone   Source = ""
	SourceConfig Source = "config"
	SourceAppDir Source = "app_dir"
	SourcePath   Source = "PATH"
)

// Status reports the availability of an external program.
type Status struct {
	Name        string
	Command     string
	Description string
	Source      Source
	Available   bool
	Detail      string
}

// candidate is one location probed for a binary. A bare name is looked up on
// PATH; anything containing a separator must exist as given.
type candidate struct {
	source Source
	path   string
}

var errNotExecutable = errors.New("not an executable file")

// resolve walks the candidates in order and returns the first usable one.
// When every candidate fails, the error describes the first failure, since
// that is the location the user asked for.
func resolve(candidates []candidate) (string, Source, error) {
	var first error
	for _, c := range candidates {
		path := strings.TrimSpace(c.path)
		if path == "" {
			continue
		}
		found, err := probe(c.source, path)
		if err == nil {
			return found, c.source, nil
		}
		if first == nil {
			first = err
		}
	}
	if first == nil {
		first = errors.New("no location configured")
	}
	return "", SourceNone, first
}

func probe(source Source, path string) (string, error) {
	if source == SourcePath {
		resolved, err := exec.LookPath(path)
		if err != nil {
			return "", fmt.Errorf("binary %q not found on PATH", path)
		}
		return resolved, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%s path %q: %w", source, path, err)
	}
	if !isExecutable(info) {
		return "", fmt.Errorf("%s path %q: %w", source, path, errNotExecutable)
	}
	return path, nil
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
