package fileset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chdbatch/internal/logging"
)

// Extractor unpacks an archive into destDir and returns the extracted file
// paths.
type Extractor interface {
	Extract(ctx context.Context, archivePath, destDir string) ([]string, error)
}

// Classifier buckets candidate paths into a Set, expanding directories and
// ZIP archives.
type Classifier struct {
	Extractor Extractor
	Logger    *slog.Logger
	// Warn, when set, receives each warning as it happens so the console can
	// show it without waiting for the whole import.
	Warn func(message string)
}

// Classify builds a fresh Set from paths. Directories are enumerated
// recursively. Paths that do not exist are skipped with a warning. ZIP
// archives are extracted into a sibling directory named after the archive and
// their contents are classified in a further pass, repeated until no new
// archives appear.
func (c *Classifier) Classify(ctx context.Context, paths []string) (*Set, []string) {
	set := New()
	var warnings []string
	warn := func(msg string, attrs ...logging.Attr) {
		warnings = append(warnings, msg)
		logging.WarnWithContext(c.logger(), msg, "classify_warning", attrs...)
		if c.Warn != nil {
			c.Warn(msg)
		}
	}

	pending := c.pass(set, paths, warn)
	expanded := make(map[string]struct{})
	for len(pending) > 0 {
		if ctx.Err() != nil {
			warn(fmt.Sprintf("Import interrupted: %v", ctx.Err()))
			break
		}
		var extracted []string
		for _, archivePath := range pending {
			if _, done := expanded[archivePath]; done {
				continue
			}
			expanded[archivePath] = struct{}{}
			files, err := c.expand(ctx, archivePath)
			if err != nil {
				warn(err.Error(), logging.String("archive", archivePath), logging.Error(err))
				continue
			}
			extracted = append(extracted, files...)
		}
		pending = c.pass(set, extracted, warn)
	}

	c.logger().Info("import classified",
		logging.Int("inputs", len(paths)),
		logging.Int("files", set.Total()),
		logging.Int("warnings", len(warnings)),
		logging.String(logging.FieldEventType, "import_classified"),
	)
	return set, warnings
}

// pass classifies paths into set and returns the ZIP archives it met.
func (c *Classifier) pass(set *Set, paths []string, warn func(string, ...logging.Attr)) []string {
	var archives []string
	for _, raw := range paths {
		path := strings.TrimSpace(raw)
		if path == "" {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		info, err := os.Stat(path)
		if err != nil {
			warn(fmt.Sprintf("%q does not exist and was skipped", path), logging.String("path", path))
			continue
		}
		files := []string{path}
		if info.IsDir() {
			files, err = Walk(path)
			if err != nil {
				warn(fmt.Sprintf("Could not fully read %q: %v", path, err), logging.String("path", path))
			}
		}
		for _, file := range files {
			if !set.Add(file) {
				continue
			}
			if cat, _ := CategoryFor(file); cat == ZIP {
				archives = append(archives, file)
			}
		}
	}
	return archives
}

func (c *Classifier) expand(ctx context.Context, archivePath string) ([]string, error) {
	if c.Extractor == nil {
		return nil, fmt.Errorf("cannot extract %q: no archive extractor configured", archivePath)
	}
	dest := ArchiveDestination(archivePath)
	if _, err := os.Stat(dest); err == nil {
		return nil, fmt.Errorf("%q already exists; %q was not extracted", dest, filepath.Base(archivePath))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("check %q: %w", dest, err)
	}
	files, err := c.Extractor.Extract(ctx, archivePath, dest)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %q: %w", filepath.Base(archivePath), err)
	}
	c.logger().Info("archive extracted",
		logging.String("archive", archivePath),
		logging.String("destination", dest),
		logging.Int("files", len(files)),
	)
	return files, nil
}

func (c *Classifier) logger() *slog.Logger {
	if c.Logger == nil {
		return logging.NewNop()
	}
	return c.Logger
}

// ArchiveDestination returns the sibling directory an archive expands into:
// "/games/disc.zip" -> "/games/disc".
func ArchiveDestination(archivePath string) string {
	base := filepath.Base(archivePath)
	return filepath.Join(filepath.Dir(archivePath), strings.TrimSuffix(base, filepath.Ext(base)))
}

// Walk returns every regular file beneath root at any depth in lexical order.
// Unreadable subtrees are skipped and reported through the returned error.
func Walk(root string) ([]string, error) {
	var files []string
	var walkErrs []error
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			walkErrs = append(walkErrs, err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		walkErrs = append(walkErrs, err)
	}
	return files, errors.Join(walkErrs...)
}
