package archive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mholt/archives"
	"github.com/schollz/progressbar/v3"

	"chdbatch/internal/logging"
)

const copyBufferSize = 1 << 20

// Extractor unpacks archives into a destination directory.
type Extractor struct {
	Logger *slog.Logger
	// Progress receives a spinner-style progress bar while extracting. Nil
	// disables it.
	Progress io.Writer
}

// Extract unpacks archivePath into destDir, creating it, and returns the
// extracted regular files in archive order. Entries that would escape destDir
// and symlinks are skipped.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) ([]string, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	format, input, err := archives.Identify(ctx, archivePath, file)
	if err != nil {
		return nil, fmt.Errorf("identify archive: %w", err)
	}
	extractor, ok := format.(archives.Extractor)
	if !ok {
		return nil, fmt.Errorf("archive format %T does not support extraction", format)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}

	var bar *progressbar.ProgressBar
	if e.Progress != nil {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(e.Progress),
			progressbar.OptionSetDescription("Extracting "+filepath.Base(archivePath)),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
	}

	root := filepath.Clean(destDir) + string(os.PathSeparator)
	var extracted []string
	err = extractor.Extract(ctx, input, func(ctx context.Context, f archives.FileInfo) error {
		target := filepath.Clean(filepath.Join(destDir, f.NameInArchive))
		if !strings.HasPrefix(target+string(os.PathSeparator), root) {
			e.logger().Warn("archive entry escapes destination; skipped",
				logging.String("archive", archivePath),
				logging.String("entry", f.NameInArchive),
			)
			return nil
		}
		if f.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if f.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		if err := writeEntry(f, target); err != nil {
			return fmt.Errorf("extract %s: %w", f.NameInArchive, err)
		}
		extracted = append(extracted, target)
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return extracted, fmt.Errorf("extraction failed: %w", err)
	}
	return extracted, nil
}

func writeEntry(f archives.FileInfo, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	reader, err := f.Open()
	if err != nil {
		return err
	}
	defer reader.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	writer, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.CopyBuffer(writer, reader, make([]byte, copyBufferSize)); err != nil {
		writer.Close()
		os.Remove(target)
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	if mod := f.ModTime(); !mod.IsZero() {
		_ = os.Chtimes(target, time.Now(), mod)
	}
	return nil
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return logging.NewNop()
	}
	return e.Logger
}
