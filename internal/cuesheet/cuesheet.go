// Package cuesheet finds the data files a disc-image index refers to.
//
// A CUE sheet names its BIN files on "FILE" lines and a GDI index lists one
// track file per line. Both are plain text; references that are malformed or
// point at files that do not exist are ignored rather than reported.
package cuesheet

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// BinFiles returns the existing files referenced by FILE "<name>" lines in
// the CUE sheet at cuePath, resolved against the sheet's directory.
func BinFiles(cuePath string) []string {
	lines, err := readLines(cuePath)
	if err != nil {
		return nil
	}
	dir := filepath.Dir(cuePath)
	var out []string
	for _, line := range lines {
		if !strings.Contains(line, "FILE ") {
			continue
		}
		name, ok := quoted(line)
		if !ok {
			continue
		}
		out = appendExisting(out, dir, name)
	}
	return out
}

// TrackFiles returns the existing track files listed in the GDI index at
// gdiPath. The first line holds the track count; each following line is
// "<track> <lba> <type> <sector size> <file> <offset>" where file may be
// double-quoted when it contains spaces.
func TrackFiles(gdiPath string) []string {
	lines, err := readLines(gdiPath)
	if err != nil || len(lines) < 2 {
		return nil
	}
	dir := filepath.Dir(gdiPath)
	var out []string
	for _, line := range lines[1:] {
		if name, ok := quoted(line); ok {
			out = appendExisting(out, dir, name)
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		out = appendExisting(out, dir, fields[4])
	}
	return out
}

// Sidecars returns the data files that belong with an index file: BIN files
// for a CUE sheet, track files for a GDI. Other files have none.
func Sidecars(path string) []string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return BinFiles(path)
	case ".gdi":
		return TrackFiles(path)
	default:
		return nil
	}
}

func quoted(line string) (string, bool) {
	parts := strings.Split(line, `"`)
	if len(parts) < 3 || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return parts[1], true
}

func appendExisting(out []string, dir, name string) []string {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, name)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return out
	}
	for _, existing := range out {
		if existing == path {
			return out
		}
	}
	return append(out, path)
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}
