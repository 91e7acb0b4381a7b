package logging

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Reserved console commands that manage the session log.
const (
	CommandOpenLog   = "!log"
	CommandDeleteLog = "!logdel"
)

// LogFile manages the on-disk session log from the console.
type LogFile struct {
	Path string
	// Opener launches a viewer for path. Nil uses the platform default.
	Opener func(path string) error
}

// Exists reports whether the log file is present.
func (l LogFile) Exists() bool {
	info, err := os.Stat(l.Path)
	return err == nil && !info.IsDir()
}

// Open hands the log file to an external viewer.
func (l LogFile) Open() error {
	if !l.Exists() {
		return fmt.Errorf("%q does not exist: %w", filepath.Base(l.Path), fs.ErrNotExist)
	}
	opener := l.Opener
	if opener == nil {
		opener = platformOpen
	}
	return opener(l.Path)
}

// Delete removes the log file. A missing file is not an error.
func (l LogFile) Delete() error {
	if err := os.Remove(l.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete log file: %w", err)
	}
	return nil
}

func platformOpen(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("notepad.exe", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

// Commands recognises the reserved log commands in raw console input. It is
// installed as a pre-parse filter so typed input getters never see them.
type Commands struct {
	File LogFile
	Out  io.Writer
	// Pause is called after a command ran so its output stays readable.
	Pause func()
}

// Consume executes line if it is a reserved command and reports whether it
// was consumed.
func (c Commands) Consume(line string) bool {
	switch strings.TrimSpace(line) {
	case CommandOpenLog:
		c.say("Attempting to open log file...")
		if err := c.File.Open(); err != nil {
			c.say(fmt.Sprintf("%q could not be opened: %v", filepath.Base(c.File.Path), err))
		}
	case CommandDeleteLog:
		if c.File.Exists() {
			if err := c.File.Delete(); err != nil {
				c.say(err.Error())
			} else {
				c.say(fmt.Sprintf("Deleted %q", filepath.Base(c.File.Path)))
			}
		} else {
			c.say(fmt.Sprintf("%q does not exist!", filepath.Base(c.File.Path)))
		}
	default:
		return false
	}
	if c.Pause != nil {
		c.Pause()
	}
	return true
}

func (c Commands) say(text string) {
	if c.Out == nil {
		return
	}
	fmt.Fprintf(c.Out, "chdbatch: %s\n", text)
}
