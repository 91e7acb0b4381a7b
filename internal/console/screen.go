package console

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"chdbatch/internal/logging"
)

// DefaultWidth is the header and menu width in columns.
const DefaultWidth = 56

const clearSequence = "\033[H\033[2J"

// Options configures a Screen.
type Options struct {
	Out   io.Writer
	Width int
	// Color is "auto", "always" or "never".
	Color  string
	Keys   KeySource
	Logger *slog.Logger
}

// Screen writes the session UI.
type Screen struct {
	out    io.Writer
	width  int
	keys   KeySource
	logger *slog.Logger
	title  cases.Caser

	plain   *color.Color
	errorC  *color.Color
	warnC   *color.Color
	invert  *color.Color
	dimmed  *color.Color
	success *color.Color
}

// NewScreen builds a Screen from opts.
func NewScreen(opts Options) *Screen {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	s := &Screen{
		out:     out,
		width:   width,
		keys:    opts.Keys,
		logger:  logging.NewComponentLogger(opts.Logger, "console"),
		title:   cases.Title(language.English, cases.NoLower),
		plain:   color.New(color.Reset),
		errorC:  color.New(color.FgRed),
		warnC:   color.New(color.FgYellow),
		invert:  color.New(color.ReverseVideo),
		dimmed:  color.New(color.FgHiBlack),
		success: color.New(color.FgGreen),
	}
	enabled := colorEnabled(opts.Color, out)
	for _, c := range []*color.Color{s.plain, s.errorC, s.warnC, s.invert, s.dimmed, s.success} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func colorEnabled(mode string, out io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Out exposes the underlying writer for components that stream raw output.
func (s *Screen) Out() io.Writer {
	return s.out
}

// Width returns the configured width in columns.
func (s *Screen) Width() int {
	return s.width
}

// Clear wipes the terminal.
func (s *Screen) Clear() {
	fmt.Fprint(s.out, clearSequence)
}

// Header prints title centred between runs of "=".
func (s *Screen) Header(title string, clear bool) {
	s.header(title, clear, "=", s.plain)
}

func (s *Screen) header(title string, clear bool, pad string, c *color.Color) {
	if clear {
		s.Clear()
	}
	text := s.title.String(title)
	padding := max((s.width-(len(text)+2))/2, 0)
	fill := strings.Repeat(pad, padding)
	fmt.Fprintln(s.out)
	c.Fprintln(s.out, fill+" "+text+" "+fill)
	fmt.Fprintln(s.out)
}

// Write prints a line of text.
func (s *Screen) Write(text string) {
	fmt.Fprintln(s.out, text)
}

// Writef prints a formatted line.
func (s *Screen) Writef(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

// Success prints a line in the success color.
func (s *Screen) Success(text string) {
	s.success.Fprintln(s.out, text)
}

// Error clears the screen, shows description under a red header, records
// it in the log and waits for a key.
func (s *Screen) Error(description string) {
	s.header("error", true, "/", s.errorC)
	s.errorC.Fprintln(s.out, description)
	logging.ErrorWithContext(s.logger, description, "error_screen",
		logging.String(logging.FieldErrorHint, "see the message shown on screen"),
	)
	s.Pause()
}

// Warning shows description under a yellow header without clearing what is
// already on screen, records it in the log and waits for a key.
func (s *Screen) Warning(description string) {
	s.header("warning", false, "/", s.warnC)
	s.warnC.Fprintln(s.out, description)
	logging.WarnWithContext(s.logger, description, "warning_screen",
		logging.String(logging.FieldImpact, "processing continues"),
	)
	s.Pause()
}

// Pause waits for any key.
func (s *Screen) Pause() {
	fmt.Fprint(s.out, "\nPress any key to continue...")
	if s.keys != nil {
		_, _ = s.keys.ReadKey()
	}
	fmt.Fprintln(s.out)
}

// Inverted renders text with swapped foreground and background colors.
func (s *Screen) Inverted(text string) string {
	return s.invert.Sprint(text)
}

// Dim renders text in the secondary color used for description panels.
func (s *Screen) Dim(text string) string {
	return s.dimmed.Sprint(text)
}
