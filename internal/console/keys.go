package console

import (
	"bufio"
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// Key is a navigation key decoded from terminal input.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	default:
		return "other"
	}
}

// ErrInterrupted is returned when Ctrl+C arrives while the terminal is raw.
var ErrInterrupted = errors.New("interrupted")

// KeySource yields one key per call.
type KeySource interface {
	ReadKey() (Key, error)
}

// KeyReader decodes keys from a buffered reader. When the reader is backed
// by a terminal it is switched to raw mode for the duration of each read so
// a single keypress is delivered without waiting for a newline.
type KeyReader struct {
	in  *bufio.Reader
	fd  int
	raw bool
}

// NewKeyReader reads keys from in. file identifies the terminal behind in
// and may be nil when input is not interactive.
func NewKeyReader(in *bufio.Reader, file *os.File) *KeyReader {
	k := &KeyReader{in: in, fd: -1}
	if file != nil && term.IsTerminal(int(file.Fd())) {
		k.fd = int(file.Fd())
		k.raw = true
	}
	return k
}

// ReadKey blocks until one key is available.
func (k *KeyReader) ReadKey() (Key, error) {
	if k.raw {
		state, err := term.MakeRaw(k.fd)
		if err == nil {
			defer func() { _ = term.Restore(k.fd, state) }()
		}
	}
	b, err := k.in.ReadByte()
	if err != nil {
		return KeyOther, err
	}
	switch b {
	case '\r':
		if !k.raw && k.in.Buffered() > 0 {
			if next, _ := k.in.Peek(1); len(next) == 1 && next[0] == '\n' {
				_, _ = k.in.ReadByte()
			}
		}
		return KeyEnter, nil
	case '\n':
		return KeyEnter, nil
	case 0x03:
		return KeyOther, ErrInterrupted
	case 0x1b:
		return k.escape()
	default:
		return KeyOther, nil
	}
}

// escape decodes CSI and SS3 arrow sequences (ESC [ A, ESC O A, ...). A lone
// ESC with nothing buffered behind it is reported as KeyOther.
func (k *KeyReader) escape() (Key, error) {
	if k.in.Buffered() == 0 {
		return KeyOther, nil
	}
	intro, err := k.in.ReadByte()
	if err != nil {
		return KeyOther, ignoreEOF(err)
	}
	if intro != '[' && intro != 'O' {
		return KeyOther, nil
	}
	for {
		final, err := k.in.ReadByte()
		if err != nil {
			return KeyOther, ignoreEOF(err)
		}
		if final < 0x40 || final > 0x7e {
			continue
		}
		switch final {
		case 'A':
			return KeyUp, nil
		case 'B':
			return KeyDown, nil
		case 'C':
			return KeyRight, nil
		case 'D':
			return KeyLeft, nil
		default:
			return KeyOther, nil
		}
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
