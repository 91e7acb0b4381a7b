package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chdbatch/internal/fileset"
)

// Filter inspects a raw line before it is parsed. Consume reports whether the
// line was handled and must not be interpreted as data.
type Filter interface {
	Consume(line string) bool
}

// Resolver reads typed values from line-oriented input.
type Resolver struct {
	in      *bufio.Reader
	out     io.Writer
	filters []Filter
}

// New builds a Resolver reading from in and prompting on out.
func New(in io.Reader, out io.Writer, filters ...Filter) *Resolver {
	if out == nil {
		out = io.Discard
	}
	return &Resolver{in: bufio.NewReader(in), out: out, filters: filters}
}

// Default returns a pointer to v, for use as a getter default.
func Default[T any](v T) *T {
	return &v
}

// Line prompts for typeLabel and returns the trimmed line. The boolean is
// false when a filter consumed the line.
func (r *Resolver) Line(typeLabel, def string) (string, bool) {
	fmt.Fprintf(r.out, "\nInput (%s):\n-> ", typeLabel)
	if def != "" {
		fmt.Fprintf(r.out, "[%s] ", def)
	}
	raw, err := r.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		raw = ""
	}
	line := strings.TrimSpace(raw)
	for _, f := range r.filters {
		if f != nil && f.Consume(line) {
			return "", false
		}
	}
	return line, true
}

// Bool reads a boolean using strconv.ParseBool rules.
func (r *Resolver) Bool(def *bool) (bool, bool) {
	return parsed(r, "Boolean", def, strconv.ParseBool)
}

// Int reads a base-10 integer.
func (r *Resolver) Int(def *int) (int, bool) {
	return parsed(r, "Integer", def, strconv.Atoi)
}

// Float reads any number strconv.ParseFloat accepts.
func (r *Resolver) Float(def *float64) (float64, bool) {
	return parsed(r, "Float", def, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// Decimal reads a plain decimal number: optional sign, digits and at most one
// point. Exponents, hex and special values are rejected.
func (r *Resolver) Decimal(def *float64) (float64, bool) {
	return parsed(r, "Decimal", def, parseDecimal)
}

// String returns the trimmed line, or the default when it is empty.
func (r *Resolver) String(def *string) (string, bool) {
	line, ok := r.Line("String", deref(def))
	if !ok || line == "" {
		return fallback(def)
	}
	return line, true
}

// File returns the entered path when it names an existing regular file.
func (r *Resolver) File(def *string) (string, bool) {
	return r.path("File", def, func(info os.FileInfo) bool { return !info.IsDir() })
}

// Directory returns the entered path when it names an existing directory.
func (r *Resolver) Directory(def *string) (string, bool) {
	return r.path("Directory", def, func(info os.FileInfo) bool { return info.IsDir() })
}

// Paths reads a whitespace separated list in which double quotes group a
// token. Existing files are kept, existing directories contribute every file
// beneath them, and anything else is dropped silently. An empty line selects
// def, which may itself be a directory. The result is unresolved only when no
// tokens were entered and there is no default.
func (r *Resolver) Paths(def *string) ([]string, bool) {
	line, ok := r.Line("Files", deref(def))
	tokens := Tokenize(line)
	if !ok || len(tokens) == 0 {
		if def == nil {
			return nil, false
		}
		tokens = []string{*def}
	}
	return ExpandPaths(tokens), true
}

// ExpandPaths resolves tokens to files as Paths does.
func ExpandPaths(tokens []string) []string {
	var out []string
	for _, token := range tokens {
		info, err := os.Stat(token)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			out = append(out, token)
			continue
		}
		// Unreadable subdirectories are skipped; whatever was reachable is kept.
		files, _ := fileset.Walk(token)
		out = append(out, files...)
	}
	return out
}

// Tokenize splits line on whitespace, keeping double-quoted segments intact.
// The quote characters themselves are removed.
func Tokenize(line string) []string {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, ch := range line {
		switch {
		case ch == '"':
			quoted = !quoted
		case !quoted && (ch == ' ' || ch == '\t'):
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()
	return tokens
}

func (r *Resolver) path(label string, def *string, accept func(os.FileInfo) bool) (string, bool) {
	line, ok := r.Line(label, deref(def))
	if !ok {
		return fallback(def)
	}
	candidate := strings.TrimSpace(strings.ReplaceAll(line, `"`, ""))
	if candidate == "" {
		return fallback(def)
	}
	info, err := os.Stat(candidate)
	if err != nil || !accept(info) {
		return fallback(def)
	}
	return candidate, true
}

func parsed[T any](r *Resolver, label string, def *T, parse func(string) (T, error)) (T, bool) {
	line, ok := r.Line(label, defaultText(def))
	if !ok || line == "" {
		return fallback(def)
	}
	value, err := parse(line)
	if err != nil {
		return fallback(def)
	}
	return value, true
}

func parseDecimal(s string) (float64, error) {
	body := strings.TrimLeft(s, "+-")
	if len(s)-len(body) > 1 || body == "" || body == "." {
		return 0, strconv.ErrSyntax
	}
	points := 0
	for _, ch := range body {
		switch {
		case ch == '.':
			points++
		case ch < '0' || ch > '9':
			return 0, strconv.ErrSyntax
		}
	}
	if points > 1 {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

func fallback[T any](def *T) (T, bool) {
	if def == nil {
		var zero T
		return zero, false
	}
	return *def, true
}

func defaultText[T any](def *T) string {
	if def == nil {
		return ""
	}
	return fmt.Sprint(*def)
}

func deref(def *string) string {
	if def == nil {
		return ""
	}
	return *def
}
