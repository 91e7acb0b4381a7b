package input_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"chdbatch/internal/input"
	"chdbatch/internal/testsupport"
)

func newResolver(lines string, filters ...input.Filter) (*input.Resolver, *bytes.Buffer) {
	var out bytes.Buffer
	return input.New(strings.NewReader(lines), &out, filters...), &out
}

func TestMalformedNumbersReturnDefault(t *testing.T) {
	for _, raw := range []string{"abc", "12x", "1.2.3", "--4", "0x10", " "} {
		r, _ := newResolver(raw + "\n" + raw + "\n" + raw + "\n")
		if got, ok := r.Int(input.Default(42)); !ok || got != 42 {
			t.Fatalf("Int(%q) = %d, %v; want default", raw, got, ok)
		}
		if got, ok := r.Decimal(input.Default(1.5)); !ok || got != 1.5 {
			t.Fatalf("Decimal(%q) = %v, %v; want default", raw, got, ok)
		}
		if got, ok := r.Bool(input.Default(true)); !ok || !got {
			t.Fatalf("Bool(%q) = %v, %v; want default", raw, got, ok)
		}
	}
}

func TestMalformedWithoutDefaultIsUnresolved(t *testing.T) {
	r, _ := newResolver("nope\n")
	if _, ok := r.Int(nil); ok {
		t.Fatal("expected unresolved integer")
	}
}

func TestTypedGettersParse(t *testing.T) {
	r, _ := newResolver("17\nfalse\n2.5e1\n-3.25\n  hello world  \n")
	if v, ok := r.Int(nil); !ok || v != 17 {
		t.Fatalf("Int = %d, %v", v, ok)
	}
	if v, ok := r.Bool(input.Default(true)); !ok || v {
		t.Fatalf("Bool = %v, %v", v, ok)
	}
	if v, ok := r.Float(nil); !ok || v != 25 {
		t.Fatalf("Float = %v, %v", v, ok)
	}
	if v, ok := r.Decimal(nil); !ok || v != -3.25 {
		t.Fatalf("Decimal = %v, %v", v, ok)
	}
	if v, ok := r.String(nil); !ok || v != "hello world" {
		t.Fatalf("String = %q, %v", v, ok)
	}
}

func TestDecimalRejectsExponent(t *testing.T) {
	r, _ := newResolver("1e3\n")
	if v, ok := r.Decimal(input.Default(7.0)); !ok || v != 7 {
		t.Fatalf("Decimal = %v, %v; want default", v, ok)
	}
}

func TestStringEmptyUsesDefault(t *testing.T) {
	r, _ := newResolver("\n")
	if v, ok := r.String(input.Default("fallback")); !ok || v != "fallback" {
		t.Fatalf("String = %q, %v", v, ok)
	}
}

func TestEOFBehavesAsEmptyLine(t *testing.T) {
	r, _ := newResolver("")
	if v, ok := r.Int(input.Default(3)); !ok || v != 3 {
		t.Fatalf("Int at EOF = %d, %v", v, ok)
	}
	if v, ok := r.String(nil); ok || v != "" {
		t.Fatalf("String at EOF = %q, %v", v, ok)
	}
}

func TestPromptShowsTypeAndDefault(t *testing.T) {
	r, out := newResolver("\n")
	r.Int(input.Default(5))
	if got := out.String(); got != "\nInput (Integer):\n-> [5] " {
		t.Fatalf("unexpected prompt %q", got)
	}
}

type recordingFilter struct {
	seen []string
}

func (f *recordingFilter) Consume(line string) bool {
	f.seen = append(f.seen, line)
	return line == "!log"
}

func TestFilterConsumesBeforeParsing(t *testing.T) {
	filter := &recordingFilter{}
	r, _ := newResolver("!log\n!log\n12\n", filter)
	if v, ok := r.Int(input.Default(9)); !ok || v != 9 {
		t.Fatalf("consumed line with default = %d, %v", v, ok)
	}
	if _, ok := r.Int(nil); ok {
		t.Fatal("consumed line without default should be unresolved")
	}
	if v, ok := r.Int(nil); !ok || v != 12 {
		t.Fatalf("Int = %d, %v", v, ok)
	}
	if !slices.Equal(filter.seen, []string{"!log", "!log", "12"}) {
		t.Fatalf("filter saw %v", filter.seen)
	}
}

func TestFileAndDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "game disc.iso")
	testsupport.WriteFile(t, file, 10)

	r, _ := newResolver(`"` + file + `"` + "\n" + dir + "\n" + dir + "\n" + filepath.Join(dir, "missing") + "\n")
	if v, ok := r.File(nil); !ok || v != file {
		t.Fatalf("File = %q, %v", v, ok)
	}
	if v, ok := r.Directory(nil); !ok || v != dir {
		t.Fatalf("Directory = %q, %v", v, ok)
	}
	if _, ok := r.File(nil); ok {
		t.Fatal("a directory must not resolve as a file")
	}
	if v, ok := r.Directory(input.Default("/fallback")); !ok || v != "/fallback" {
		t.Fatalf("missing directory = %q, %v", v, ok)
	}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{`a b  c`, []string{"a", "b", "c"}},
		{`"C:\My Games\disc 1.cue" other.iso`, []string{`C:\My Games\disc 1.cue`, "other.iso"}},
		{`"/a b/c""/d e"`, []string{"/a b/c/d e"}},
		{`""  `, nil},
		{"\tone\t\"two three\"", []string{"one", "two three"}},
	}
	for _, tc := range cases {
		if got := input.Tokenize(tc.line); !slices.Equal(got, tc.want) {
			t.Fatalf("Tokenize(%q) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestPathsExpandsDirectoriesAndDropsMissing(t *testing.T) {
	root := t.TempDir()
	loose := filepath.Join(root, "loose file.iso")
	testsupport.WriteFile(t, loose, 1)
	tree := filepath.Join(root, "tree")
	nestedA := filepath.Join(tree, "a.cue")
	nestedB := filepath.Join(tree, "sub", "b.bin")
	testsupport.WriteFile(t, nestedA, 1)
	testsupport.WriteFile(t, nestedB, 1)

	line := `"` + loose + `" ` + filepath.Join(root, "ghost.chd") + " " + tree + "\n"
	r, _ := newResolver(line)
	got, ok := r.Paths(nil)
	want := []string{loose, nestedA, nestedB}
	if !ok || !slices.Equal(got, want) {
		t.Fatalf("Paths = %v, %v; want %v", got, ok, want)
	}
}

func TestPathsEmptyLineUsesDefaultDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a", "disc.chd")
	testsupport.WriteFile(t, file, 1)

	r, _ := newResolver("\n\n")
	got, ok := r.Paths(input.Default(root))
	if !ok || !slices.Equal(got, []string{file}) {
		t.Fatalf("Paths with default = %v, %v", got, ok)
	}
	if got, ok := r.Paths(nil); ok || got != nil {
		t.Fatalf("Paths without default = %v, %v; want unresolved", got, ok)
	}
}

func TestPathsAllMissingIsEmptyButResolved(t *testing.T) {
	r, _ := newResolver(filepath.Join(t.TempDir(), "ghost.iso") + "\n")
	got, ok := r.Paths(nil)
	if !ok || len(got) != 0 {
		t.Fatalf("Paths = %v, %v; want empty resolved list", got, ok)
	}
}

func TestExpandPathsKeepsReadableFilesWhenWalkFails(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs POSIX permissions enforced for the current user")
	}
	dir := t.TempDir()
	readable := filepath.Join(dir, "a.iso")
	testsupport.WriteFile(t, readable, 1)
	locked := filepath.Join(dir, "locked")
	testsupport.WriteFile(t, filepath.Join(locked, "b.iso"), 1)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	got := input.ExpandPaths([]string{dir})
	if !slices.Equal(got, []string{readable}) {
		t.Fatalf("expected the readable file to survive a partial walk, got %v", got)
	}
}
