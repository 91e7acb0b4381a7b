package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"chdbatch/internal/chdman"
	"chdbatch/internal/cuesheet"
	"chdbatch/internal/logging"
)

const bytesPerMB = 1_000_000

// Invoker runs chdman and returns its exit code.
type Invoker interface {
	Run(ctx context.Context, inv chdman.Invocation) (int, error)
}

// Reporter receives progress lines.
type Reporter interface {
	Writef(format string, args ...any)
}

// SizeReport compares input and output sizes in whole megabytes.
type SizeReport struct {
	InputMB  int64
	OutputMB int64
}

// Delta is OutputMB minus InputMB.
func (s SizeReport) Delta() int64 {
	return s.OutputMB - s.InputMB
}

func (s SizeReport) String() string {
	return fmt.Sprintf("%d MB -> %d MB (%+d MB)", s.InputMB, s.OutputMB, s.Delta())
}

// Outcome records what happened to one input file.
type Outcome struct {
	Input    string
	Output   string
	Success  bool
	ExitCode int
	Size     *SizeReport
	Deleted  []string
	Err      error
}

// Result aggregates one run.
type Result struct {
	Operation Operation
	RunID     string
	Outcomes  []Outcome
	// Failures lists inputs that did not complete, in processing order.
	Failures []string
}

// Succeeded counts successful outcomes.
func (r Result) Succeeded() int {
	return len(r.Outcomes) - len(r.Failures)
}

// Runner executes operations. Tool and Out are required.
type Runner struct {
	Tool   Invoker
	Out    Reporter
	Logger *slog.Logger
}

// Execute processes files in order with settings. It never prompts; a
// failing file is recorded and processing moves on to the next one.
func (r *Runner) Execute(ctx context.Context, op Operation, settings Settings, files []string) Result {
	result := Result{Operation: op, RunID: uuid.NewString()}
	logger := logging.NewComponentLogger(r.Logger, "batch").With(
		logging.String(logging.FieldRunID, result.RunID),
		logging.String(logging.FieldOperation, op.Kind.String()),
	)
	logger.Info("batch started",
		logging.Int("files", len(files)),
		logging.Bool("delete_source", settings.DeleteSource),
		logging.Bool("relocate_parent", settings.RelocateToParent),
		logging.Bool("relocate_child", settings.RelocateToChild),
	)

	r.Out.Writef("Processing %d file(s)...\n", len(files))
	done := 0
	for _, input := range files {
		outcome := r.process(ctx, logger, op, settings, input)
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Success {
			done++
		} else {
			result.Failures = append(result.Failures, input)
		}
		r.Out.Writef("\nProgress: %d of %d done\n", done, len(files))
	}

	logger.Info("batch finished",
		logging.Int("succeeded", done),
		logging.Int("failed", len(result.Failures)),
	)
	return result
}

func (r *Runner) process(ctx context.Context, logger *slog.Logger, op Operation, settings Settings, input string) Outcome {
	outcome := Outcome{Input: input, ExitCode: -1}

	output := OutputPath(op, settings, input)
	outcome.Output = output

	created, err := ensureOutputDir(output)
	if err != nil {
		outcome.Err = err
		r.Out.Writef("Failed: %q (%v)", input, err)
		logging.ErrorWithContext(logger, "output directory unavailable", "batch_output_dir",
			logging.String("input", input),
			logging.Error(err),
		)
		return outcome
	}

	inputBytes := sizeWithSidecars(input)
	inv := chdman.Invocation{Subcommand: op.Subcommand, Flags: op.Flags, Input: input, Output: output}
	r.Out.Writef("\n%s", inv.String())

	code, err := r.Tool.Run(ctx, inv)
	outcome.ExitCode = code
	if err != nil || code != 0 {
		outcome.Err = err
		if created != "" {
			// os.Remove keeps a directory chdman already wrote into.
			_ = os.Remove(created)
		}
		if err != nil {
			r.Out.Writef("Failed: %q (%v)", input, err)
		} else {
			r.Out.Writef("Failed: %q (exit code %d)", input, code)
		}
		logging.WarnWithContext(logger, "chdman run failed", "batch_item_failed",
			logging.String("input", input),
			logging.Int("exit_code", code),
			logging.String(logging.FieldErrorHint, "run the printed command manually to see chdman's diagnostics"),
			logging.String(logging.FieldImpact, "file recorded as failed; batch continues"),
		)
		return outcome
	}
	outcome.Success = true

	if _, statErr := os.Stat(output); statErr == nil {
		report := SizeReport{
			InputMB:  inputBytes / bytesPerMB,
			OutputMB: sizeWithSidecars(output) / bytesPerMB,
		}
		outcome.Size = &report
		r.Out.Writef("%s: %s", filepath.Base(output), report)
	}

	if settings.DeleteSource {
		outcome.Deleted = r.deleteSource(logger, input, settings.RelocateToParent)
	}

	logger.Info("batch item complete",
		logging.String("input", input),
		logging.String("output", output),
		logging.Int("deleted", len(outcome.Deleted)),
	)
	return outcome
}

// OutputPath returns where op writes the result for input. It has no side
// effects; the child directory is created right before chdman runs.
func OutputPath(op Operation, settings Settings, input string) string {
	dir := filepath.Dir(input)
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name := base + op.OutputExt

	switch {
	case settings.RelocateToParent && op.AllowsParent:
		return filepath.Join(filepath.Dir(dir), name)
	case settings.RelocateToChild && op.AllowsChild:
		return filepath.Join(dir, base, name)
	default:
		return filepath.Join(dir, name)
	}
}

// ensureOutputDir creates the directory holding output when it is missing
// and returns it, or "" when it already existed.
func ensureOutputDir(output string) (string, error) {
	dir := filepath.Dir(output)
	if _, err := os.Stat(dir); err == nil {
		return "", nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("check output directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return dir, nil
}

// deleteSource removes the sidecars of input, then input itself, and with
// parent relocation the source directory once it is empty.
func (r *Runner) deleteSource(logger *slog.Logger, input string, relocated bool) []string {
	var deleted []string
	for _, path := range append(cuesheet.Sidecars(input), input) {
		if err := os.Remove(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logging.WarnWithContext(logger, "delete source failed", "batch_delete_failed",
					logging.String("path", path),
					logging.Error(err),
					logging.String(logging.FieldImpact, "source file left in place"),
				)
				r.Out.Writef("Could not delete %q: %v", path, err)
			}
			continue
		}
		deleted = append(deleted, path)
		r.Out.Writef("Deleted %q", path)
	}

	if relocated {
		dir := filepath.Dir(input)
		if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
			if err := os.Remove(dir); err == nil {
				deleted = append(deleted, dir)
				r.Out.Writef("Deleted %q", dir)
			}
		}
	}
	return deleted
}

// sizeWithSidecars returns the size of path plus any files it references.
func sizeWithSidecars(path string) int64 {
	total := fileSize(path)
	for _, sidecar := range cuesheet.Sidecars(path) {
		total += fileSize(sidecar)
	}
	return total
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0
	}
	return info.Size()
}
