package chdman

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"chdbatch/internal/logging"
)

// Invocation describes one chdman run.
type Invocation struct {
	Subcommand string
	Flags      []string
	Input      string
	Output     string
}

// Args returns the argument vector: <subcommand> [flags] -i <input> -o <output>.
func (i Invocation) Args() []string {
	args := make([]string, 0, len(i.Flags)+5)
	args = append(args, i.Subcommand)
	args = append(args, i.Flags...)
	return append(args, "-i", i.Input, "-o", i.Output)
}

// String renders the invocation as a command line with quoted paths, the
// form shown to the user and written to the log.
func (i Invocation) String() string {
	parts := append([]string{i.Subcommand}, i.Flags...)
	parts = append(parts, "-i", `"`+i.Input+`"`, "-o", `"`+i.Output+`"`)
	return strings.Join(parts, " ")
}

// Executor abstracts process execution for testability. It returns the
// process exit code; err is reserved for failures to start or wait on the
// process.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, stdout, stderr io.Writer) (int, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithOutput forwards chdman's own progress output to the given writers.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Client) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithLogger attaches a logger for invocation records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "chdman")
	}
}

// Client wraps chdman CLI interactions.
type Client struct {
	binary string
	exec   Executor
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// New constructs a chdman client for the executable at binary.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, Wrap(ErrConfiguration, "client", "chdman binary required", nil)
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Run executes inv synchronously and returns chdman's exit code. No timeout
// is applied; conversions of large images legitimately take a long time.
func (c *Client) Run(ctx context.Context, inv Invocation) (int, error) {
	c.logger.Info("chdman invoked",
		logging.String(logging.FieldOperation, inv.Subcommand),
		logging.String("command", inv.String()),
	)
	code, err := c.exec.Run(ctx, c.binary, inv.Args(), c.stdout, c.stderr)
	if err != nil {
		logging.ErrorWithContext(c.logger, "chdman failed to run", "chdman_start_failed",
			logging.String("binary", c.binary),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify the chdman path is executable"),
		)
		return code, Wrap(ErrExternalTool, inv.Subcommand, "run chdman", err)
	}
	c.logger.Info("chdman exited",
		logging.String(logging.FieldOperation, inv.Subcommand),
		logging.String("input", inv.Input),
		logging.Int("exit_code", code),
	)
	return code, nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("start command: %w", err)
}
