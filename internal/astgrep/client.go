package astgrep

import (
	"context"
	"errors"
	"strings"
	"time"

	"sgmcp/internal/logging"
)

// Program is the external executable every invocation goes through.
const Program = "ast-grep"

// noErrorOutput substitutes for an empty stderr in failure reports.
const noErrorOutput = "(no error output)"

// Runner abstracts one ast-grep invocation so tool handlers can be tested
// with a stub instead of a real child process.
type Runner interface {
	// Run executes `ast-grep <subcommand> [--config <path>] <args...>`,
	// piping input to stdin when non-empty, and returns the buffered output
	// on success. Failures are *NotFoundError, *ExitError, *TimeoutError or
	// a generic wrapped I/O error.
	Run(ctx context.Context, subcommand string, args []string, input string) (*Result, error)
}

// Client runs the ast-grep binary and normalizes its ambiguous exit
// conventions into a single success-or-typed-failure outcome.
type Client struct {
	configPath string
	timeout    time.Duration
	logger     *logging.AppLogger
}

// NewClient creates a Client. configPath, when non-empty, is passed to every
// invocation as `--config <path>` right after the subcommand. timeout bounds
// each child process; zero disables the bound.
func NewClient(configPath string, timeout time.Duration, logger *logging.AppLogger) *Client {
	return &Client{
		configPath: configPath,
		timeout:    timeout,
		logger:     logger,
	}
}

// buildArgs assembles the full argument list for one invocation. The config
// flag goes immediately after the subcommand so it applies regardless of the
// caller-supplied flags.
func buildArgs(subcommand, configPath string, args []string) []string {
	full := make([]string, 0, len(args)+4)
	full = append(full, Program, subcommand)
	if configPath != "" {
		full = append(full, "--config", configPath)
	}
	return append(full, args...)
}

// Run implements Runner.
func (c *Client) Run(ctx context.Context, subcommand string, args []string, input string) (*Result, error) {
	full := buildArgs(subcommand, c.configPath, args)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	stdout, stderr, exitCode, err := runCommand(ctx, full, input)
	c.logger.LogPerformance(Program+" "+subcommand, start)

	if err != nil {
		var te *TimeoutError
		if errors.As(err, &te) {
			te.Timeout = c.timeout
		}
		c.logger.Error("ast-grep invocation failed", "subcommand", subcommand, "error", err)
		return nil, err
	}

	if classifySuccess(exitCode, stdout, hasJSONFlag(full)) {
		c.logger.Debug("ast-grep invocation succeeded",
			"subcommand", subcommand,
			"exitCode", exitCode,
			"stdoutBytes", len(stdout),
		)
		return &Result{Stdout: stdout, Stderr: stderr}, nil
	}

	trimmedErr := strings.TrimSpace(stderr)
	if trimmedErr == "" {
		trimmedErr = noErrorOutput
	}
	c.logger.Error("ast-grep exited with failure",
		"subcommand", subcommand,
		"exitCode", exitCode,
		"stderr", trimmedErr,
	)
	return nil, &ExitError{Args: full, Code: exitCode, Stderr: trimmedErr}
}
