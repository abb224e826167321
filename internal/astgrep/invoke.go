package astgrep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
	"time"
)

// Result holds the buffered output of a completed tool invocation.
type Result struct {
	Stdout string
	Stderr string
}

// NotFoundError indicates the external program is not installed or not on PATH.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command '%s' not found. Please ensure %s is installed and in PATH", e.Name, e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ExitError indicates the external process exited with a code not classified
// as success. It carries the full argument list for diagnostics.
type ExitError struct {
	Args   []string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d: %s", e.Args, e.Code, e.Stderr)
}

// TimeoutError indicates the external process was killed after exceeding the
// configured deadline.
type TimeoutError struct {
	Args    []string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q timed out after %s", e.Args, e.Timeout)
}

// runCommand spawns args[0] with the remaining arguments, optionally piping
// input to its stdin, and buffers stdout/stderr until the process exits.
//
// The returned exit code is only meaningful when err is nil. A broken pipe
// while writing stdin is tolerated: the child may close stdin after reading
// what it needs. Invalid UTF-8 in the output streams is replaced, not fatal.
func runCommand(ctx context.Context, args []string, input string) (stdout, stderr string, exitCode int, err error) {
	if len(args) == 0 {
		return "", "", 0, errors.New("empty command args")
	}
	program := args[0]

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" && program == Program {
		// ast-grep is commonly installed as a .cmd shim on Windows, which
		// cannot be spawned directly.
		cmd = exec.CommandContext(ctx, "cmd", append([]string{"/C", program}, args[1:]...)...)
	} else {
		cmd = exec.CommandContext(ctx, program, args[1:]...)
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	var stdin io.WriteCloser
	if input != "" {
		stdin, err = cmd.StdinPipe()
		if err != nil {
			return "", "", 0, fmt.Errorf("failed to open stdin pipe: %w", err)
		}
	}

	if err = cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", 0, &NotFoundError{Name: program, Err: err}
		}
		return "", "", 0, fmt.Errorf("failed to spawn %s: %w", program, err)
	}

	if stdin != nil {
		_, werr := io.WriteString(stdin, input)
		cerr := stdin.Close()
		if werr != nil && !errors.Is(werr, syscall.EPIPE) {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return "", "", 0, fmt.Errorf("failed to write stdin: %w", werr)
		}
		if werr == nil && cerr != nil && !errors.Is(cerr, syscall.EPIPE) {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return "", "", 0, fmt.Errorf("failed to close stdin: %w", cerr)
		}
	}

	waitErr := cmd.Wait()

	stdout = strings.ToValidUTF8(outBuf.String(), "�")
	stderr = strings.ToValidUTF8(errBuf.String(), "�")

	if waitErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", "", 0, &TimeoutError{Args: args}
		}
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return "", "", 0, fmt.Errorf("failed waiting for %s: %w", program, waitErr)
		}
	}

	exitCode = cmd.ProcessState.ExitCode()
	if exitCode < 0 {
		// Killed by signal: no exit code, treat as a generic failure code.
		exitCode = 1
	}
	return stdout, stderr, exitCode, nil
}
