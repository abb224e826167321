package astgrep

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix shell utilities")
	}
}

func TestRunCommandCapturesStreams(t *testing.T) {
	requireUnix(t)

	stdout, stderr, code, err := runCommand(context.Background(),
		[]string{"sh", "-c", "echo out; echo err >&2"}, "")

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "out\n", stdout)
	assert.Equal(t, "err\n", stderr)
}

func TestRunCommandReportsExitCode(t *testing.T) {
	requireUnix(t)

	_, _, code, err := runCommand(context.Background(),
		[]string{"sh", "-c", "exit 3"}, "")

	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestRunCommandPipesStdin(t *testing.T) {
	requireUnix(t)

	stdout, _, code, err := runCommand(context.Background(),
		[]string{"cat"}, "hello from stdin")

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello from stdin", stdout)
}

func TestRunCommandToleratesBrokenPipe(t *testing.T) {
	requireUnix(t)

	// The child reads one byte and exits; the remaining write hits a closed
	// pipe and must be swallowed, not surfaced.
	big := strings.Repeat("x", 1<<20)
	stdout, _, code, err := runCommand(context.Background(),
		[]string{"head", "-c", "1"}, big)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "x", stdout)
}

func TestRunCommandNotFound(t *testing.T) {
	_, _, _, err := runCommand(context.Background(),
		[]string{"definitely-not-a-real-binary-xyz"}, "")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "definitely-not-a-real-binary-xyz", notFound.Name)
	assert.Contains(t, err.Error(), "not found")
}

func TestRunCommandEmptyArgs(t *testing.T) {
	_, _, _, err := runCommand(context.Background(), nil, "")
	require.Error(t, err)
}

func TestRunCommandTimeout(t *testing.T) {
	requireUnix(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, _, err := runCommand(ctx, []string{"sleep", "5"}, "")

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, []string{"sleep", "5"}, timeout.Args)
}

func TestRunCommandReplacesInvalidUTF8(t *testing.T) {
	requireUnix(t)

	stdout, _, _, err := runCommand(context.Background(),
		[]string{"sh", "-c", `printf 'a\377b'`}, "")

	require.NoError(t, err)
	assert.Equal(t, "a�b", stdout)
}

func TestErrorTypesAreDistinct(t *testing.T) {
	exit := &ExitError{Args: []string{"ast-grep", "run"}, Code: 2, Stderr: "boom"}
	assert.Contains(t, exit.Error(), "exit code 2")
	assert.Contains(t, exit.Error(), "boom")

	notFound := &NotFoundError{Name: "ast-grep"}
	assert.Contains(t, notFound.Error(), "ast-grep")

	var asExit *ExitError
	assert.False(t, errors.As(error(notFound), &asExit))
}
