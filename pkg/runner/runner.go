// Package runner executes external programs (the diff tool and git) with
// the terminal's standard streams attached. Commands have no timeout: a
// tool that waits for input blocks the invocation, exactly like running it
// by hand.
package runner

import (
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner runs a command in dir. An empty dir uses the current directory.
type Runner interface {
	Run(dir, name string, args ...string) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	logger zerolog.Logger
}

// New creates a runner attached to the process's standard streams
func New() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logging.GetLogger("runner"),
	}
}

// Run starts the command and waits for it. A command that runs but exits
// non-zero returns an ErrCommandFailed error carrying the exit code; see
// ExitCode.
func (r *ExecRunner) Run(dir, name string, args ...string) error {
	r.logger.Info().
		Str("command", name).
		Strs("args", args).
		Str("workingDir", dir).
		Msg("Executing command")

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		r.logger.Debug().Err(err).Str("command", name).Msg("Command failed")

		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			return errors.Wrapf(err, errors.ErrCommandFailed, "%s exited with status %d", name, exitErr.ExitCode()).
				WithDetail("exit_code", exitErr.ExitCode())
		}
		return errors.Wrapf(err, errors.ErrCommandFailed, "failed to execute command: %s", name)
	}
	return nil
}

// ExitCode returns the exit status of a command that ran to completion
// and failed. ok is false when the command never started.
func ExitCode(err error) (code int, ok bool) {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

// DefaultDiffCommand is used when no diff command is configured
var DefaultDiffCommand = []string{"diff", "-u", "--color"}

// ParseCommand splits a command line on whitespace
func ParseCommand(line string) ([]string, error) {
	argv := strings.Fields(line)
	if len(argv) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "empty diff command")
	}
	return argv, nil
}
