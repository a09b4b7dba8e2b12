// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner executes the external site build command.
// A build that cannot start or exits non-zero is reported as a *BuildError;
// there are no retries.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrEmptyCommand is returned when no build command is configured.
var ErrEmptyCommand = errors.New("empty build command")

// exitNotStarted is the ExitCode of a BuildError for a process that never ran
// to completion (missing binary, timeout, launch failure).
const exitNotStarted = -1

// BuildError describes a failed build invocation.
type BuildError struct {
	Command []string

	// ExitCode is the process exit status, or -1 if the process could not
	// be started or was killed.
	ExitCode int
	Err      error
}

func (e *BuildError) Error() string {
	cmd := strings.Join(e.Command, " ")
	if e.ExitCode == exitNotStarted {
		return fmt.Sprintf("build %q failed: %v", cmd, e.Err)
	}
	return fmt.Sprintf("build %q exited with status %d: %v", cmd, e.ExitCode, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Started reports whether the build process ran and exited on its own.
func (e *BuildError) Started() bool { return e.ExitCode != exitNotStarted }

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, dir string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, dir string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = 5 * time.Second
	return cmd.Run()
}

// Runner runs build commands synchronously, forwarding their output.
type Runner struct {
	exec   executor
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger
}

// New returns a Runner that forwards the build's stdout and stderr to the
// given writers. A nil logger disables diagnostic logging.
func New(stdout, stderr io.Writer, log *zap.Logger) *Runner {
	return newRunner(&osExecutor{}, stdout, stderr, log)
}

func newRunner(exec executor, stdout, stderr io.Writer, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &Runner{exec: exec, stdout: stdout, stderr: stderr, log: log}
}

// Run executes command in dir and blocks until it exits. The context bounds
// the process lifetime; cancellation kills it and is reported as a
// BuildError.
func (r *Runner) Run(ctx context.Context, command []string, dir string) error {
	if len(command) == 0 {
		return &BuildError{ExitCode: exitNotStarted, Err: ErrEmptyCommand}
	}

	bin := command[0]
	if _, err := r.exec.LookPath(bin); err != nil {
		return &BuildError{
			Command:  command,
			ExitCode: exitNotStarted,
			Err:      fmt.Errorf("locating %s: %w", bin, err),
		}
	}

	r.log.Debug("starting build", zap.Strings("command", command), zap.String("dir", dir))
	start := time.Now()

	err := r.exec.Run(ctx, bin, command[1:], dir, r.stdout, r.stderr)
	elapsed := time.Since(start)
	if err == nil {
		r.log.Debug("build finished", zap.Duration("elapsed", elapsed))
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		r.log.Warn("build aborted", zap.Duration("elapsed", elapsed), zap.Error(ctxErr))
		return &BuildError{Command: command, ExitCode: exitNotStarted, Err: fmt.Errorf("build aborted: %w", ctxErr)}
	}

	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) && coded.ExitCode() >= 0 {
		r.log.Warn("build failed", zap.Int("exit_code", coded.ExitCode()), zap.Duration("elapsed", elapsed))
		return &BuildError{Command: command, ExitCode: coded.ExitCode(), Err: err}
	}

	r.log.Warn("build could not start", zap.Error(err))
	return &BuildError{Command: command, ExitCode: exitNotStarted, Err: err}
}
