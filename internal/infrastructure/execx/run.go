// Package execx runs host commands for the bootstrap workflows.
//
// Run streams the child's stdio to the terminal, Capture buffers combined
// output for quiet probes and builds. On context cancellation the child is
// sent an interrupt first and killed only after domain.ProcessWaitDelay.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/doeshing/stackctl/internal/domain"
	"github.com/doeshing/stackctl/internal/ports"
)

// Runner implements ports.ProcessRunner on os/exec.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Dir    string
	// Debug echoes every command as "+ name args" to Stderr.
	Debug bool
}

// NewRunner returns a Runner bound to the process stdio.
func NewRunner(debug bool) *Runner {
	return &Runner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, Debug: debug}
}

// LookPath implements ports.ProcessRunner.
func (r *Runner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements ports.ProcessRunner.
func (r *Runner) Run(ctx context.Context, name string, args ...string) domain.CommandResult {
	cmd := r.command(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	err := cmd.Run()
	return result(ctx, err, "")
}

// Capture implements ports.ProcessRunner.
func (r *Runner) Capture(ctx context.Context, name string, args ...string) domain.CommandResult {
	cmd := r.command(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return result(ctx, err, buf.String())
}

func (r *Runner) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	if r.Debug && r.Stderr != nil {
		fmt.Fprintf(r.Stderr, "+ %s\n", strings.Join(append([]string{name}, args...), " "))
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Cancel = func() error {
		if runtime.GOOS == "windows" {
			return cmd.Process.Kill()
		}
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = domain.ProcessWaitDelay
	return cmd
}

func result(ctx context.Context, err error, output string) domain.CommandResult {
	code := 0
	if err != nil {
		var ee *exec.ExitError
		switch {
		case errors.As(err, &ee) && ee.ExitCode() >= 0:
			code = ee.ExitCode()
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			code = 124
		case ctx.Err() != nil:
			code = 130
		default:
			code = 1
		}
	}
	return domain.CommandResult{Code: code, Err: err, Output: output}
}

var _ ports.ProcessRunner = (*Runner)(nil)
