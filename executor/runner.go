package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"time"
)

// Per-call execution failure kinds. Both carry remediation hints when
// wrapped by the runner.
var (
	ErrTimeout            = errors.New("query timed out")
	ErrExecutableNotFound = errors.New("es.exe not found")
)

type runOutput struct {
	stdout string
	stderr string
	exit   int
}

type runner interface {
	Run(ctx context.Context, argv []string) (runOutput, error)
}

// ProcessRunner executes one argument vector per call as a child process.
// Arguments are always passed as a discrete vector, never through a
// shell. A wall-clock timeout bounds every call; when it fires the child
// is killed before the timeout error propagates, so no process outlives
// its call.
type ProcessRunner struct {
	timeout time.Duration
	log     *slog.Logger
}

func NewProcessRunner(timeout time.Duration, logger *slog.Logger) *ProcessRunner {
	return &ProcessRunner{timeout: timeout, log: logger}
}

func (r *ProcessRunner) Run(ctx context.Context, argv []string) (runOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Bound the post-kill wait for pipe teardown so a wedged child
	// cannot hang the call past its deadline.
	cmd.WaitDelay = 3 * time.Second

	r.log.Debug("exec es", "args", argv[1:])
	err := cmd.Run()

	out := runOutput{
		stdout: decodeOutput(stdout.Bytes()),
		stderr: decodeOutput(stderr.Bytes()),
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return out, fmt.Errorf("%w after %s; try a more specific query or increase the timeout",
				ErrTimeout, r.timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.exit = exitErr.ExitCode()
			return out, nil
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return out, fmt.Errorf("%w at %s; verify Everything is installed",
				ErrExecutableNotFound, argv[0])
		}
		return out, fmt.Errorf("run %s: %w", argv[0], err)
	}
	return out, nil
}
