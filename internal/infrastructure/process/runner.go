package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"

	"kilometers.ai/buildprep/internal/core/ports"
)

// Runner implements the CommandRunner port on top of os/exec
type Runner struct {
	workDir string
	logger  hclog.Logger
}

// NewRunner creates a runner executing commands in workDir. An empty workDir
// uses the current directory.
func NewRunner(workDir string, logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{
		workDir: workDir,
		logger:  logger.Named("runner"),
	}
}

// Run executes name with args, waits for it and returns its stdout as text.
// The exit code is ignored. Start failures and undecodable output come back
// as placeholder text instead of errors.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ports.Output {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		r.logger.Warn("command failed to run", "command", name, "args", args, "error", err)
		return ports.Output{
			Text:   fmt.Sprintf("(command error: %v)", err),
			Status: ports.StatusCommandError,
		}
	}
	if exitErr != nil {
		r.logger.Debug("command exited non-zero", "command", name, "args", args, "exit_code", exitErr.ExitCode())
	}
	if stderr.Len() > 0 {
		r.logger.Trace("command stderr", "command", name, "stderr", strings.TrimSpace(stderr.String()))
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		offset := invalidOffset(out)
		r.logger.Warn("command output is not valid UTF-8", "command", name, "offset", offset)
		return ports.Output{
			Text:   fmt.Sprintf("(output error: invalid utf-8 sequence from index %d)", offset),
			Status: ports.StatusOutputError,
		}
	}

	return ports.Output{Text: string(out), Status: ports.StatusOK}
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
