package process

import (
	"context"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"kilometers.ai/buildprep/internal/core/ports"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-based tests require a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunner_CapturesStdout(t *testing.T) {
	requireShell(t)
	runner := NewRunner("", nil)

	out := runner.Run(context.Background(), "sh", "-c", "printf 'hello\\n'")

	assert.Equal(t, ports.StatusOK, out.Status)
	assert.Equal(t, "hello\n", out.Text, "output should be returned verbatim")
	assert.False(t, out.Degraded())
}

func TestRunner_IgnoresExitCode(t *testing.T) {
	requireShell(t)
	runner := NewRunner("", nil)

	out := runner.Run(context.Background(), "sh", "-c", "printf partial; echo oops >&2; exit 3")

	assert.Equal(t, ports.StatusOK, out.Status)
	assert.Equal(t, "partial", out.Text)
}

func TestRunner_MissingExecutable(t *testing.T) {
	runner := NewRunner("", nil)

	out := runner.Run(context.Background(), "buildprep-definitely-not-installed", "--version")

	assert.Equal(t, ports.StatusCommandError, out.Status)
	assert.Contains(t, out.Text, "(command error:")
	assert.True(t, out.Degraded())
}

func TestRunner_InvalidUTF8(t *testing.T) {
	requireShell(t)
	runner := NewRunner("", nil)

	out := runner.Run(context.Background(), "sh", "-c", "printf 'ok\\377'")

	assert.Equal(t, ports.StatusOutputError, out.Status)
	assert.Equal(t, "(output error: invalid utf-8 sequence from index 2)", out.Text)
}

func TestRunner_UsesWorkDir(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	runner := NewRunner(dir, nil)

	out := runner.Run(context.Background(), "sh", "-c", "pwd -P")

	require.Equal(t, ports.StatusOK, out.Status)
	resolved, err := exec.Command("sh", "-c", "cd '"+dir+"' && pwd -P").Output()
	require.NoError(t, err)
	assert.Equal(t, string(resolved), out.Text)
}

func TestInvalidOffset(t *testing.T) {
	assert.Equal(t, 0, invalidOffset([]byte{0xff}))
	assert.Equal(t, 3, invalidOffset([]byte("abc\xc3")))
	assert.Equal(t, 2, invalidOffset([]byte("é")))
}

// Property-based tests using rapid

func TestRunner_PropertyBased_NeverFails(t *testing.T) {
	runner := NewRunner(t.TempDir(), nil)

	rapid.Check(t, func(t *rapid.T) {
		name := "buildprep-missing-" + rapid.StringMatching(`[a-z0-9]{1,12}`).Draw(t, "name")
		args := rapid.SliceOfN(rapid.String(), 0, 4).Draw(t, "args")

		out := runner.Run(context.Background(), name, args...)

		if out.Text == "" {
			t.Fatalf("expected placeholder text for %q", name)
		}
		if out.Status != ports.StatusCommandError {
			t.Fatalf("expected command error status, got %v", out.Status)
		}
	})
}
