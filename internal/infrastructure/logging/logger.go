// Package logging builds the hclog loggers used across buildprep.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Options configures New.
type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// New creates the root logger. Output defaults to stderr so stdout stays
// free for build directives.
func New(opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       "buildprep",
		Level:      level,
		Output:     output,
		JSONFormat: opts.JSON,
	})
}
