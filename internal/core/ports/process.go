package ports

import (
	"context"

	"kilometers.ai/buildprep/internal/core/domain"
)

// OutputStatus tags how a command's standard output was obtained.
type OutputStatus int

const (
	// StatusOK means the command ran and its stdout decoded as text.
	StatusOK OutputStatus = iota
	// StatusCommandError means the command could not be started.
	StatusCommandError
	// StatusOutputError means stdout was not valid UTF-8 text.
	StatusOutputError
)

// Output is the text result of running an external command. Text is always
// usable: on failure it holds a placeholder describing the problem.
type Output struct {
	Text   string
	Status OutputStatus
}

// Degraded reports whether Text is a failure placeholder
func (o Output) Degraded() bool {
	return o.Status != StatusOK
}

// Value converts the output into a published metadata value
func (o Output) Value(key domain.ConstantKey) domain.MetadataValue {
	return domain.NewMetadataValue(key, o.Text, o.Degraded())
}

// CommandRunner runs an external executable and captures its stdout.
// Implementations never return an error; failures are folded into Output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) Output
}
