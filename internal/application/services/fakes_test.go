package services

import (
	"context"
	"strings"
	"sync"

	"kilometers.ai/buildprep/internal/core/domain"
	"kilometers.ai/buildprep/internal/core/ports"
)

// fakeRunner answers commands from a table keyed by "name arg1 arg2"
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]ports.Output
	calls     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: make(map[string]ports.Output)}
}

func (f *fakeRunner) on(cmdline, text string) *fakeRunner {
	f.responses[cmdline] = ports.Output{Text: text, Status: ports.StatusOK}
	return f
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ports.Output {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmdline := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmdline)
	if out, ok := f.responses[cmdline]; ok {
		return out
	}
	return ports.Output{
		Text:   "(command error: exec: \"" + name + "\": executable file not found in $PATH)",
		Status: ports.StatusCommandError,
	}
}

// recordingPublisher keeps everything it is given
type recordingPublisher struct {
	triggers []string
	values   []domain.MetadataValue
	flushed  *domain.Report
	failOn   string
}

func (r *recordingPublisher) RerunIfChanged(path string) error {
	r.triggers = append(r.triggers, path)
	return nil
}

func (r *recordingPublisher) PublishConstant(v domain.MetadataValue) error {
	if r.failOn != "" && string(v.Key) == r.failOn {
		return errPublish
	}
	r.values = append(r.values, v)
	return nil
}

func (r *recordingPublisher) Flush(report *domain.Report) error {
	r.flushed = report
	return nil
}

type publishError string

func (e publishError) Error() string { return string(e) }

const errPublish = publishError("publish failed")
