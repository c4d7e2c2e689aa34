package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"kilometers.ai/buildprep/internal/core/domain"
	"kilometers.ai/buildprep/internal/core/envsnap"
	"kilometers.ai/buildprep/internal/core/ports"
)

// ErrMissingTarget aborts a pass when no target platform was provided.
var ErrMissingTarget = errors.New("target platform is not set (TARGET or --target)")

// PassSettings are the per-pass inputs of the orchestrator.
type PassSettings struct {
	Mode   domain.SourceMode
	Target string
}

// Orchestrator runs one preparation pass.
type Orchestrator struct {
	settings    PassSettings
	discoverer  *SourceDiscoverer
	repository  *RepositoryCollector
	toolchain   *ToolchainCollector
	fingerprint *Fingerprinter
	snapshot    *SnapshotGenerator
	publisher   ports.Publisher
	environ     func() []string
	logger      hclog.Logger
}

// OrchestratorDeps groups the collaborators of an Orchestrator.
type OrchestratorDeps struct {
	Discoverer  *SourceDiscoverer
	Repository  *RepositoryCollector
	Toolchain   *ToolchainCollector
	Fingerprint *Fingerprinter
	Snapshot    *SnapshotGenerator
	Publisher   ports.Publisher
	Environ     func() []string
	Logger      hclog.Logger
}

// NewOrchestrator creates an orchestrator
func NewOrchestrator(settings PassSettings, deps OrchestratorDeps) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Orchestrator{
		settings:    settings,
		discoverer:  deps.Discoverer,
		repository:  deps.Repository,
		toolchain:   deps.Toolchain,
		fingerprint: deps.Fingerprint,
		snapshot:    deps.Snapshot,
		publisher:   deps.Publisher,
		environ:     deps.Environ,
		logger:      logger.Named("orchestrator"),
	}
}

// Collect runs every step that does not write artifacts: discovery,
// bootstrap registration, repository and toolchain queries, and the target
// lookup. Values are published as they are collected.
//
// On ErrMissingTarget the partially filled report is still returned.
func (o *Orchestrator) Collect(ctx context.Context) (*domain.Report, error) {
	report := &domain.Report{Mode: o.settings.Mode}

	set, err := o.discoverer.Discover(o.settings.Mode)
	if err != nil {
		return nil, fmt.Errorf("discovering sources: %w", err)
	}
	if err := o.discoverer.TrackBootstrap(set); err != nil {
		return nil, fmt.Errorf("tracking bootstrap: %w", err)
	}
	report.Sources = set
	report.Triggers = set.Paths()

	for _, v := range o.repository.Collect(ctx) {
		if err := o.publish(report, v); err != nil {
			return nil, err
		}
	}
	if err := o.publish(report, o.toolchain.Version(ctx)); err != nil {
		return nil, err
	}

	if o.settings.Target == "" {
		return report, ErrMissingTarget
	}
	if err := o.publish(report, domain.NewMetadataValue(domain.KeyTargetTriple, o.settings.Target, false)); err != nil {
		return nil, err
	}

	if o.fingerprint != nil {
		if err := o.publish(report, o.fingerprint.Fingerprint(set)); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// Run performs a full pass: Collect, then the environment snapshot, then the
// publisher flush. The environment is captured before anything else runs.
func (o *Orchestrator) Run(ctx context.Context) (*domain.Report, error) {
	table := envsnap.Capture(o.environ)

	report, err := o.Collect(ctx)
	if err != nil {
		return nil, err
	}

	if err := o.snapshot.Write(table); err != nil {
		return nil, fmt.Errorf("writing environment snapshot: %w", err)
	}
	report.EnvCount = table.Len()
	report.Artifacts = append(report.Artifacts, o.snapshot.Path())

	if err := o.publisher.Flush(report); err != nil {
		return nil, fmt.Errorf("publishing: %w", err)
	}

	o.logger.Info("build metadata prepared",
		"mode", report.Mode,
		"sources", report.Sources.Len(),
		"degraded", report.DegradedCount(),
		"env_vars", report.EnvCount)
	return report, nil
}

func (o *Orchestrator) publish(report *domain.Report, v domain.MetadataValue) error {
	if v.Degraded {
		o.logger.Warn("using placeholder value", "key", v.Key, "text", v.Text)
	}
	report.Values = append(report.Values, v)
	if err := o.publisher.PublishConstant(v); err != nil {
		return fmt.Errorf("publishing %s: %w", v.Key, err)
	}
	return nil
}
