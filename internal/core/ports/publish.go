package ports

import "kilometers.ai/buildprep/internal/core/domain"

// DependencyRegistrar records paths whose modification invalidates the
// output of a pass.
type DependencyRegistrar interface {
	RerunIfChanged(path string) error
}

// ConstantPublisher makes a collected value available to the program being
// compiled.
type ConstantPublisher interface {
	PublishConstant(value domain.MetadataValue) error
}

// Publisher is the full surface the orchestrator reports through.
// Flush is called once after a successful pass.
type Publisher interface {
	DependencyRegistrar
	ConstantPublisher
	Flush(report *domain.Report) error
}
