package publish

import (
	"kilometers.ai/buildprep/internal/core/domain"
	"kilometers.ai/buildprep/internal/core/ports"
)

// Multi fans every call out to a list of publishers, in order, stopping at
// the first error.
type Multi []ports.Publisher

// RerunIfChanged implements ports.DependencyRegistrar
func (m Multi) RerunIfChanged(path string) error {
	for _, p := range m {
		if err := p.RerunIfChanged(path); err != nil {
			return err
		}
	}
	return nil
}

// PublishConstant implements ports.ConstantPublisher
func (m Multi) PublishConstant(v domain.MetadataValue) error {
	for _, p := range m {
		if err := p.PublishConstant(v); err != nil {
			return err
		}
	}
	return nil
}

// Flush implements ports.Publisher
func (m Multi) Flush(report *domain.Report) error {
	for _, p := range m {
		if err := p.Flush(report); err != nil {
			return err
		}
	}
	return nil
}

// Discard is a publisher that drops everything.
type Discard struct{}

func (Discard) RerunIfChanged(string) error                { return nil }
func (Discard) PublishConstant(domain.MetadataValue) error { return nil }
func (Discard) Flush(*domain.Report) error                 { return nil }
