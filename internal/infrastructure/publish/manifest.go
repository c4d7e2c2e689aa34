package publish

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"kilometers.ai/buildprep/internal/core/domain"
)

// Manifest is the YAML summary of a pass.
type Manifest struct {
	Mode      string             `yaml:"mode"`
	Constants []ManifestConstant `yaml:"constants"`
	Triggers  []string           `yaml:"rerun_if_changed"`
	Artifacts []string           `yaml:"artifacts"`
	EnvVars   int                `yaml:"env_vars"`
}

// ManifestConstant is one published value.
type ManifestConstant struct {
	Name     string `yaml:"name"`
	Value    string `yaml:"value"`
	Degraded bool   `yaml:"degraded,omitempty"`
}

// NewManifest builds the manifest for report
func NewManifest(report *domain.Report) Manifest {
	m := Manifest{
		Mode:      report.Mode.String(),
		Triggers:  append([]string{}, report.Triggers...),
		Artifacts: append([]string{}, report.Artifacts...),
		EnvVars:   report.EnvCount,
	}
	for _, v := range report.Values {
		m.Constants = append(m.Constants, ManifestConstant{
			Name:     v.Key.String(),
			Value:    v.Text,
			Degraded: v.Degraded,
		})
	}
	return m
}

// ManifestWriter writes the YAML manifest on Flush. Constants and triggers
// are taken from the report.
type ManifestWriter struct {
	path string
}

// NewManifestWriter creates a writer for path
func NewManifestWriter(path string) *ManifestWriter {
	return &ManifestWriter{path: path}
}

// RerunIfChanged is a no-op; triggers are read from the report
func (m *ManifestWriter) RerunIfChanged(string) error {
	return nil
}

// PublishConstant is a no-op; values are read from the report
func (m *ManifestWriter) PublishConstant(domain.MetadataValue) error {
	return nil
}

// Flush writes the manifest
func (m *ManifestWriter) Flush(report *domain.Report) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(m.path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", m.path, err)
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(NewManifest(report)); err != nil {
		f.Close()
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", m.path, err)
	}
	report.Artifacts = append(report.Artifacts, m.path)
	return nil
}

// ReadManifest loads a manifest written by ManifestWriter
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &m, nil
}
