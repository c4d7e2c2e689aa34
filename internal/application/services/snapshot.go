package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"kilometers.ai/buildprep/internal/core/envsnap"
)

// SnapshotGenerator writes the environment snapshot artifact.
type SnapshotGenerator struct {
	path   string
	macro  string
	logger hclog.Logger
}

// NewSnapshotGenerator creates a generator writing to path
func NewSnapshotGenerator(path, macro string, logger hclog.Logger) *SnapshotGenerator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SnapshotGenerator{
		path:   path,
		macro:  macro,
		logger: logger.Named("snapshot"),
	}
}

// Path returns the artifact location
func (g *SnapshotGenerator) Path() string {
	return g.path
}

// Write replaces the artifact with an encoding of table
func (g *SnapshotGenerator) Write(table envsnap.Table) error {
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(g.path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", g.path, err)
	}
	if err := envsnap.Encode(f, g.macro, table); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", g.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", g.path, err)
	}

	g.logger.Debug("wrote environment snapshot", "path", g.path, "vars", table.Len())
	return nil
}
