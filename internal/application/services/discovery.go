package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"kilometers.ai/buildprep/internal/core/domain"
	"kilometers.ai/buildprep/internal/core/ports"
)

// SourcePatterns holds the glob patterns and the bootstrap path, all
// relative to the source root.
type SourcePatterns struct {
	Frozen    string
	Builtins  string
	Bootstrap string
}

// Pattern returns the pattern for mode
func (p SourcePatterns) Pattern(mode domain.SourceMode) string {
	if mode == domain.SourceModeFrozen {
		return p.Frozen
	}
	return p.Builtins
}

// SourceDiscoverer expands the library pattern selected by the source mode
// and registers every match as a rebuild trigger.
type SourceDiscoverer struct {
	root      string
	patterns  SourcePatterns
	registrar ports.DependencyRegistrar
	logger    hclog.Logger
}

// NewSourceDiscoverer creates a discoverer rooted at root
func NewSourceDiscoverer(root string, patterns SourcePatterns, registrar ports.DependencyRegistrar, logger hclog.Logger) *SourceDiscoverer {
	if root == "" {
		root = "."
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SourceDiscoverer{
		root:      root,
		patterns:  patterns,
		registrar: registrar,
		logger:    logger.Named("discovery"),
	}
}

// Discover expands the pattern for mode. Matches that cannot be stat'ed are
// skipped. An empty result is not an error.
func (d *SourceDiscoverer) Discover(mode domain.SourceMode) (*domain.PathSet, error) {
	pattern := filepath.Join(d.root, d.patterns.Pattern(mode))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding pattern %q: %w", pattern, err)
	}

	set := domain.NewPathSet()
	for _, match := range matches {
		if _, err := os.Lstat(match); err != nil {
			d.logger.Debug("skipping unreadable match", "path", match, "error", err)
			continue
		}
		if !set.Add(match) {
			continue
		}
		if err := d.registrar.RerunIfChanged(match); err != nil {
			return nil, fmt.Errorf("registering %q: %w", match, err)
		}
	}

	if set.Len() == 0 {
		d.logger.Warn("library pattern matched no files", "pattern", pattern, "mode", mode)
	} else {
		d.logger.Debug("discovered library sources", "pattern", pattern, "mode", mode, "count", set.Len())
	}
	return set, nil
}

// BootstrapPath returns the bootstrap file path as it is registered
func (d *SourceDiscoverer) BootstrapPath() string {
	return filepath.Join(d.root, d.patterns.Bootstrap)
}

// TrackBootstrap adds the bootstrap file to set and registers it. The file
// is tracked whatever the mode and whether or not it exists yet.
func (d *SourceDiscoverer) TrackBootstrap(set *domain.PathSet) error {
	path := d.BootstrapPath()
	if !set.Add(path) {
		return nil
	}
	if err := d.registrar.RerunIfChanged(path); err != nil {
		return fmt.Errorf("registering %q: %w", path, err)
	}
	return nil
}

// Run performs Discover followed by TrackBootstrap
func (d *SourceDiscoverer) Run(mode domain.SourceMode) (*domain.PathSet, error) {
	set, err := d.Discover(mode)
	if err != nil {
		return nil, err
	}
	if err := d.TrackBootstrap(set); err != nil {
		return nil, err
	}
	return set, nil
}
