package services

import (
	"context"

	"kilometers.ai/buildprep/internal/core/domain"
	"kilometers.ai/buildprep/internal/core/ports"
)

// RepositoryCollector queries the version-control client for facts about
// the checked-out commit. Every query returns the raw captured text,
// trailing newline included.
type RepositoryCollector struct {
	runner ports.CommandRunner
	vcs    string
}

// NewRepositoryCollector creates a collector invoking vcs (normally "git")
func NewRepositoryCollector(runner ports.CommandRunner, vcs string) *RepositoryCollector {
	if vcs == "" {
		vcs = "git"
	}
	return &RepositoryCollector{runner: runner, vcs: vcs}
}

// Hash returns the abbreviated hash of HEAD
func (c *RepositoryCollector) Hash(ctx context.Context) domain.MetadataValue {
	return c.git(ctx, domain.KeyGitHash, "rev-parse", "--short", "HEAD")
}

// Timestamp returns the commit time of HEAD in seconds since the epoch
func (c *RepositoryCollector) Timestamp(ctx context.Context) domain.MetadataValue {
	return c.git(ctx, domain.KeyGitTimestamp, "log", "-1", "--format=%ct")
}

// Tag returns the nearest ref describing HEAD, marked -dirty when the
// working tree has uncommitted changes
func (c *RepositoryCollector) Tag(ctx context.Context) domain.MetadataValue {
	return c.git(ctx, domain.KeyGitTag, "describe", "--all", "--always", "--dirty")
}

// Branch returns a human-readable name for HEAD
func (c *RepositoryCollector) Branch(ctx context.Context) domain.MetadataValue {
	return c.git(ctx, domain.KeyGitBranch, "name-rev", "--name-only", "HEAD")
}

// Collect runs the four queries in order
func (c *RepositoryCollector) Collect(ctx context.Context) []domain.MetadataValue {
	return []domain.MetadataValue{
		c.Hash(ctx),
		c.Timestamp(ctx),
		c.Tag(ctx),
		c.Branch(ctx),
	}
}

func (c *RepositoryCollector) git(ctx context.Context, key domain.ConstantKey, args ...string) domain.MetadataValue {
	return c.runner.Run(ctx, c.vcs, args...).Value(key)
}
