package di

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"kilometers.ai/buildprep/internal/application/services"
	"kilometers.ai/buildprep/internal/core/domain"
	"kilometers.ai/buildprep/internal/core/ports"
	"kilometers.ai/buildprep/internal/infrastructure/config"
	"kilometers.ai/buildprep/internal/infrastructure/logging"
	"kilometers.ai/buildprep/internal/infrastructure/process"
	"kilometers.ai/buildprep/internal/infrastructure/publish"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger hclog.Logger
	Runner ports.CommandRunner

	// Stdout receives build directives
	Stdout io.Writer

	// Environ is captured for the snapshot; os.Environ unless replaced
	Environ func() []string
	// LookupEnv resolves the compiler override; os.LookupEnv unless replaced
	LookupEnv func(string) (string, bool)
}

// NewContainer creates and configures the dependency injection container
func NewContainer(cfg *config.Config, stdout, stderr io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if stdout == nil {
		stdout = os.Stdout
	}

	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		JSON:   cfg.LogFormat == "json",
		Output: stderr,
	})
	logger.Debug("configuration loaded", "config", cfg.String())

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Runner:    process.NewRunner(cfg.RepoDir, logger),
		Stdout:    stdout,
		Environ:   os.Environ,
		LookupEnv: os.LookupEnv,
	}, nil
}

// Publisher builds the publisher chain for a full pass. The Go source and
// manifest are flushed before the directive stream so the directives list
// every artifact.
func (c *Container) Publisher() ports.Publisher {
	return publish.Multi{
		publish.NewGoSourceWriter(
			c.Config.ArtifactPath(config.GoSourceArtifactName),
			c.Config.PackageName,
			config.EnvArtifactName,
		),
		publish.NewManifestWriter(c.Config.ArtifactPath(config.ManifestArtifactName)),
		publish.NewDirectiveWriter(c.Stdout, publish.DefaultDirectivePrefix),
	}
}

func (c *Container) toolchain() *services.ToolchainCollector {
	cfg := c.Config
	collector := services.NewToolchainCollector(c.Runner, cfg.CompilerEnv, cfg.Compiler).WithLookup(c.LookupEnv)
	if len(cfg.VersionArgs) > 0 {
		collector = collector.WithVersionArgs(cfg.VersionArgs...)
	}
	return collector
}

// Orchestrator wires a pass reporting through pub
func (c *Container) Orchestrator(pub ports.Publisher) *services.Orchestrator {
	cfg := c.Config
	patterns := services.SourcePatterns{
		Frozen:    cfg.FrozenPattern,
		Builtins:  cfg.BuiltinsPattern,
		Bootstrap: cfg.BootstrapPath,
	}

	return services.NewOrchestrator(
		services.PassSettings{
			Mode:   domain.SourceModeFromFlag(cfg.FreezeStdlib),
			Target: cfg.Target,
		},
		services.OrchestratorDeps{
			Discoverer:  services.NewSourceDiscoverer(cfg.SourceRoot, patterns, pub, c.Logger),
			Repository:  services.NewRepositoryCollector(c.Runner, cfg.VCS),
			Toolchain:   c.toolchain(),
			Fingerprint: services.NewFingerprinter(c.Logger),
			Snapshot:    services.NewSnapshotGenerator(cfg.ArtifactPath(config.EnvArtifactName), cfg.Macro, c.Logger),
			Publisher:   pub,
			Environ:     c.Environ,
			Logger:      c.Logger,
		},
	)
}
