package services

import (
	"context"
	"os"

	"kilometers.ai/buildprep/internal/core/domain"
	"kilometers.ai/buildprep/internal/core/ports"
)

// ToolchainCollector reports the version of the active compiler.
type ToolchainCollector struct {
	runner      ports.CommandRunner
	lookupEnv   func(string) (string, bool)
	overrideVar string
	fallback    string
	versionArgs []string
}

// NewToolchainCollector creates a collector. The compiler is taken from the
// environment variable overrideVar when set, otherwise fallback is used.
func NewToolchainCollector(runner ports.CommandRunner, overrideVar, fallback string) *ToolchainCollector {
	return &ToolchainCollector{
		runner:      runner,
		lookupEnv:   os.LookupEnv,
		overrideVar: overrideVar,
		fallback:    fallback,
		versionArgs: []string{"version"},
	}
}

// WithLookup replaces the environment lookup, for tests
func (c *ToolchainCollector) WithLookup(lookup func(string) (string, bool)) *ToolchainCollector {
	c.lookupEnv = lookup
	return c
}

// WithVersionArgs sets the arguments that make the compiler print its
// version ("version" for go, "-V" for rustc-style tools)
func (c *ToolchainCollector) WithVersionArgs(args ...string) *ToolchainCollector {
	c.versionArgs = append([]string(nil), args...)
	return c
}

// Compiler returns the executable that Version will invoke
func (c *ToolchainCollector) Compiler() string {
	if c.overrideVar != "" {
		if v, ok := c.lookupEnv(c.overrideVar); ok && v != "" {
			return v
		}
	}
	return c.fallback
}

// Version runs the compiler's version command and returns its output
func (c *ToolchainCollector) Version(ctx context.Context) domain.MetadataValue {
	return c.runner.Run(ctx, c.Compiler(), c.versionArgs...).Value(domain.KeyCompilerVersion)
}
