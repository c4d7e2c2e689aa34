// Package config loads buildprep settings from the process environment.
package config

import (
	"fmt"
	"path/filepath"
)

// Default library source patterns, relative to SourceRoot.
const (
	DefaultFrozenPattern   = "Lib/*/*.py"
	DefaultBuiltinsPattern = "Lib/python_builtins/*.py"
	DefaultBootstrapPath   = "../Lib/importlib/_bootstrap.py"
)

// Config holds the settings for one preparation pass.
//
// Target is checked by the orchestrator, after rebuild triggers are out.
type Config struct {
	Target       string `envconfig:"TARGET"`
	OutDir       string `envconfig:"OUT_DIR" validate:"required"`
	FreezeStdlib bool   `envconfig:"FREEZE_STDLIB" default:"false"`

	SourceRoot      string `envconfig:"BUILDPREP_SOURCE_ROOT" default:"."`
	RepoDir         string `envconfig:"BUILDPREP_REPO_DIR" default:"."`
	FrozenPattern   string `envconfig:"BUILDPREP_FROZEN_PATTERN" default:"Lib/*/*.py" validate:"required,globpattern"`
	BuiltinsPattern string `envconfig:"BUILDPREP_BUILTINS_PATTERN" default:"Lib/python_builtins/*.py" validate:"required,globpattern"`
	BootstrapPath   string `envconfig:"BUILDPREP_BOOTSTRAP" default:"../Lib/importlib/_bootstrap.py" validate:"required"`

	VCS         string   `envconfig:"GIT" default:"git" validate:"required"`
	CompilerEnv string   `envconfig:"BUILDPREP_COMPILER_ENV" default:"GO" validate:"required"`
	Compiler    string   `envconfig:"BUILDPREP_DEFAULT_COMPILER" default:"go" validate:"required"`
	VersionArgs []string `envconfig:"BUILDPREP_COMPILER_VERSION_ARGS" default:"version"`

	PackageName string `envconfig:"BUILDPREP_PACKAGE" default:"buildinfo" validate:"required,goident"`
	Macro       string `envconfig:"BUILDPREP_MACRO" default:"sysvars" validate:"required,goident"`

	LogLevel  string `envconfig:"BUILDPREP_LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error off"`
	LogFormat string `envconfig:"BUILDPREP_LOG_FORMAT" default:"text" validate:"oneof=text json"`
}

// ActivePattern returns the library pattern selected by FreezeStdlib
func (c *Config) ActivePattern() string {
	if c.FreezeStdlib {
		return c.FrozenPattern
	}
	return c.BuiltinsPattern
}

// Artifact file names written under OutDir.
const (
	EnvArtifactName      = "env_vars.txt"
	GoSourceArtifactName = "buildinfo_gen.go"
	ManifestArtifactName = "buildinfo.yaml"
)

// ArtifactPath returns the path of name inside OutDir
func (c *Config) ArtifactPath(name string) string {
	return filepath.Join(c.OutDir, name)
}

// String renders the config for debug logging
func (c *Config) String() string {
	return fmt.Sprintf("target=%q out_dir=%q freeze_stdlib=%t source_root=%q pattern=%q",
		c.Target, c.OutDir, c.FreezeStdlib, c.SourceRoot, c.ActivePattern())
}
