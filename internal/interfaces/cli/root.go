package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"kilometers.ai/buildprep/internal/infrastructure/config"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// IO holds the streams commands write to
type IO struct {
	Out io.Writer
	Err io.Writer
}

// NewRootCommand creates the buildprep command tree. Running the root
// command without a subcommand performs a full pass, as "run" does.
func NewRootCommand(streams IO) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "buildprep",
		Short: "Collect build-time metadata for the program being compiled",
		Long: `buildprep runs before the main program is compiled. It records which
library sources exist, the git state and compiler that produced the build,
and the process environment, and publishes them as Go constants, a YAML
manifest and build directives on stdout.

Typical use is from go generate:

  //go:generate go run ./cmd/buildprep --target $GOOS/$GOARCH --out-dir internal/buildinfo`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd.Context(), cmd.Flags(), streams)
		},
	}

	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	addPassFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(NewRunCommand(streams))
	rootCmd.AddCommand(NewShowCommand(streams))
	rootCmd.AddCommand(NewEnvCommand(streams))

	return rootCmd
}

// addPassFlags registers the flags that override environment configuration
func addPassFlags(flags *pflag.FlagSet) {
	flags.String("target", "", "Target platform triple (overrides TARGET)")
	flags.String("out-dir", "", "Directory for generated artifacts (overrides OUT_DIR)")
	flags.Bool("freeze-stdlib", false, "Track every library package, not only builtins (overrides FREEZE_STDLIB)")
	flags.String("source-root", "", "Directory the library patterns are relative to")
	flags.String("repo-dir", "", "Directory git is run in")
	flags.String("package", "", "Package name of the generated Go file")
	flags.StringSlice("env-file", nil, "Dotenv files loaded before the environment is read")
	flags.Bool("debug", false, "Enable debug logging")
}

// applyOverrides copies explicitly set flags onto cfg
func applyOverrides(flags *pflag.FlagSet, cfg *config.Config) error {
	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"target", &cfg.Target},
		{"out-dir", &cfg.OutDir},
		{"source-root", &cfg.SourceRoot},
		{"repo-dir", &cfg.RepoDir},
		{"package", &cfg.PackageName},
	}
	for _, s := range stringFlags {
		if !flags.Changed(s.name) {
			continue
		}
		v, err := flags.GetString(s.name)
		if err != nil {
			return fmt.Errorf("reading --%s: %w", s.name, err)
		}
		*s.dst = v
	}

	if flags.Changed("freeze-stdlib") {
		v, err := flags.GetBool("freeze-stdlib")
		if err != nil {
			return fmt.Errorf("reading --freeze-stdlib: %w", err)
		}
		cfg.FreezeStdlib = v
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}
	return nil
}

// loadConfig reads the environment and applies flag overrides
func loadConfig(flags *pflag.FlagSet, extra func(*config.Config)) (*config.Config, error) {
	envFiles, err := flags.GetStringSlice("env-file")
	if err != nil {
		return nil, fmt.Errorf("reading --env-file: %w", err)
	}
	return config.Load(config.LoadOptions{
		EnvFiles: envFiles,
		Override: func(cfg *config.Config) error {
			if err := applyOverrides(flags, cfg); err != nil {
				return err
			}
			if extra != nil {
				extra(cfg)
			}
			return nil
		},
	})
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute runs the root command and exits non-zero on failure
func Execute(ctx context.Context) {
	rootCmd := NewRootCommand(IO{Out: os.Stdout, Err: os.Stderr})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
