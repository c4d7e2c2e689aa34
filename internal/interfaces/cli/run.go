package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"kilometers.ai/buildprep/internal/interfaces/di"
)

// NewRunCommand creates the run command
func NewRunCommand(streams IO) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Perform a full preparation pass and write artifacts",
		Long: `Discover library sources, collect git and compiler metadata, and write
the environment snapshot, generated Go constants and YAML manifest to the
output directory. Build directives are printed on stdout.

The pass fails if no target platform is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd.Context(), cmd.Flags(), streams)
		},
	}
}

func runPass(ctx context.Context, flags *pflag.FlagSet, streams IO) error {
	cfg, err := loadConfig(flags, nil)
	if err != nil {
		return err
	}

	container, err := di.NewContainer(cfg, streams.Out, streams.Err)
	if err != nil {
		return err
	}

	_, err = container.Orchestrator(container.Publisher()).Run(ctx)
	return err
}
