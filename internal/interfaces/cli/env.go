package cli

import (
	"github.com/spf13/cobra"

	"kilometers.ai/buildprep/internal/infrastructure/config"
)

// NewEnvCommand lists the environment variables buildprep reads
func NewEnvCommand(streams IO) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables buildprep understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Usage(streams.Out)
		},
	}
}
