package cli

import (
	"github.com/spf13/cobra"
)

// newServeCmd creates the serve command.
func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the flush scheduler",
		Long: `Run the flush scheduler until interrupted.

The configured schedule is validated before anything starts. When
metrics are enabled, a Prometheus endpoint is served on metrics.listen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), *configPath)
		},
	}
}
