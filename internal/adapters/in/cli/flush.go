package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newFlushCmd(configPath *string) *cobra.Command {
	var keyspaces string

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Flush keyspaces now",
		Long: `Flush the memtables of the selected keyspaces once, without waiting
for the schedule.

--keyspaces takes a comma-separated list, or "all" for every keyspace
except the protected system ones. Without it, flush.keyspaces from the
config is used. The run is recorded in the history when enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withKernel(cmd.Context(), *configPath, func(k kernel) error {
				return runFlush(cmd.Context(), k, keyspaces, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().StringVarP(&keyspaces, "keyspaces", "k", "", `Comma-separated keyspaces to flush, or "all"`)

	return cmd
}

func runFlush(ctx context.Context, k kernel, keyspaces string, out io.Writer) error {
	record, err := k.Flush(ctx, keyspaces)
	if err != nil {
		if werr := cliWriteLine(out, cliRenderError(fmt.Sprintf("Flush failed after %s", formatDuration(record.Duration)))); werr != nil {
			return werr
		}
		return err
	}

	if len(record.Keyspaces) == 0 {
		return cliWriteLine(out, cliRenderWarning("No keyspaces matched, nothing was flushed"))
	}

	if err := cliWriteLine(out, cliRenderSuccess(fmt.Sprintf("Flushed %d keyspace(s) in %s", len(record.Keyspaces), formatDuration(record.Duration)))); err != nil {
		return err
	}
	for _, ks := range record.Keyspaces {
		if err := cliWriteLine(out, cliRenderListItem(ks)); err != nil {
			return err
		}
	}
	if record.ID != "" {
		return cliWriteLine(out, cliRenderMeta("Run:", record.ID))
	}
	return nil
}
