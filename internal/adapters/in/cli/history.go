package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/keyflush/internal/adapters/in/cli/ui/components"
	"github.com/bnema/keyflush/internal/domain"
)

const defaultHistoryLimit = 20

var historyTableColumns = []components.TableColumn{
	{Title: "RUN", Width: 10},
	{Title: "STARTED", Width: 21},
	{Title: "DURATION", Width: 10},
	{Title: "STATUS", Width: 13},
	{Title: "KEYSPACES", Width: 32},
	{Title: "ERROR", Width: 40},
}

func newHistoryCmd(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent flush runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withKernel(cmd.Context(), *configPath, func(k kernel) error {
				return runHistory(cmd.Context(), k, limit, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", defaultHistoryLimit, "Maximum runs to show (0 for all)")

	return cmd
}

func runHistory(ctx context.Context, k kernel, limit int, out io.Writer) error {
	records, err := k.History(ctx, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return cliWriteLine(out, cliRenderMuted("No runs recorded yet"))
	}

	if err := cliWriteLine(out, cliRenderTitle("Run history")); err != nil {
		return err
	}

	failed := 0
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		if r.Status == domain.RunStatusFailed {
			failed++
		}
		rows = append(rows, []string{
			shortRunID(r.ID),
			formatRunTime(r.StartedAt),
			formatDuration(r.Duration),
			renderRunStatus(r.Status),
			strings.Join(r.Keyspaces, ","),
			r.Error,
		})
	}

	table := components.NewTable(
		components.WithColumns(historyTableColumns),
		components.WithRows(rows),
		components.WithHeaderStyle(lipgloss.NewStyle().Bold(true)),
		components.WithCellStyle(lipgloss.NewStyle()),
	)
	if err := cliWriteLine(out, table.Render()); err != nil {
		return err
	}

	return cliWriteLine(out, cliRenderInfo(fmt.Sprintf("Total runs: %d (failed: %d)", len(records), failed)))
}
