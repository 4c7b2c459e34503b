package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/keyflush/internal/adapters/in/cli/ui/components"
)

var keyspacesTableColumns = []components.TableColumn{
	{Title: "KEYSPACE", Width: 40},
	{Title: "FLUSHED BY \"all\"", Width: 18},
}

func newKeyspacesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "keyspaces",
		Short: "List the node's keyspaces",
		Long: `List the keyspaces reported by the node. Protected system keyspaces
are never selected by "all".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withKernel(cmd.Context(), *configPath, func(k kernel) error {
				return runKeyspaces(cmd.Context(), k, cmd.OutOrStdout())
			})
		},
	}
}

func runKeyspaces(ctx context.Context, k kernel, out io.Writer) error {
	infos, err := k.Keyspaces(ctx)
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		return cliWriteLine(out, cliRenderMuted("No keyspaces found"))
	}

	if err := cliWriteLine(out, cliRenderTitle("Keyspaces")); err != nil {
		return err
	}

	protected := 0
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		if info.Protected {
			protected++
		}
		rows = append(rows, []string{info.Name, renderSelection(info)})
	}

	table := components.NewTable(
		components.WithColumns(keyspacesTableColumns),
		components.WithRows(rows),
		components.WithHeaderStyle(lipgloss.NewStyle().Bold(true)),
		components.WithCellStyle(lipgloss.NewStyle()),
	)
	if err := cliWriteLine(out, table.Render()); err != nil {
		return err
	}

	return cliWriteLine(out, cliRenderInfo(fmt.Sprintf("Total keyspaces: %d (protected: %d)", len(infos), protected)))
}
