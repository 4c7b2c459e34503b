package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

const defaultScheduleCount = 5

func newScheduleCmd(configPath *string) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the flush schedule and its next runs",
		Long: `Build the flush trigger from the config and print the next fire times.
An invalid schedule is reported the same way "serve" would reject it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative")
			}
			return withKernel(cmd.Context(), *configPath, func(k kernel) error {
				return runSchedule(k, time.Now(), count, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", defaultScheduleCount, "Number of upcoming runs to show")

	return cmd
}

func runSchedule(k kernel, from time.Time, count int, out io.Writer) error {
	trigger, runs, err := k.Schedule(from, count)
	if err != nil {
		return err
	}

	if !trigger.Enabled() {
		return cliWriteLine(out, cliRenderWarning("Flush schedule is disabled"))
	}

	if err := cliWriteLine(out, cliRenderTitle("Flush schedule")); err != nil {
		return err
	}
	if err := cliWriteLine(out, cliRenderMeta("Trigger:", describeTrigger(trigger))); err != nil {
		return err
	}

	if len(runs) == 0 {
		return cliWriteLine(out, cliRenderMuted("No upcoming runs"))
	}
	if err := cliWriteLine(out, cliRenderInfo("Next runs:")); err != nil {
		return err
	}
	for _, run := range runs {
		if err := cliWriteLine(out, cliRenderListItem(run.Format(time.RFC3339))); err != nil {
			return err
		}
	}
	return nil
}
