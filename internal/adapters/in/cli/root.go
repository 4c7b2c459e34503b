// Package cli implements the CLI adapter for keyflush.
// This package provides Cobra commands that delegate to the app layer.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/keyflush/internal/app"
	"github.com/bnema/keyflush/internal/domain"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// kernel is the in-process control plane used by one-shot commands.
type kernel interface {
	Flush(ctx context.Context, keyspaces string) (domain.RunRecord, error)
	Keyspaces(ctx context.Context) ([]app.KeyspaceInfo, error)
	Schedule(from time.Time, count int) (domain.Trigger, []time.Time, error)
	History(ctx context.Context, limit int) ([]domain.RunRecord, error)
	Close() error
}

var openKernel = func(ctx context.Context, configPath string) (kernel, error) {
	k, err := app.NewKernel(ctx, configPath)
	if err != nil {
		return nil, err
	}
	return k, nil
}

var runServer = app.Run

// NewRootCmd creates the root command for the keyflush CLI.
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "keyflush",
		Short: "keyflush - scheduled memtable flushes for Cassandra nodes",
		Long: `keyflush flushes the memtables of a Cassandra node's keyspaces on a
recurring schedule, through the node's Jolokia management endpoint.

Run "keyflush serve" for the scheduler, or use the one-shot commands to
flush now and inspect keyspaces, the schedule and past runs.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newFlushCmd(&configPath))
	rootCmd.AddCommand(newKeyspacesCmd(&configPath))
	rootCmd.AddCommand(newScheduleCmd(&configPath))
	rootCmd.AddCommand(newHistoryCmd(&configPath))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("keyflush %s\n", Version)
			cmd.Printf("Commit: %s\n", Commit)
			cmd.Printf("Build Date: %s\n", BuildDate)
		},
	}
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, commit, date string) {
	if version != "" {
		Version = version
		app.Version = version
	}
	if commit != "" {
		Commit = commit
	}
	if date != "" {
		BuildDate = date
	}
}

// withKernel opens a kernel for the duration of fn.
func withKernel(ctx context.Context, configPath string, fn func(kernel) error) error {
	k, err := openKernel(ctx, configPath)
	if err != nil {
		return err
	}
	defer func() { _ = k.Close() }()
	return fn(k)
}
