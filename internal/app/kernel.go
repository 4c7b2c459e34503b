package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/keyflush/internal/domain"
)

// Kernel provides in-process service access for one-shot CLI commands.
//
// It does not start the scheduler, the metrics listener or signal handlers.
type Kernel struct {
	cfg     Config
	svc     *services
	log     zerolog.Logger
	cleanup func()
}

// KeyspaceInfo describes a live keyspace.
type KeyspaceInfo struct {
	Name      string
	Protected bool
}

// NewKernel initializes local services. Logs go to stderr.
func NewKernel(ctx context.Context, configPath string) (*Kernel, error) {
	return newKernel(ctx, configPath, os.Stderr)
}

func newKernel(ctx context.Context, configPath string, logOut io.Writer) (*Kernel, error) {
	_, cfg, err := initConfig(configPath)
	if err != nil {
		return nil, err
	}

	log, cleanup, err := initLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}

	svc, err := createServices(ctx, cfg, log)
	if err != nil {
		cleanup()
		return nil, err
	}

	return &Kernel{cfg: cfg, svc: svc, log: log, cleanup: cleanup}, nil
}

// Close releases the history store and the logger.
func (k *Kernel) Close() error {
	if k == nil {
		return nil
	}
	if k.svc != nil {
		k.svc.close()
	}
	if k.cleanup != nil {
		k.cleanup()
	}
	return nil
}

// Flush runs one flush now. A non-empty keyspaces list replaces the
// configured one. domain.AllKeyspaces flushes every unprotected live keyspace.
func (k *Kernel) Flush(ctx context.Context, keyspaces string) (domain.RunRecord, error) {
	if keyspaces == "" {
		keyspaces = k.cfg.Flush.Keyspaces
	}
	flushSvc := k.svc.newFlush(keyspaces)
	return k.svc.runner.Run(ctx, domain.TaskFlush, flushSvc.Run)
}

// Keyspaces lists the node's live keyspaces.
func (k *Kernel) Keyspaces(ctx context.Context) ([]KeyspaceInfo, error) {
	names, err := k.svc.client.ListKeyspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list keyspaces: %w", err)
	}

	infos := make([]KeyspaceInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, KeyspaceInfo{Name: name, Protected: domain.IsProtectedKeyspace(name)})
	}
	return infos, nil
}

// Schedule builds the configured flush trigger and its next count fire times after from.
func (k *Kernel) Schedule(from time.Time, count int) (domain.Trigger, []time.Time, error) {
	trigger, err := buildTrigger(k.cfg, k.log)
	if err != nil {
		return domain.Trigger{}, nil, err
	}
	return trigger, NextRuns(trigger, from, count), nil
}

// History returns up to limit recorded runs, newest first.
func (k *Kernel) History(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if k.svc.store == nil {
		return nil, fmt.Errorf("run history is disabled, set history.enabled = true")
	}
	return k.svc.store.List(ctx, limit)
}

// NextRuns returns the next count activations of trigger after from.
// A disabled trigger has none.
func NextRuns(trigger domain.Trigger, from time.Time, count int) []time.Time {
	runs := []time.Time{}
	if !trigger.Enabled() {
		return runs
	}
	next := from
	for i := 0; i < count; i++ {
		next = trigger.Next(next)
		if next.IsZero() {
			break
		}
		runs = append(runs, next)
	}
	return runs
}
