// Package task runs named maintenance tasks and records their outcome.
package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/keyflush/internal/boundaries/out"
	"github.com/bnema/keyflush/internal/domain"
)

// Func is a task body. It returns the keyspaces it acted on.
type Func func(ctx context.Context) ([]string, error)

// Runner executes tasks, then logs, measures and persists each run.
type Runner struct {
	store     out.RunStore
	metrics   out.RunMetrics
	retention int
	log       zerolog.Logger
	nowFn     func() time.Time
	newID     func() string
}

// NewRunner creates a runner. store and metrics are optional.
// A positive retention prunes the history to that many runs after each save.
func NewRunner(store out.RunStore, metrics out.RunMetrics, retention int, log zerolog.Logger) *Runner {
	return &Runner{
		store:     store,
		metrics:   metrics,
		retention: retention,
		log:       log,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		newID: uuid.NewString,
	}
}

// Run executes fn once under the given task name. The returned error is
// always the task's own error; recording failures are only logged.
func (r *Runner) Run(ctx context.Context, name string, fn Func) (domain.RunRecord, error) {
	record := domain.RunRecord{
		ID:        r.newID(),
		Task:      name,
		StartedAt: r.nowFn(),
	}
	log := r.log.With().Str("task", name).Str("run_id", record.ID).Logger()
	log.Info().Msg("task started")

	keyspaces, err := fn(ctx)

	record.Duration = r.nowFn().Sub(record.StartedAt)
	record.Keyspaces = keyspaces
	if record.Keyspaces == nil {
		record.Keyspaces = []string{}
	}
	record.Status = domain.RunStatusSucceeded
	if err != nil {
		record.Status = domain.RunStatusFailed
		record.Error = err.Error()
		log.Error().Err(err).
			Strs("keyspaces", record.Keyspaces).
			Dur("duration", record.Duration).
			Msg("task failed")
	} else {
		log.Info().
			Strs("keyspaces", record.Keyspaces).
			Dur("duration", record.Duration).
			Msg("task completed")
	}

	if r.metrics != nil {
		r.metrics.RecordRun(ctx, name, record.Status, record.Duration, len(record.Keyspaces))
	}
	r.persist(context.WithoutCancel(ctx), log, record)

	return record, err
}

// Job adapts a task to the scheduler's job signature.
func (r *Runner) Job(name string, fn Func) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := r.Run(ctx, name, fn)
		return err
	}
}

func (r *Runner) persist(ctx context.Context, log zerolog.Logger, record domain.RunRecord) {
	if r.store == nil {
		return
	}
	if err := r.store.Save(ctx, record); err != nil {
		log.Warn().Err(err).Msg("failed to record task run")
		return
	}
	if r.retention <= 0 {
		return
	}
	pruned, err := r.store.Prune(ctx, r.retention)
	if err != nil {
		log.Warn().Err(err).Msg("failed to prune run history")
		return
	}
	if pruned > 0 {
		log.Debug().Int("pruned", pruned).Msg("pruned run history")
	}
}
