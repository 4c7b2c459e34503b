package cron

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/keyflush/internal/domain"
)

var (
	// ErrJobRunning is returned when a job is triggered while it runs.
	ErrJobRunning = errors.New("job is already running")
	// ErrJobNotFound is returned for an unknown job id.
	ErrJobNotFound = errors.New("job not found")
)

const defaultTick = time.Second

// Scheduler runs recurring jobs on their triggers.
type Scheduler struct {
	entries map[string]*entry
	mu      sync.RWMutex
	stopCh  chan struct{}
	started atomic.Bool
	wg      sync.WaitGroup
	log     zerolog.Logger
	nowFn   func() time.Time
	tick    time.Duration
}

type entry struct {
	id      string
	name    string
	trigger domain.Trigger
	job     func(ctx context.Context) error
	lastRun time.Time
	nextRun time.Time
	running atomic.Bool
}

// NewScheduler creates a scheduler instance.
func NewScheduler(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		entries: make(map[string]*entry),
		stopCh:  make(chan struct{}),
		log:     log.With().Str("component", "scheduler").Logger(),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		tick: defaultTick,
	}
}

// Add registers a job fired by the given trigger.
func (s *Scheduler) Add(id, name string, trigger domain.Trigger, job func(ctx context.Context) error) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidArgument)
	}
	if job == nil {
		return fmt.Errorf("%w: job is required", domain.ErrInvalidArgument)
	}
	if !trigger.Enabled() {
		return fmt.Errorf("%w: %s", domain.ErrTriggerDisabled, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[id]; exists {
		return fmt.Errorf("%w: job %q already exists", domain.ErrInvalidArgument, id)
	}

	s.entries[id] = &entry{
		id:      id,
		name:    name,
		trigger: trigger,
		job:     job,
		nextRun: trigger.Next(s.nowFn()),
	}

	return nil
}

// Start begins the scheduler loop. It is a no-op once stopped or when
// ctx is already done.
func (s *Scheduler) Start(ctx context.Context) {
	select {
	case <-s.stopCh:
		return
	case <-ctx.Done():
		return
	default:
	}
	if !s.started.CompareAndSwap(false, true) {
		return
	}

	ticker := time.NewTicker(s.tick)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()
		defer s.started.Store(false)
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.runDue(ctx)
			}
		}
	}()
}

// Stop stops the scheduler loop and waits for running jobs to return.
func (s *Scheduler) Stop() {
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.wg.Wait()
}

// List returns current scheduler entries ordered by id.
func (s *Scheduler) List() []domain.CronEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.CronEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, domain.CronEntry{
			ID:      e.id,
			Name:    e.name,
			Trigger: e.trigger,
			LastRun: e.lastRun,
			NextRun: e.nextRun,
			Running: e.running.Load(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	return entries
}

// RunNow triggers a registered job immediately and waits for it.
func (s *Scheduler) RunNow(ctx context.Context, id string) error {
	e := s.getEntry(id)
	if e == nil {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	return s.executeEntry(ctx, e, time.Time{})
}

func (s *Scheduler) runDue(ctx context.Context) {
	now := s.nowFn()
	for _, e := range s.dueEntries(now) {
		s.wg.Add(1)
		go func(e *entry) {
			defer s.wg.Done()
			if err := s.executeEntry(ctx, e, now); err != nil && !errors.Is(err, ErrJobRunning) {
				s.log.Warn().Err(err).Str("job_id", e.id).Msg("scheduled job failed")
			}
		}(e)
	}
}

// executeEntry runs e unless it is already running. A non-zero dueAt skips
// the run when another run has moved the entry's next run past dueAt.
func (s *Scheduler) executeEntry(ctx context.Context, e *entry, dueAt time.Time) (err error) {
	if !e.running.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: %s", ErrJobRunning, e.id)
	}
	defer e.running.Store(false)

	if !dueAt.IsZero() {
		s.mu.RLock()
		next := e.nextRun
		s.mu.RUnlock()
		if dueAt.Before(next) {
			return nil
		}
	}

	startedAt := s.nowFn()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %q panicked: %v", e.id, r)
		}

		finished := s.nowFn()
		s.mu.Lock()
		e.lastRun = startedAt
		e.nextRun = e.trigger.Next(finished)
		s.mu.Unlock()
	}()

	s.log.Debug().Str("job_id", e.id).Str("job", e.name).Msg("running job")
	return e.job(ctx)
}

func (s *Scheduler) getEntry(id string) *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[id]
}

// dueEntries returns the idle entries whose next run is not after now.
func (s *Scheduler) dueEntries(now time.Time) []*entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	due := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.running.Load() || now.Before(e.nextRun) {
			continue
		}
		due = append(due, e)
	}
	return due
}
