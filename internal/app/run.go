package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	// Adapters - Output
	"github.com/bnema/keyflush/internal/adapters/out/jolokia"
	"github.com/bnema/keyflush/internal/adapters/out/sqlite"
	"github.com/bnema/keyflush/internal/adapters/out/telemetry"

	// Boundaries
	"github.com/bnema/keyflush/internal/boundaries/in"
	"github.com/bnema/keyflush/internal/boundaries/out"

	// Domain
	"github.com/bnema/keyflush/internal/domain"

	// Logging
	"github.com/bnema/keyflush/internal/logging"

	// Use cases
	"github.com/bnema/keyflush/internal/usecase/cron"
	"github.com/bnema/keyflush/internal/usecase/flush"
	"github.com/bnema/keyflush/internal/usecase/schedule"
	"github.com/bnema/keyflush/internal/usecase/task"
)

const (
	serviceName     = "keyflush"
	shutdownTimeout = 10 * time.Second
)

// Version is reported in metrics resources. Set by the CLI at startup.
var Version = "dev"

// services holds the wired adapters and use cases.
type services struct {
	client    out.ManagementClient
	store     *sqlite.RunStore
	telemetry *telemetry.Provider
	runner    *task.Runner
	newFlush  func(keyspaces string) in.FlushService
	shutdown  func(context.Context)
}

func (s *services) close() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.shutdown != nil {
		s.shutdown(context.Background())
	}
}

// initLogger initializes the zerolog logger.
func initLogger(cfg Config, w io.Writer) (zerolog.Logger, func(), error) {
	log, cleanup, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File: logging.FileConfig{
			Enabled:    cfg.Logging.File.Enabled,
			Path:       cfg.Logging.File.Path,
			MaxSize:    cfg.Logging.File.MaxSize,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAge:     cfg.Logging.File.MaxAge,
			Compress:   true,
		},
	}, w)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, cleanup, nil
}

// createServices wires the management client, history store, metrics and task runner.
func createServices(ctx context.Context, cfg Config, log zerolog.Logger) (*services, error) {
	svc := &services{}

	svc.client = jolokia.NewClient(jolokia.Config{
		URL:        cfg.Management.URL,
		Username:   cfg.Management.Username,
		Password:   cfg.Management.Password,
		Timeout:    cfg.Management.Timeout,
		RetryCount: cfg.Management.RetryCount,
	}, log)

	provider, shutdown, err := telemetry.NewProvider(ctx, cfg.Metrics, serviceName, Version)
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry provider: %w", err)
	}
	svc.telemetry = provider
	svc.shutdown = shutdown

	metrics, err := telemetry.NewMetrics(provider.Meters())
	if err != nil {
		svc.close()
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	var store out.RunStore
	if cfg.History.Enabled {
		svc.store, err = sqlite.Open(ctx, cfg.History.Path, log)
		if err != nil {
			svc.close()
			return nil, err
		}
		store = svc.store
	}

	svc.runner = task.NewRunner(store, metrics, cfg.History.Retention, log)
	svc.newFlush = func(keyspaces string) in.FlushService {
		if domain.SelectsAllKeyspaces(keyspaces) {
			keyspaces = ""
		}
		return flush.NewService(svc.client, flush.Config{Keyspaces: keyspaces}, log)
	}

	return svc, nil
}

// buildTrigger computes the flush trigger from configuration.
func buildTrigger(cfg Config, log zerolog.Logger) (domain.Trigger, error) {
	return schedule.Build(schedule.Spec{
		Name:           domain.TaskFlush,
		Type:           domain.SchedulerType(cfg.Flush.SchedulerType),
		Interval:       cfg.Flush.Interval,
		CronExpression: cfg.Flush.CronExpression,
	}, log)
}

// Run starts the scheduler and serves metrics until ctx is done or a
// termination signal is received.
func Run(ctx context.Context, configPath string) error {
	_, cfg, err := initConfig(configPath)
	if err != nil {
		return err
	}

	log, cleanup, err := initLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flushNow := make(chan os.Signal, 1)
	signal.Notify(flushNow, syscall.SIGHUP)
	defer signal.Stop(flushNow)

	return serve(ctx, cfg, log, flushNow)
}

// serve runs until ctx is done. Each value received on flushNow runs the
// flush job immediately.
func serve(ctx context.Context, cfg Config, log zerolog.Logger, flushNow <-chan os.Signal) error {
	log = log.With().Str("component", "app").Logger()

	// Fail fast on a bad schedule before touching any adapter.
	trigger, err := buildTrigger(cfg, log)
	if err != nil {
		return err
	}

	svc, err := createServices(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.close()

	scheduler := cron.NewScheduler(log)
	if trigger.Enabled() {
		flushSvc := svc.newFlush(cfg.Flush.Keyspaces)
		if err := scheduler.Add(domain.TaskFlush, "keyspace flush", trigger,
			svc.runner.Job(domain.TaskFlush, flushSvc.Run)); err != nil {
			return fmt.Errorf("failed to register flush job: %w", err)
		}
		log.Info().
			Str("trigger", string(trigger.Kind)).
			Time("next_run", scheduler.List()[0].NextRun).
			Msg("flush job registered")
	} else {
		log.Info().Msg("flush job disabled")
	}
	scheduler.Start(ctx)

	var server *http.Server
	if svc.telemetry.Enabled() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", svc.telemetry.Handler())
		server = &http.Server{
			Addr:              cfg.Metrics.Listen,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		log.Info().Str("listen", cfg.Metrics.Listen).Msg("metrics endpoint listening")
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	for done := false; !done; {
		select {
		case <-ctx.Done():
			done = true
		case <-flushNow:
			runFlushNow(ctx, scheduler, trigger, log)
		}
	}
	log.Info().Msg("shutting down")

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("metrics server shutdown error")
		}
	}
	scheduler.Stop()

	log.Info().Msg("shutdown complete")
	return nil
}

func runFlushNow(ctx context.Context, scheduler *cron.Scheduler, trigger domain.Trigger, log zerolog.Logger) {
	if !trigger.Enabled() {
		log.Warn().Msg("flush requested but the flush job is disabled")
		return
	}

	log.Info().Msg("flush requested")
	err := scheduler.RunNow(ctx, domain.TaskFlush)
	switch {
	case errors.Is(err, cron.ErrJobRunning):
		log.Info().Msg("flush already running, request ignored")
	case err != nil:
		log.Warn().Err(err).Msg("requested flush failed")
	}
}
