package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bnema/keyflush/internal/domain"
)

const meterName = "keyflush"

// Metrics holds keyflush OTel metric instruments.
type Metrics struct {
	TaskRuns         metric.Int64Counter
	TaskDuration     metric.Float64Histogram
	KeyspacesFlushed metric.Int64Counter
}

// NewMetrics creates all keyflush metric instruments on the given provider.
// A nil provider falls back to the global one, which is a noop until set.
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)
	m := &Metrics{}
	var err error

	if m.TaskRuns, err = meter.Int64Counter("keyflush.task.runs",
		metric.WithDescription("Total task runs by outcome")); err != nil {
		return nil, err
	}
	if m.TaskDuration, err = meter.Float64Histogram("keyflush.task.duration_seconds",
		metric.WithDescription("Task run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 5, 10, 30, 60, 300, 900, 1800)); err != nil {
		return nil, err
	}
	if m.KeyspacesFlushed, err = meter.Int64Counter("keyflush.keyspaces.flushed",
		metric.WithDescription("Total keyspaces flushed")); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordRun records the outcome of one task run.
func (m *Metrics) RecordRun(ctx context.Context, task string, status domain.RunStatus, duration time.Duration, keyspaces int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("task", task),
		attribute.String("status", string(status)),
	)
	m.TaskRuns.Add(ctx, 1, attrs)
	m.TaskDuration.Record(ctx, duration.Seconds(), attrs)
	if keyspaces > 0 {
		m.KeyspacesFlushed.Add(ctx, int64(keyspaces), metric.WithAttributes(attribute.String("task", task)))
	}
}
