package task

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/bnema/keyflush/internal/adapters/out/telemetry"
	outmocks "github.com/bnema/keyflush/internal/boundaries/out/mocks"
	"github.com/bnema/keyflush/internal/domain"
)

func newTestRunner(t *testing.T, store *outmocks.MockRunStore, retention int) (*Runner, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	require.NoError(t, err)

	var r *Runner
	if store == nil {
		r = NewRunner(nil, metrics, retention, zerolog.Nop())
	} else {
		r = NewRunner(store, metrics, retention, zerolog.Nop())
	}

	clock := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	r.nowFn = func() time.Time {
		now := clock
		clock = clock.Add(1500 * time.Millisecond)
		return now
	}
	r.newID = func() string { return "run-1" }
	return r, reader
}

func runCount(t *testing.T, reader *sdkmetric.ManualReader, status domain.RunStatus) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "keyflush.task.runs" {
				continue
			}
			sum := m.Data.(metricdata.Sum[int64])
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value("status"); ok && v.AsString() == string(status) {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func TestRunnerRecordsSuccessfulRun(t *testing.T) {
	store := outmocks.NewMockRunStore(t)
	r, reader := newTestRunner(t, store, 10)

	store.EXPECT().Save(mock.Anything, domain.RunRecord{
		ID:        "run-1",
		Task:      domain.TaskFlush,
		StartedAt: time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Status:    domain.RunStatusSucceeded,
		Keyspaces: []string{"ks1", "ks2"},
	}).Return(nil).Once()
	store.EXPECT().Prune(mock.Anything, 10).Return(0, nil).Once()

	record, err := r.Run(context.Background(), domain.TaskFlush, func(context.Context) ([]string, error) {
		return []string{"ks1", "ks2"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusSucceeded, record.Status)
	assert.Equal(t, []string{"ks1", "ks2"}, record.Keyspaces)
	assert.Equal(t, int64(1), runCount(t, reader, domain.RunStatusSucceeded))
}

func TestRunnerRecordsFailedRunAndReturnsTaskError(t *testing.T) {
	store := outmocks.NewMockRunStore(t)
	r, reader := newTestRunner(t, store, 0)

	taskErr := &domain.TaskError{Keyspace: "ks2", Err: errors.New("connection reset")}
	store.EXPECT().Save(mock.Anything, mock.MatchedBy(func(rec domain.RunRecord) bool {
		return rec.Status == domain.RunStatusFailed &&
			rec.Error == taskErr.Error() &&
			assert.ObjectsAreEqual([]string{"ks1"}, rec.Keyspaces)
	})).Return(nil).Once()

	record, err := r.Run(context.Background(), domain.TaskFlush, func(context.Context) ([]string, error) {
		return []string{"ks1"}, taskErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTask)
	assert.Equal(t, domain.RunStatusFailed, record.Status)
	assert.Equal(t, int64(1), runCount(t, reader, domain.RunStatusFailed))
}

func TestRunnerStoreFailureIsNotReturned(t *testing.T) {
	store := outmocks.NewMockRunStore(t)
	var buf bytes.Buffer
	r, _ := newTestRunner(t, store, 5)
	r.log = zerolog.New(&buf)

	store.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := r.Run(context.Background(), domain.TaskFlush, func(context.Context) ([]string, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "failed to record task run")
	assert.Contains(t, buf.String(), "disk full")
}

func TestRunnerPruneFailureIsNotReturned(t *testing.T) {
	store := outmocks.NewMockRunStore(t)
	r, _ := newTestRunner(t, store, 5)

	store.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
	store.EXPECT().Prune(mock.Anything, 5).Return(0, errors.New("locked")).Once()

	_, err := r.Run(context.Background(), domain.TaskFlush, func(context.Context) ([]string, error) {
		return []string{}, nil
	})
	require.NoError(t, err)
}

func TestRunnerNilResultBecomesEmpty(t *testing.T) {
	r, _ := newTestRunner(t, nil, 0)

	record, err := r.Run(context.Background(), domain.TaskFlush, func(context.Context) ([]string, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.NotNil(t, record.Keyspaces)
	assert.Empty(t, record.Keyspaces)
}

func TestRunnerSavesWithCanceledContext(t *testing.T) {
	store := outmocks.NewMockRunStore(t)
	r, _ := newTestRunner(t, store, 0)

	ctx, cancel := context.WithCancel(context.Background())
	var saveErr error
	store.EXPECT().Save(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ domain.RunRecord) error {
			saveErr = ctx.Err()
			return saveErr
		}).Once()

	_, err := r.Run(ctx, domain.TaskFlush, func(context.Context) ([]string, error) {
		cancel()
		return nil, context.Canceled
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, saveErr)
}

func TestRunnerJobAdaptsTask(t *testing.T) {
	r, reader := newTestRunner(t, nil, 0)

	calls := 0
	job := r.Job(domain.TaskFlush, func(context.Context) ([]string, error) {
		calls++
		return []string{"ks1"}, nil
	})

	require.NoError(t, job(context.Background()))
	require.NoError(t, job(context.Background()))
	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(2), runCount(t, reader, domain.RunStatusSucceeded))
}
