package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keyflush/internal/domain"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	var cfg Config
	cfg.Server.DataDir = t.TempDir()
	cfg.Management.URL = "http://127.0.0.1:1/jolokia"
	cfg.Management.Timeout = time.Second
	cfg.Flush.SchedulerType = string(domain.SchedulerHour)
	cfg.History.Enabled = true
	cfg.History.Path = filepath.Join(cfg.Server.DataDir, "history.db")
	return cfg
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServeFailsFastOnInvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Flush.SchedulerType = string(domain.SchedulerCron)
	cfg.Flush.CronExpression = "61 * * * *"

	err := serve(context.Background(), cfg, zerolog.Nop(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCron)
}

func TestServeFailsOnUnsupportedInterval(t *testing.T) {
	cfg := testConfig(t)
	cfg.Flush.Interval = "weekly=1"

	err := serve(context.Background(), cfg, zerolog.Nop(), nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
}

func TestServeStopsOnContextCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Flush.Interval = "hour=0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zerolog.Nop(), nil) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServeExposesMetrics(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = true
	cfg.Metrics.Listen = freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zerolog.Nop(), nil) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.Metrics.Listen + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil || resp.StatusCode != http.StatusOK {
			return false
		}
		body = string(data)
		return true
	}, 5*time.Second, 20*time.Millisecond)

	assert.Contains(t, body, "target_info")
}

func TestServeFlushesOnRequest(t *testing.T) {
	node := &fakeNode{keyspaces: []string{"system", "ks1", "ks2"}}
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	cfg.Management.URL = srv.URL + "/jolokia"
	cfg.Flush.Interval = "daily=3"

	flushNow := make(chan os.Signal, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zerolog.Nop(), flushNow) }()

	flushNow <- syscall.SIGHUP
	require.Eventually(t, func() bool {
		return len(node.flushedKeyspaces()) == 2
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"ks1", "ks2"}, node.flushedKeyspaces())

	cancel()
	require.NoError(t, <-done)
}

func TestServeIgnoresFlushRequestWhenDisabled(t *testing.T) {
	node := &fakeNode{keyspaces: []string{"ks1"}}
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	cfg.Management.URL = srv.URL + "/jolokia"

	flushNow := make(chan os.Signal, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zerolog.Nop(), flushNow) }()

	flushNow <- syscall.SIGHUP
	require.Eventually(t, func() bool { return len(flushNow) == 0 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Empty(t, node.flushedKeyspaces())
}
