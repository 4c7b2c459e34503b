package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keyflush/internal/app"
	"github.com/bnema/keyflush/internal/domain"
)

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write failed")
}

type fakeKernel struct {
	flushArg  string
	record    domain.RunRecord
	flushErr  error
	keyspaces []app.KeyspaceInfo
	listErr   error
	trigger   domain.Trigger
	runs      []time.Time
	schedErr  error
	history   []domain.RunRecord
	histLimit int
	histErr   error
	closed    bool
}

func (f *fakeKernel) Flush(_ context.Context, keyspaces string) (domain.RunRecord, error) {
	f.flushArg = keyspaces
	return f.record, f.flushErr
}

func (f *fakeKernel) Keyspaces(context.Context) ([]app.KeyspaceInfo, error) {
	return f.keyspaces, f.listErr
}

func (f *fakeKernel) Schedule(time.Time, int) (domain.Trigger, []time.Time, error) {
	return f.trigger, f.runs, f.schedErr
}

func (f *fakeKernel) History(_ context.Context, limit int) ([]domain.RunRecord, error) {
	f.histLimit = limit
	return f.history, f.histErr
}

func (f *fakeKernel) Close() error {
	f.closed = true
	return nil
}

// useKernel swaps the kernel factory for the duration of the test.
func useKernel(t *testing.T, k *fakeKernel) *string {
	t.Helper()
	var gotPath string
	orig := openKernel
	openKernel = func(_ context.Context, configPath string) (kernel, error) {
		gotPath = configPath
		return k, nil
	}
	t.Cleanup(func() { openKernel = orig })
	return &gotPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFlushCommand(t *testing.T) {
	k := &fakeKernel{record: domain.RunRecord{
		ID:        "0b5c3f1e-2f4b-4c1d-9a57-8a1f3b2c4d5e",
		Status:    domain.RunStatusSucceeded,
		Duration:  1500 * time.Millisecond,
		Keyspaces: []string{"ks1", "ks2"},
	}}
	path := useKernel(t, k)

	out, err := execute(t, "flush", "--keyspaces", "ks1,ks2", "-c", "/etc/keyflush/keyflush.toml")
	require.NoError(t, err)

	assert.Equal(t, "ks1,ks2", k.flushArg)
	assert.Equal(t, "/etc/keyflush/keyflush.toml", *path)
	assert.True(t, k.closed)
	assert.Contains(t, out, "Flushed 2 keyspace(s) in 1.5s")
	assert.Contains(t, out, "ks1")
	assert.Contains(t, out, "ks2")
	assert.Contains(t, out, "0b5c3f1e-2f4b-4c1d-9a57-8a1f3b2c4d5e")
}

func TestFlushCommand_DefaultsToConfig(t *testing.T) {
	k := &fakeKernel{record: domain.RunRecord{Status: domain.RunStatusSucceeded, Keyspaces: []string{}}}
	useKernel(t, k)

	out, err := execute(t, "flush")
	require.NoError(t, err)
	assert.Empty(t, k.flushArg)
	assert.Contains(t, out, "nothing was flushed")
}

func TestFlushCommand_Failure(t *testing.T) {
	flushErr := &domain.TaskError{Keyspace: "ks2", Err: domain.ErrRemoteOperation}
	k := &fakeKernel{
		record:   domain.RunRecord{Status: domain.RunStatusFailed, Duration: 20 * time.Millisecond},
		flushErr: flushErr,
	}
	useKernel(t, k)

	out, err := execute(t, "flush", "-k", "ks1,ks2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTask)
	assert.Contains(t, out, "Flush failed after 20ms")
	assert.True(t, k.closed)
}

func TestCommands_KernelInitError(t *testing.T) {
	orig := openKernel
	openKernel = func(context.Context, string) (kernel, error) {
		return nil, domain.ErrInvalidArgument
	}
	t.Cleanup(func() { openKernel = orig })

	for _, args := range [][]string{{"flush"}, {"keyspaces"}, {"schedule"}, {"history"}} {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, args[0])
	}
}

func TestKeyspacesCommand(t *testing.T) {
	k := &fakeKernel{keyspaces: []app.KeyspaceInfo{
		{Name: "orders"},
		{Name: "system", Protected: true},
		{Name: "system_auth", Protected: true},
	}}
	useKernel(t, k)

	out, err := execute(t, "keyspaces")
	require.NoError(t, err)
	out = stripANSI(out)
	assert.Contains(t, out, "orders")
	assert.Contains(t, out, "system_auth")
	assert.Contains(t, out, "protected")
	assert.Contains(t, out, "Total keyspaces: 3 (protected: 2)")
}

func TestKeyspacesCommand_Empty(t *testing.T) {
	useKernel(t, &fakeKernel{})

	out, err := execute(t, "keyspaces")
	require.NoError(t, err)
	assert.Contains(t, out, "No keyspaces found")
}

func TestKeyspacesCommand_Error(t *testing.T) {
	useKernel(t, &fakeKernel{listErr: domain.ErrEndpointUnavailable})

	_, err := execute(t, "keyspaces")
	assert.ErrorIs(t, err, domain.ErrEndpointUnavailable)
}

func TestScheduleCommand(t *testing.T) {
	parsed, err := cron.ParseStandard("30 2 * * *")
	require.NoError(t, err)
	from := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	k := &fakeKernel{
		trigger: domain.Trigger{Name: "flush", Kind: domain.TriggerCron, Expression: "0 30 2 * * ?", Schedule: parsed},
		runs:    []time.Time{parsed.Next(from), parsed.Next(parsed.Next(from))},
	}

	var out bytes.Buffer
	require.NoError(t, runSchedule(k, from, 2, &out))
	assert.Contains(t, out.String(), "cron 0 30 2 * * ?")
	assert.Contains(t, out.String(), "2026-02-08T02:30:00Z")
	assert.Contains(t, out.String(), "2026-02-09T02:30:00Z")
}

func TestScheduleCommand_Disabled(t *testing.T) {
	useKernel(t, &fakeKernel{trigger: domain.DisabledTrigger("flush")})

	out, err := execute(t, "schedule")
	require.NoError(t, err)
	assert.Contains(t, out, "Flush schedule is disabled")
}

func TestScheduleCommand_InvalidSchedule(t *testing.T) {
	useKernel(t, &fakeKernel{schedErr: domain.ErrInvalidCron})

	_, err := execute(t, "schedule")
	assert.ErrorIs(t, err, domain.ErrInvalidCron)
}

func TestScheduleCommand_NegativeCount(t *testing.T) {
	useKernel(t, &fakeKernel{})

	_, err := execute(t, "schedule", "--count", "-1")
	assert.ErrorContains(t, err, "--count")
}

func TestDescribeTrigger(t *testing.T) {
	assert.Equal(t, "hourly at minute 15", describeTrigger(domain.Trigger{Kind: domain.TriggerHourly, Minute: 15}))
	assert.Equal(t, "daily at 03:00", describeTrigger(domain.Trigger{Kind: domain.TriggerDaily, Hour: 3}))
	assert.Equal(t, "cron @daily", describeTrigger(domain.Trigger{Kind: domain.TriggerCron, Expression: "@daily"}))
	assert.Equal(t, "disabled", describeTrigger(domain.DisabledTrigger("flush")))
}

func TestHistoryCommand(t *testing.T) {
	started := time.Date(2026, 2, 7, 3, 0, 0, 0, time.UTC)
	k := &fakeKernel{history: []domain.RunRecord{
		{ID: "aaaaaaaa-1111", StartedAt: started.Add(time.Hour), Duration: time.Second, Status: domain.RunStatusFailed, Keyspaces: []string{"ks1"}, Error: "endpoint unavailable"},
		{ID: "bbbbbbbb-2222", StartedAt: started, Duration: 2 * time.Second, Status: domain.RunStatusSucceeded, Keyspaces: []string{"ks1", "ks2"}},
	}}
	useKernel(t, k)

	out, err := execute(t, "history", "--limit", "5")
	require.NoError(t, err)
	out = stripANSI(out)

	assert.Equal(t, 5, k.histLimit)
	assert.Contains(t, out, "aaaaaaaa")
	assert.NotContains(t, out, "aaaaaaaa-1111")
	assert.Contains(t, out, "ks1,ks2")
	assert.Contains(t, out, "succeeded")
	assert.Contains(t, out, "endpoint unavailable")
	assert.Contains(t, out, "Total runs: 2 (failed: 1)")
}

func TestHistoryCommand_DefaultLimitAndEmpty(t *testing.T) {
	k := &fakeKernel{}
	useKernel(t, k)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Equal(t, defaultHistoryLimit, k.histLimit)
	assert.Contains(t, out, "No runs recorded yet")
}

func TestServeCommand(t *testing.T) {
	var gotPath string
	orig := runServer
	runServer = func(_ context.Context, configPath string) error {
		gotPath = configPath
		return nil
	}
	t.Cleanup(func() { runServer = orig })

	_, err := execute(t, "serve", "--config", "/tmp/keyflush.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/keyflush.toml", gotPath)
}

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit, origDate, origApp := Version, Commit, BuildDate, app.Version
	t.Cleanup(func() {
		Version, Commit, BuildDate, app.Version = origVersion, origCommit, origDate, origApp
	})

	SetVersionInfo("1.2.3", "abc123", "")
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "keyflush 1.2.3")
	assert.Contains(t, out, "Commit: abc123")
	assert.Contains(t, out, "Build Date: unknown")
	assert.Equal(t, "1.2.3", app.Version)
}

func TestRunKeyspaces_ReturnsWriteError(t *testing.T) {
	k := &fakeKernel{keyspaces: []app.KeyspaceInfo{{Name: "orders"}}}
	err := runKeyspaces(context.Background(), k, failingWriter{})
	assert.ErrorContains(t, err, "write failed")
}

func TestShortRunID(t *testing.T) {
	assert.Equal(t, "abc", shortRunID("abc"))
	assert.Equal(t, "12345678", shortRunID("123456789"))
}

func TestFlushCommand_PassesAllSelector(t *testing.T) {
	k := &fakeKernel{record: domain.RunRecord{Status: domain.RunStatusSucceeded, Keyspaces: []string{"ks1"}}}
	useKernel(t, k)

	_, err := execute(t, "flush", "--keyspaces", domain.AllKeyspaces)
	require.NoError(t, err)
	assert.Equal(t, "all", k.flushArg)
}

func TestRenderSelection(t *testing.T) {
	assert.Equal(t, "yes", renderSelection(app.KeyspaceInfo{Name: "orders"}))
	assert.Contains(t, stripANSI(renderSelection(app.KeyspaceInfo{Name: "system", Protected: true})), "protected")
}
