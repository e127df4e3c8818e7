package monitoring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/pitwall/internal/app/maintenance"
	"github.com/charlesng35/pitwall/internal/cache"
	"github.com/charlesng35/pitwall/internal/database/testutil"
	"github.com/charlesng35/pitwall/internal/monitoring"
	"github.com/charlesng35/pitwall/internal/monitoring/checks"
)

func TestHealthManagerEvaluate(t *testing.T) {
	t.Parallel()

	manager := monitoring.NewHealthManager()
	manager.RegisterReadiness(monitoring.NewCheck("database", func(ctx context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: monitoring.StatusUp}
	}))
	manager.RegisterReadiness(monitoring.NewCheck("cache", func(ctx context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: monitoring.StatusDown, Details: "connection refused"}
	}))
	manager.RegisterReadiness(monitoring.NewCheck("", nil))

	report := manager.EvaluateReadiness(context.Background())
	require.False(t, report.Success)
	require.Equal(t, monitoring.StatusDown, report.Status)
	require.Len(t, report.Checks, 2)
	require.Equal(t, "cache", report.Checks[1].Component)

	live := manager.EvaluateLiveness(context.Background())
	require.True(t, live.Success)
	require.Empty(t, live.Checks)
}

func TestHealthManagerRecoversPanics(t *testing.T) {
	t.Parallel()

	manager := monitoring.NewHealthManager()
	manager.RegisterLiveness(monitoring.NewCheck("boom", func(context.Context) monitoring.ProbeResult {
		panic("exploded")
	}))
	manager.RegisterLiveness(monitoring.NewCheck("slow", func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: monitoring.StatusDegraded}
	}))

	report := manager.EvaluateLiveness(context.Background())
	require.Equal(t, monitoring.StatusDown, report.Status)
	require.Equal(t, "boom", report.Checks[0].Component)
	require.Equal(t, "exploded", report.Checks[0].Details)
}

func TestResultFromError(t *testing.T) {
	t.Parallel()

	require.Equal(t, monitoring.StatusUp, monitoring.ResultFromError("db", nil, time.Millisecond).Status)
	require.Equal(t, monitoring.StatusDown, monitoring.ResultFromError("db", errors.New("nope"), 0).Status)
	require.Equal(t, monitoring.StatusDegraded, monitoring.ResultFromError("db", context.DeadlineExceeded, 0).Status)
}

func TestDatabaseCheck(t *testing.T) {
	t.Parallel()

	db := testutil.MustOpenTestDB(t)
	result := checks.Database(db, 0).Run(context.Background())
	require.Equal(t, monitoring.StatusUp, result.Status)

	result = checks.Database(nil, 0).Run(context.Background())
	require.Equal(t, monitoring.StatusDown, result.Status)
}

type failingPinger struct {
	cache.Store
}

func (failingPinger) Ping(context.Context) error {
	return errors.New("redis unreachable")
}

func TestCacheCheck(t *testing.T) {
	t.Parallel()

	result := checks.Cache(cache.NewMemoryStore(0), 0).Run(context.Background())
	require.Equal(t, monitoring.StatusUp, result.Status)

	result = checks.Cache(nil, 0).Run(context.Background())
	require.Equal(t, monitoring.StatusUp, result.Status)

	result = checks.Cache(failingPinger{Store: cache.NewMemoryStore(0)}, 0).Run(context.Background())
	require.Equal(t, monitoring.StatusDegraded, result.Status)
	require.Contains(t, result.Details, "redis unreachable")
}

type staticReporter struct {
	status maintenance.RunStatus
	ok     bool
}

func (s staticReporter) LastRun() (maintenance.RunStatus, bool) {
	return s.status, s.ok
}

func TestRefresherCheck(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	run := func(r checks.RunReporter) monitoring.ProbeResult {
		return checks.Refresher(r, time.Hour, clock).Run(context.Background())
	}

	require.Equal(t, monitoring.StatusUp, run(nil).Status)
	require.Equal(t, monitoring.StatusUp, run(staticReporter{}).Status)

	healthy := staticReporter{ok: true, status: maintenance.RunStatus{
		At:    now.Add(-time.Minute),
		Stats: maintenance.RefreshStats{Checked: 3, Updated: 1},
	}}
	require.Equal(t, monitoring.StatusUp, run(healthy).Status)

	partial := staticReporter{ok: true, status: maintenance.RunStatus{
		At:    now.Add(-time.Minute),
		Stats: maintenance.RefreshStats{Checked: 3, Failed: 1},
		Err:   errors.New("team x inconsistent"),
	}}
	result := run(partial)
	require.Equal(t, monitoring.StatusDegraded, result.Status)
	require.Equal(t, "1 of 3 teams failed", result.Details)

	failed := staticReporter{ok: true, status: maintenance.RunStatus{
		At:  now.Add(-time.Minute),
		Err: errors.New("list teams: db down"),
	}}
	require.Equal(t, monitoring.StatusDown, run(failed).Status)

	stale := staticReporter{ok: true, status: maintenance.RunStatus{
		At:    now.Add(-2 * time.Hour),
		Stats: maintenance.RefreshStats{Checked: 1},
	}}
	result = run(stale)
	require.Equal(t, monitoring.StatusDegraded, result.Status)
	require.Equal(t, "last run 2h0m0s ago", result.Details)
}
