package maintenance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/pitwall/internal/models"
	"github.com/charlesng35/pitwall/pkg/logger"
	"github.com/charlesng35/pitwall/pkg/metrics"
)

const defaultRefreshSpec = "@hourly"

// PerformanceRecomputer lists teams and refreshes their stored performance.
// services.TeamService satisfies it.
type PerformanceRecomputer interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	RecomputePerformance(ctx context.Context, id string) (bool, error)
}

// RefreshStats summarises a single refresh run.
type RefreshStats struct {
	Checked int
	Updated int
	Failed  int
}

// RunStatus records the outcome of the most recent refresh run.
type RunStatus struct {
	At    time.Time
	Stats RefreshStats
	Err   error
}

// Refresher periodically recomputes team_performance for every team so stored
// values never drift from the rating engine.
type Refresher struct {
	teams    PerformanceRecomputer
	cron     *cron.Cron
	now      func() time.Time
	log      *zap.Logger
	schedule string

	mu   sync.Mutex
	last *RunStatus
}

// Option customises the Refresher.
type Option func(*Refresher)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(r *Refresher) {
		if c != nil {
			r.cron = c
		}
	}
}

// WithNow overrides the clock used to time refresh runs.
func WithNow(now func() time.Time) Option {
	return func(r *Refresher) {
		if now != nil {
			r.now = now
		}
	}
}

// WithSchedule overrides the cron specification for the refresh job.
func WithSchedule(spec string) Option {
	return func(r *Refresher) {
		if spec != "" {
			r.schedule = spec
		}
	}
}

// WithLogger overrides the refresher logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Refresher) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRefresher constructs a Refresher. A nil recomputer disables the job.
func NewRefresher(teams PerformanceRecomputer, opts ...Option) *Refresher {
	r := &Refresher{
		teams:    teams,
		now:      time.Now,
		schedule: defaultRefreshSpec,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.cron == nil {
		r.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}
	return r
}

// Start registers the refresh job and launches the scheduler.
func (r *Refresher) Start() error {
	if r.teams == nil {
		return nil
	}

	if _, err := r.cron.AddFunc(r.schedule, func() {
		if _, err := r.RunOnce(context.Background()); err != nil {
			r.log.Warn("performance refresh finished with errors", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("maintenance: schedule %q: %w", r.schedule, err)
	}

	r.cron.Start()
	return nil
}

// Stop halts the underlying scheduler. The returned context is done once
// running jobs complete.
func (r *Refresher) Stop() context.Context {
	if r.cron == nil {
		return context.Background()
	}
	return r.cron.Stop()
}

// RunOnce walks every team and persists stale performances. A failing team
// does not stop the run; failures are returned together.
func (r *Refresher) RunOnce(ctx context.Context) (RefreshStats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if r.teams == nil {
		return RefreshStats{}, errors.New("maintenance: no team service configured")
	}

	started := r.now()
	defer func() {
		metrics.RefreshDuration.Observe(r.now().Sub(started).Seconds())
	}()

	teams, err := r.teams.ListTeams(ctx)
	if err != nil {
		err = fmt.Errorf("maintenance: list teams: %w", err)
		r.record(RunStatus{At: started, Err: err})
		return RefreshStats{}, err
	}

	var (
		stats RefreshStats
		errs  error
	)
	for _, team := range teams {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}

		stats.Checked++
		updated, err := r.teams.RecomputePerformance(ctx, team.ID)
		if err != nil {
			stats.Failed++
			errs = multierr.Append(errs, fmt.Errorf("team %s: %w", team.ID, err))
			r.log.Warn("performance refresh failed",
				zap.String("team_id", team.ID),
				zap.String("name", team.Name),
				zap.Error(err),
			)
			continue
		}
		if updated {
			stats.Updated++
		}
	}

	r.record(RunStatus{At: started, Stats: stats, Err: errs})
	r.log.Info("performance refresh complete",
		zap.Int("checked", stats.Checked),
		zap.Int("updated", stats.Updated),
		zap.Int("failed", stats.Failed),
		zap.Duration("elapsed", r.now().Sub(started)),
	)
	return stats, errs
}

// LastRun returns the most recent run outcome. ok is false before the first run.
func (r *Refresher) LastRun() (status RunStatus, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last == nil {
		return RunStatus{}, false
	}
	return *r.last, true
}

func (r *Refresher) record(status RunStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = &status
}
