package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"linkpulse/internal/config"
	"linkpulse/internal/metrics"
	"linkpulse/internal/model"

	"github.com/rs/zerolog/log"
)

// AggregatorStats is a snapshot of the rollup jobs
type AggregatorStats struct {
	Running    bool  `json:"running"`
	HourlyRuns int64 `json:"hourly_runs"`
	DailyRuns  int64 `json:"daily_runs"`
	FailedRuns int64 `json:"failed_runs"`
}

// StatsAggregator periodically rolls raw clicks up into hourly and daily stats
type StatsAggregator struct {
	repo    StatsRepositoryInterface
	cfg     config.AggregatorConfig
	metrics *metrics.Metrics
	now     func() time.Time

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	running   atomic.Bool

	hourlyRuns atomic.Int64
	dailyRuns  atomic.Int64
	failedRuns atomic.Int64
}

// NewStatsAggregator creates a new Stats Aggregator
func NewStatsAggregator(repo StatsRepositoryInterface, cfg config.AggregatorConfig, m *metrics.Metrics) *StatsAggregator {
	if cfg.HourlyInterval <= 0 {
		cfg.HourlyInterval = 5 * time.Minute
	}
	if cfg.DailyInterval <= 0 {
		cfg.DailyInterval = time.Hour
	}
	if cfg.HoursBack <= 0 {
		cfg.HoursBack = 2
	}
	if cfg.DaysBack <= 0 {
		cfg.DaysBack = 2
	}
	if cfg.TopN <= 0 {
		cfg.TopN = model.DefaultTopN
	}
	if m == nil {
		m = metrics.NewNop()
	}

	return &StatsAggregator{
		repo:    repo,
		cfg:     cfg,
		metrics: m,
		now:     time.Now,
	}
}

// Start launches the hourly and daily jobs. Each job first runs one interval after Start.
func (a *StatsAggregator) Start(ctx context.Context) {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	if a.cancel != nil {
		log.Warn().Msg("Stats aggregator already started")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.running.Store(true)

	a.wg.Add(2)
	go a.schedule(ctx, metrics.JobHourly, a.cfg.HourlyInterval, func(ctx context.Context) (int, error) {
		return a.AggregateHourly(ctx, a.cfg.HoursBack)
	})
	go a.schedule(ctx, metrics.JobDaily, a.cfg.DailyInterval, func(ctx context.Context) (int, error) {
		return a.AggregateDaily(ctx, a.cfg.DaysBack)
	})

	log.Info().
		Dur("hourly_interval", a.cfg.HourlyInterval).
		Dur("daily_interval", a.cfg.DailyInterval).
		Msg("Stats aggregator started")
}

// Stop cancels both jobs and waits for them to return
func (a *StatsAggregator) Stop() {
	a.lifecycle.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.lifecycle.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	a.wg.Wait()
	a.running.Store(false)

	log.Info().Msg("Stats aggregator stopped")
}

// a job runs inline on its own goroutine, so it never overlaps itself
func (a *StatsAggregator) schedule(ctx context.Context, job string, interval time.Duration, run func(context.Context) (int, error)) {
	defer a.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runJob(ctx, job, run)
		}
	}
}

func (a *StatsAggregator) runJob(ctx context.Context, job string, run func(context.Context) (int, error)) {
	start := time.Now()
	rows, err := safeRun(ctx, run)
	elapsed := time.Since(start)

	a.metrics.AggregationDuration.WithLabelValues(job).Observe(elapsed.Seconds())

	if err != nil {
		a.failedRuns.Add(1)
		a.metrics.AggregationRuns.WithLabelValues(job, metrics.StatusFailed).Inc()
		if ctx.Err() == nil {
			log.Error().Err(err).Str("job", job).Msg("Aggregation failed")
		}
		return
	}

	switch job {
	case metrics.JobHourly:
		a.hourlyRuns.Add(1)
	case metrics.JobDaily:
		a.dailyRuns.Add(1)
	}
	a.metrics.AggregationRuns.WithLabelValues(job, metrics.StatusSuccess).Inc()
	a.metrics.RowsAggregated.WithLabelValues(job).Add(float64(rows))

	log.Info().Str("job", job).Int("rows", rows).Dur("duration", elapsed).Msg("Aggregation completed")
}

// safeRun turns a panic inside a job into a failed run
func safeRun(ctx context.Context, run func(context.Context) (int, error)) (rows int, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = 0, fmt.Errorf("aggregation panicked: %v", r)
		}
	}()
	return run(ctx)
}

// AggregateHourly recomputes the hourly rollups from the start of the hour
// hoursBack hours ago and returns the rows upserted
func (a *StatsAggregator) AggregateHourly(ctx context.Context, hoursBack int) (int, error) {
	since := model.TruncateHour(a.now()).Add(-time.Duration(hoursBack) * time.Hour)

	buckets, err := a.repo.HourlyBuckets(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to group clicks by hour: %w", err)
	}
	if len(buckets) == 0 {
		log.Debug().Time("since", since).Msg("No clicks to aggregate hourly")
		return 0, nil
	}

	for i := range buckets {
		buckets[i].Hour = model.TruncateHour(buckets[i].Hour)
	}

	if err := a.repo.UpsertHourlyStats(ctx, buckets); err != nil {
		return 0, fmt.Errorf("failed to upsert hourly stats: %w", err)
	}
	return len(buckets), nil
}

// AggregateDaily recomputes the daily rollups of every link with clicks
// since daysBack days ago, one row per link and day with clicks
func (a *StatsAggregator) AggregateDaily(ctx context.Context, daysBack int) (int, error) {
	today := model.TruncateDay(a.now())
	start := today.AddDate(0, 0, -daysBack)

	links, err := a.repo.LinksWithClicksSince(ctx, start)
	if err != nil {
		return 0, fmt.Errorf("failed to list active links: %w", err)
	}
	if len(links) == 0 {
		log.Debug().Time("since", start).Msg("No clicks to aggregate daily")
		return 0, nil
	}

	rows := 0
	for _, linkID := range links {
		for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
			next := day.AddDate(0, 0, 1)

			totals, err := a.repo.ClickTotals(ctx, linkID, day, next)
			if err != nil {
				return rows, fmt.Errorf("failed to count clicks of %s on %s: %w", linkID, day.Format(time.DateOnly), err)
			}
			if totals.Clicks == 0 {
				continue
			}

			referrers, err := a.repo.ReferrerCounts(ctx, linkID, day, next, a.cfg.TopN)
			if err != nil {
				return rows, fmt.Errorf("failed to rank referrers of %s: %w", linkID, err)
			}
			countries, err := a.repo.CountryCounts(ctx, linkID, day, next, a.cfg.TopN)
			if err != nil {
				return rows, fmt.Errorf("failed to rank countries of %s: %w", linkID, err)
			}

			stat := model.NewDailyStat(linkID, day, totals.Clicks, totals.UniqueVisitors,
				model.TopN(referrers, a.cfg.TopN), model.TopN(countries, a.cfg.TopN))
			if err := a.repo.UpsertDailyStat(ctx, stat); err != nil {
				return rows, fmt.Errorf("failed to upsert daily stats of %s: %w", linkID, err)
			}
			rows++
		}
	}

	return rows, nil
}

// Running reports whether the jobs are scheduled
func (a *StatsAggregator) Running() bool {
	return a.running.Load()
}

// Stats returns a snapshot of the job counters
func (a *StatsAggregator) Stats() AggregatorStats {
	return AggregatorStats{
		Running:    a.running.Load(),
		HourlyRuns: a.hourlyRuns.Load(),
		DailyRuns:  a.dailyRuns.Load(),
		FailedRuns: a.failedRuns.Load(),
	}
}
