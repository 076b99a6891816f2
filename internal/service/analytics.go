package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linkpulse/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Breakdown limits and the default query window
const (
	DefaultBreakdownLimit = 10
	MaxBreakdownLimit     = 50
	DefaultRangeDays      = 30
)

var (
	// ErrInvalidRange is returned when start_date is after end_date
	ErrInvalidRange = errors.New("start_date must be before or equal to end_date")
	// ErrInvalidGranularity is returned for granularities other than hourly and daily
	ErrInvalidGranularity = errors.New("granularity must be hourly or daily")
)

const (
	dimensionReferrers = "referrers"
	dimensionCountries = "countries"
)

// AnalyticsService serves link analytics from the rollup tables,
// falling back to raw clicks while rollups are missing
type AnalyticsService struct {
	repo AnalyticsRepositoryInterface
	now  func() time.Time
}

// NewAnalyticsService creates a new Analytics Service
func NewAnalyticsService(repo AnalyticsRepositoryInterface) *AnalyticsService {
	return &AnalyticsService{
		repo: repo,
		now:  time.Now,
	}
}

// Summary returns all-time totals and recent activity of a link
func (as *AnalyticsService) Summary(ctx context.Context, linkID uuid.UUID) (*model.AnalyticsSummary, error) {
	today := model.TruncateDay(as.now())

	total, err := as.repo.SumDailyStats(ctx, linkID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to sum daily stats: %w", err)
	}
	if total.Clicks == 0 {
		total, err = as.repo.ClickTotals(ctx, linkID, time.Time{}, time.Time{})
		if err != nil {
			return nil, fmt.Errorf("failed to count clicks: %w", err)
		}
	}

	clicksToday, err := as.clicksOn(ctx, linkID, today)
	if err != nil {
		return nil, err
	}

	week, err := as.repo.SumDailyStats(ctx, linkID, today.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("failed to sum weekly stats: %w", err)
	}
	month, err := as.repo.SumDailyStats(ctx, linkID, today.AddDate(0, 0, -DefaultRangeDays))
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly stats: %w", err)
	}

	log.Debug().Str("link_id", linkID.String()).Int64("total_clicks", total.Clicks).Msg("Summary fetched")

	return &model.AnalyticsSummary{
		LinkID:          linkID,
		TotalClicks:     total.Clicks,
		UniqueVisitors:  total.UniqueVisitors,
		ClicksToday:     clicksToday,
		ClicksThisWeek:  week.Clicks,
		ClicksThisMonth: month.Clicks,
	}, nil
}

// clicksOn reads the day's rollup, or the raw clicks when it has not been aggregated yet
func (as *AnalyticsService) clicksOn(ctx context.Context, linkID uuid.UUID, day time.Time) (int64, error) {
	next := day.AddDate(0, 0, 1)

	stats, err := as.repo.DailyStatsInRange(ctx, linkID, day, next)
	if err != nil {
		return 0, fmt.Errorf("failed to read today's stats: %w", err)
	}

	var clicks int64
	for _, s := range stats {
		clicks += s.ClickCount
	}
	if clicks > 0 {
		return clicks, nil
	}

	raw, err := as.repo.ClickTotals(ctx, linkID, day, next)
	if err != nil {
		return 0, fmt.Errorf("failed to count today's clicks: %w", err)
	}
	return raw.Clicks, nil
}

// Timeseries returns the rollups of a link over a date range, oldest first
func (as *AnalyticsService) Timeseries(ctx context.Context, linkID uuid.UUID, r model.DateRange, granularity string) (*model.TimeseriesResponse, error) {
	r, err := as.resolveRange(r)
	if err != nil {
		return nil, err
	}
	if granularity == "" {
		granularity = model.GranularityDaily
	}

	data := make([]model.TimeseriesPoint, 0)

	switch granularity {
	case model.GranularityHourly:
		stats, err := as.repo.HourlyStatsInRange(ctx, linkID, r.From(), r.Until())
		if err != nil {
			return nil, fmt.Errorf("failed to read hourly stats: %w", err)
		}
		for _, s := range stats {
			data = append(data, model.TimeseriesPoint{Timestamp: s.Hour.UTC(), Clicks: s.ClickCount, UniqueVisitors: s.UniqueVisitors})
		}
	case model.GranularityDaily:
		stats, err := as.repo.DailyStatsInRange(ctx, linkID, r.From(), r.Until())
		if err != nil {
			return nil, fmt.Errorf("failed to read daily stats: %w", err)
		}
		for _, s := range stats {
			data = append(data, model.TimeseriesPoint{Timestamp: model.TruncateDay(s.Date), Clicks: s.ClickCount, UniqueVisitors: s.UniqueVisitors})
		}
	default:
		return nil, ErrInvalidGranularity
	}

	log.Debug().Str("link_id", linkID.String()).Str("granularity", granularity).Int("points", len(data)).Msg("Timeseries fetched")

	return &model.TimeseriesResponse{
		LinkID:      linkID,
		Granularity: granularity,
		StartDate:   r.Start.Format(time.DateOnly),
		EndDate:     r.End.Format(time.DateOnly),
		Data:        data,
	}, nil
}

// Referrers returns the top referrers of a link over a date range
func (as *AnalyticsService) Referrers(ctx context.Context, linkID uuid.UUID, r model.DateRange, limit int) (*model.BreakdownResponse, error) {
	return as.breakdown(ctx, linkID, r, limit, dimensionReferrers)
}

// Countries returns the top countries of a link over a date range
func (as *AnalyticsService) Countries(ctx context.Context, linkID uuid.UUID, r model.DateRange, limit int) (*model.BreakdownResponse, error) {
	return as.breakdown(ctx, linkID, r, limit, dimensionCountries)
}

func (as *AnalyticsService) breakdown(ctx context.Context, linkID uuid.UUID, r model.DateRange, limit int, dimension string) (*model.BreakdownResponse, error) {
	r, err := as.resolveRange(r)
	if err != nil {
		return nil, err
	}
	limit = ClampLimit(limit)

	stats, err := as.repo.DailyStatsInRange(ctx, linkID, r.From(), r.Until())
	if err != nil {
		return nil, fmt.Errorf("failed to read daily stats: %w", err)
	}

	var total int64
	lists := make([]model.RankedList, 0, len(stats))
	for _, s := range stats {
		total += s.ClickCount
		if dimension == dimensionReferrers {
			lists = append(lists, s.TopReferrers.Data())
		} else {
			lists = append(lists, s.TopCountries.Data())
		}
	}
	merged := model.MergeRanked(lists...)

	// rollups not written yet for this range
	if len(merged) == 0 {
		if dimension == dimensionReferrers {
			merged, err = as.repo.ReferrerCounts(ctx, linkID, r.From(), r.Until(), limit)
		} else {
			merged, err = as.repo.CountryCounts(ctx, linkID, r.From(), r.Until(), limit)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to rank raw %s: %w", dimension, err)
		}

		totals, err := as.repo.ClickTotals(ctx, linkID, r.From(), r.Until())
		if err != nil {
			return nil, fmt.Errorf("failed to count clicks: %w", err)
		}
		total = totals.Clicks
	}

	ranked := model.TopN(merged, limit)
	items := make([]model.BreakdownStat, 0, len(ranked))
	for _, item := range ranked {
		items = append(items, model.BreakdownStat{
			Key:        item.Key,
			Clicks:     item.Count,
			Percentage: model.Percentage(item.Count, total),
		})
	}

	log.Debug().Str("link_id", linkID.String()).Str("dimension", dimension).Int("count", len(items)).Msg("Breakdown fetched")

	return &model.BreakdownResponse{
		LinkID:      linkID,
		Dimension:   dimension,
		StartDate:   r.Start.Format(time.DateOnly),
		EndDate:     r.End.Format(time.DateOnly),
		TotalClicks: total,
		Items:       items,
	}, nil
}

// resolveRange fills a missing bound from the default window ending today
func (as *AnalyticsService) resolveRange(r model.DateRange) (model.DateRange, error) {
	today := model.TruncateDay(as.now())

	if r.End.IsZero() {
		r.End = today
	}
	if r.Start.IsZero() {
		r.Start = today.AddDate(0, 0, -DefaultRangeDays)
	}
	r.Start, r.End = model.TruncateDay(r.Start), model.TruncateDay(r.End)

	if r.Start.After(r.End) {
		return r, ErrInvalidRange
	}
	return r, nil
}

// ClampLimit bounds a breakdown limit to [1, MaxBreakdownLimit], defaulting to DefaultBreakdownLimit
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultBreakdownLimit
	case limit > MaxBreakdownLimit:
		return MaxBreakdownLimit
	default:
		return limit
	}
}
