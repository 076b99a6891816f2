package service

import (
	"context"
	"time"

	"linkpulse/internal/model"

	"github.com/google/uuid"
)

// ClickRepositoryInterface defines the raw click store used by the buffer (for testing)
type ClickRepositoryInterface interface {
	BulkInsertClicks(ctx context.Context, records []*model.ClickRecord) error
}

// StatsRepositoryInterface defines the queries and upserts of the aggregator (for testing)
type StatsRepositoryInterface interface {
	HourlyBuckets(ctx context.Context, since time.Time) ([]model.HourlyStat, error)
	UpsertHourlyStats(ctx context.Context, stats []model.HourlyStat) error
	LinksWithClicksSince(ctx context.Context, since time.Time) ([]uuid.UUID, error)
	ClickTotals(ctx context.Context, linkID uuid.UUID, from, to time.Time) (model.ClickTotals, error)
	ReferrerCounts(ctx context.Context, linkID uuid.UUID, from, to time.Time, limit int) (model.RankedList, error)
	CountryCounts(ctx context.Context, linkID uuid.UUID, from, to time.Time, limit int) (model.RankedList, error)
	UpsertDailyStat(ctx context.Context, stat *model.DailyStat) error
}

// AnalyticsRepositoryInterface defines the read queries of the analytics API (for testing)
type AnalyticsRepositoryInterface interface {
	ClickTotals(ctx context.Context, linkID uuid.UUID, from, to time.Time) (model.ClickTotals, error)
	ReferrerCounts(ctx context.Context, linkID uuid.UUID, from, to time.Time, limit int) (model.RankedList, error)
	CountryCounts(ctx context.Context, linkID uuid.UUID, from, to time.Time, limit int) (model.RankedList, error)
	SumDailyStats(ctx context.Context, linkID uuid.UUID, since time.Time) (model.ClickTotals, error)
	DailyStatsInRange(ctx context.Context, linkID uuid.UUID, from, to time.Time) ([]model.DailyStat, error)
	HourlyStatsInRange(ctx context.Context, linkID uuid.UUID, from, to time.Time) ([]model.HourlyStat, error)
}

// GeoLocator resolves a client IP. It never fails; unknown is an empty Location.
type GeoLocator interface {
	Lookup(ctx context.Context, ip string) model.Location
}

// AnalyticsServiceInterface defines the analytics read operations
type AnalyticsServiceInterface interface {
	Summary(ctx context.Context, linkID uuid.UUID) (*model.AnalyticsSummary, error)
	Timeseries(ctx context.Context, linkID uuid.UUID, r model.DateRange, granularity string) (*model.TimeseriesResponse, error)
	Referrers(ctx context.Context, linkID uuid.UUID, r model.DateRange, limit int) (*model.BreakdownResponse, error)
	Countries(ctx context.Context, linkID uuid.UUID, r model.DateRange, limit int) (*model.BreakdownResponse, error)
}
