package repository

import (
	"context"
	"time"

	"linkpulse/internal/model"

	"github.com/google/uuid"
)

// MySQLRepositoryInterface defines the interface for MySQL operations
type MySQLRepositoryInterface interface {
	BulkInsertClicks(ctx context.Context, records []*model.ClickRecord) error
	HourlyBuckets(ctx context.Context, since time.Time) ([]model.HourlyStat, error)
	UpsertHourlyStats(ctx context.Context, stats []model.HourlyStat) error
	LinksWithClicksSince(ctx context.Context, since time.Time) ([]uuid.UUID, error)
	ClickTotals(ctx context.Context, linkID uuid.UUID, from, to time.Time) (model.ClickTotals, error)
	ReferrerCounts(ctx context.Context, linkID uuid.UUID, from, to time.Time, limit int) (model.RankedList, error)
	CountryCounts(ctx context.Context, linkID uuid.UUID, from, to time.Time, limit int) (model.RankedList, error)
	UpsertDailyStat(ctx context.Context, stat *model.DailyStat) error
	SumDailyStats(ctx context.Context, linkID uuid.UUID, since time.Time) (model.ClickTotals, error)
	DailyStatsInRange(ctx context.Context, linkID uuid.UUID, from, to time.Time) ([]model.DailyStat, error)
	HourlyStatsInRange(ctx context.Context, linkID uuid.UUID, from, to time.Time) ([]model.HourlyStat, error)
	Ping(ctx context.Context) error
	Close() error
}

// RedisRepositoryInterface defines the interface for Redis operations
type RedisRepositoryInterface interface {
	GetLocation(ctx context.Context, ip string) (model.Location, bool, error)
	SaveLocation(ctx context.Context, ip string, loc model.Location, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ MySQLRepositoryInterface = (*MySQLRepository)(nil)
	_ RedisRepositoryInterface = (*RedisRepository)(nil)
)
