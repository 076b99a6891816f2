package repository

import (
	"context"
	"fmt"
	"time"

	"linkpulse/internal/config"
	"linkpulse/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// hourExpr truncates clicked_at to the start of its hour
const hourExpr = "CAST(DATE_FORMAT(clicked_at, '%Y-%m-%d %H:00:00') AS DATETIME)"

// MySQLRepository stores raw clicks and their rollups
type MySQLRepository struct {
	db *gorm.DB
}

// NewMySQLRepository connects to MySQL and migrates the click tables
func NewMySQLRepository(cfg *config.MySQLConfig) (*MySQLRepository, error) {
	var gormLogger logger.Interface
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gormLogger = logger.Default.LogMode(logger.Silent)
	} else {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	repo := &MySQLRepository{db: db}

	if cfg.AutoMigrate {
		if err := repo.Migrate(); err != nil {
			return nil, err
		}
	}

	log.Info().Msg("MySQL connected successfully")

	return repo, nil
}

// NewMySQLRepositoryWithDB wraps an existing connection
func NewMySQLRepositoryWithDB(db *gorm.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

// Migrate creates or updates the raw and rollup tables
func (r *MySQLRepository) Migrate() error {
	if err := r.db.AutoMigrate(&model.ClickRecord{}, &model.HourlyStat{}, &model.DailyStat{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// GetDB returns the GORM DB instance
func (r *MySQLRepository) GetDB() *gorm.DB {
	return r.db
}

// BulkInsertClicks inserts records in one statement
func (r *MySQLRepository) BulkInsertClicks(ctx context.Context, records []*model.ClickRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(records).Error
}

// HourlyBuckets groups raw clicks since the given instant by link and hour
func (r *MySQLRepository) HourlyBuckets(ctx context.Context, since time.Time) ([]model.HourlyStat, error) {
	var buckets []model.HourlyStat
	err := r.db.WithContext(ctx).
		Model(&model.ClickRecord{}).
		Select("link_id, "+hourExpr+" AS hour, COUNT(*) AS click_count, COUNT(DISTINCT ip_address) AS unique_visitors").
		Where("clicked_at >= ?", since).
		Group("link_id, hour").
		Scan(&buckets).Error
	return buckets, err
}

// UpsertHourlyStats inserts or overwrites hourly rollups
func (r *MySQLRepository) UpsertHourlyStats(ctx context.Context, stats []model.HourlyStat) error {
	if len(stats) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "link_id"}, {Name: "hour"}},
			DoUpdates: clause.AssignmentColumns([]string{"click_count", "unique_visitors"}),
		}).
		Create(&stats).Error
}

// LinksWithClicksSince returns the links with at least one click since the given instant
func (r *MySQLRepository) LinksWithClicksSince(ctx context.Context, since time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.ClickRecord{}).
		Distinct("link_id").
		Where("clicked_at >= ?", since).
		Pluck("link_id", &ids).Error
	return ids, err
}

// ClickTotals counts raw clicks and distinct IPs of a link in [from, to).
// A zero from means no lower bound.
func (r *MySQLRepository) ClickTotals(ctx context.Context, linkID uuid.UUID, from, to time.Time) (model.ClickTotals, error) {
	var totals model.ClickTotals
	query := r.db.WithContext(ctx).
		Model(&model.ClickRecord{}).
		Select("COUNT(*) AS clicks, COUNT(DISTINCT ip_address) AS unique_visitors").
		Where("link_id = ?", linkID)
	query = clickedBetween(query, from, to)

	err := query.Scan(&totals).Error
	return totals, err
}

// ReferrerCounts returns the top referrers of a link in [from, to). Ties keep first-seen order.
func (r *MySQLRepository) ReferrerCounts(ctx context.Context, linkID uuid.UUID, from, to time.Time, limit int) (model.RankedList, error) {
	return r.rankedCounts(ctx, "referrer", "referrer IS NOT NULL AND referrer <> ''", linkID, from, to, limit)
}

// CountryCounts returns the top countries of a link in [from, to). Ties keep first-seen order.
func (r *MySQLRepository) CountryCounts(ctx context.Context, linkID uuid.UUID, from, to time.Time, limit int) (model.RankedList, error) {
	return r.rankedCounts(ctx, "country", "country <> ''", linkID, from, to, limit)
}

func (r *MySQLRepository) rankedCounts(ctx context.Context, column, filter string, linkID uuid.UUID, from, to time.Time, limit int) (model.RankedList, error) {
	query := r.db.WithContext(ctx).
		Model(&model.ClickRecord{}).
		Select(column+" AS `key`, COUNT(*) AS `count`").
		Where("link_id = ?", linkID).
		Where(filter)
	query = clickedBetween(query, from, to)

	query = query.Group(column).Order("`count` DESC, MIN(id) ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items model.RankedList
	err := query.Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = model.RankedList{}
	}
	return items, nil
}

// UpsertDailyStat inserts or overwrites one daily rollup
func (r *MySQLRepository) UpsertDailyStat(ctx context.Context, stat *model.DailyStat) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "link_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"click_count", "unique_visitors", "top_referrers", "top_countries"}),
		}).
		Create(stat).Error
}

// SumDailyStats sums the daily rollups of a link from the given day on.
// A zero since means all time.
func (r *MySQLRepository) SumDailyStats(ctx context.Context, linkID uuid.UUID, since time.Time) (model.ClickTotals, error) {
	var totals model.ClickTotals
	query := r.db.WithContext(ctx).
		Model(&model.DailyStat{}).
		Select("COALESCE(SUM(click_count), 0) AS clicks, COALESCE(SUM(unique_visitors), 0) AS unique_visitors").
		Where("link_id = ?", linkID)
	if !since.IsZero() {
		query = query.Where("date >= ?", model.TruncateDay(since))
	}

	err := query.Scan(&totals).Error
	return totals, err
}

// DailyStatsInRange returns the daily rollups of a link with dates in [from, to), oldest first
func (r *MySQLRepository) DailyStatsInRange(ctx context.Context, linkID uuid.UUID, from, to time.Time) ([]model.DailyStat, error) {
	var stats []model.DailyStat
	err := r.db.WithContext(ctx).
		Where("link_id = ? AND date >= ? AND date < ?", linkID, from, to).
		Order("date").
		Find(&stats).Error
	return stats, err
}

// HourlyStatsInRange returns the hourly rollups of a link with hours in [from, to), oldest first
func (r *MySQLRepository) HourlyStatsInRange(ctx context.Context, linkID uuid.UUID, from, to time.Time) ([]model.HourlyStat, error) {
	var stats []model.HourlyStat
	err := r.db.WithContext(ctx).
		Where("link_id = ? AND hour >= ? AND hour < ?", linkID, from, to).
		Order("hour").
		Find(&stats).Error
	return stats, err
}

// Ping checks the database connection
func (r *MySQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (r *MySQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func clickedBetween(query *gorm.DB, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		query = query.Where("clicked_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("clicked_at < ?", to)
	}
	return query
}
