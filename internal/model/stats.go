package model

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultTopN is the default size of the ranked breakdowns
const DefaultTopN = 10

// HourlyStat holds the rollup of one link for one hour
type HourlyStat struct {
	LinkID         uuid.UUID `json:"link_id" gorm:"type:char(36);primaryKey;autoIncrement:false"`
	Hour           time.Time `json:"hour" gorm:"primaryKey;autoIncrement:false;index:ix_link_stats_hourly_hour"`
	ClickCount     int64     `json:"click_count" gorm:"not null;default:0"`
	UniqueVisitors int64     `json:"unique_visitors" gorm:"not null;default:0"`
}

// TableName returns the table name for HourlyStat
func (HourlyStat) TableName() string {
	return "link_stats_hourly"
}

// DailyStat holds the rollup of one link for one calendar day (UTC)
type DailyStat struct {
	LinkID         uuid.UUID                     `json:"link_id" gorm:"type:char(36);primaryKey;autoIncrement:false"`
	Date           time.Time                     `json:"date" gorm:"type:date;primaryKey;autoIncrement:false;index:ix_link_stats_daily_date"`
	ClickCount     int64                         `json:"click_count" gorm:"not null;default:0"`
	UniqueVisitors int64                         `json:"unique_visitors" gorm:"not null;default:0"`
	TopReferrers   datatypes.JSONType[RankedList] `json:"top_referrers" gorm:"type:json"`
	TopCountries   datatypes.JSONType[RankedList] `json:"top_countries" gorm:"type:json"`
}

// TableName returns the table name for DailyStat
func (DailyStat) TableName() string {
	return "link_stats_daily"
}

// NewDailyStat builds a DailyStat, normalising empty breakdowns to empty lists
func NewDailyStat(linkID uuid.UUID, day time.Time, clicks, uniques int64, referrers, countries RankedList) *DailyStat {
	if referrers == nil {
		referrers = RankedList{}
	}
	if countries == nil {
		countries = RankedList{}
	}
	return &DailyStat{
		LinkID:         linkID,
		Date:           TruncateDay(day),
		ClickCount:     clicks,
		UniqueVisitors: uniques,
		TopReferrers:   datatypes.NewJSONType(referrers),
		TopCountries:   datatypes.NewJSONType(countries),
	}
}

// RankedItem is one entry of a top-N breakdown
type RankedItem struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// RankedList is a breakdown ordered by count, highest first
type RankedList []RankedItem

// TopN returns the n highest counts. The input order is the tie-breaker,
// so callers pass items in first-seen order.
func TopN(items RankedList, n int) RankedList {
	ranked := make(RankedList, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MergeRanked sums counts per key across lists, keeping first-seen order
func MergeRanked(lists ...RankedList) RankedList {
	index := make(map[string]int)
	var merged RankedList
	for _, list := range lists {
		for _, item := range list {
			if i, ok := index[item.Key]; ok {
				merged[i].Count += item.Count
				continue
			}
			index[item.Key] = len(merged)
			merged = append(merged, item)
		}
	}
	return merged
}

// Percentage returns part/total*100 rounded to two decimals, 0 when total is 0
func Percentage(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

// TruncateHour returns t in UTC truncated to the hour
func TruncateHour(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// TruncateDay returns midnight UTC of t's date
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClickTotals is a click count with its distinct-IP count
type ClickTotals struct {
	Clicks         int64 `json:"clicks"`
	UniqueVisitors int64 `json:"unique_visitors"`
}
