package model

import (
	"time"

	"github.com/google/uuid"
)

// Granularity of a timeseries query
const (
	GranularityHourly = "hourly"
	GranularityDaily  = "daily"
)

// AnalyticsSummary represents summary statistics for a link
type AnalyticsSummary struct {
	LinkID          uuid.UUID `json:"link_id"`
	TotalClicks     int64     `json:"total_clicks"`
	UniqueVisitors  int64     `json:"unique_visitors"`
	ClicksToday     int64     `json:"clicks_today"`
	ClicksThisWeek  int64     `json:"clicks_this_week"`
	ClicksThisMonth int64     `json:"clicks_this_month"`
}

// TimeseriesPoint is one bucket of a timeseries
type TimeseriesPoint struct {
	Timestamp      time.Time `json:"timestamp"`
	Clicks         int64     `json:"clicks"`
	UniqueVisitors int64     `json:"unique_visitors"`
}

// TimeseriesResponse represents clicks over time
type TimeseriesResponse struct {
	LinkID      uuid.UUID         `json:"link_id"`
	Granularity string            `json:"granularity"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	Data        []TimeseriesPoint `json:"data"`
}

// BreakdownStat is one referrer or country with its share of clicks
type BreakdownStat struct {
	Key        string  `json:"key"`
	Clicks     int64   `json:"clicks"`
	Percentage float64 `json:"percentage"`
}

// BreakdownResponse represents the top referrers or countries of a link
type BreakdownResponse struct {
	LinkID      uuid.UUID       `json:"link_id"`
	Dimension   string          `json:"dimension"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	TotalClicks int64           `json:"total_clicks"`
	Items       []BreakdownStat `json:"items"`
}

// DateRange is an inclusive range of UTC calendar days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// From returns the first instant of the range
func (r DateRange) From() time.Time {
	return TruncateDay(r.Start)
}

// Until returns the first instant after the range
func (r DateRange) Until() time.Time {
	return TruncateDay(r.End).AddDate(0, 0, 1)
}
