package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"linkpulse/internal/model"
)

type hourKey struct {
	link uuid.UUID
	hour time.Time
}

type dayKey struct {
	link uuid.UUID
	date time.Time
}

// memStore keeps raw clicks and rollups in memory with the same semantics as the MySQL repository
type memStore struct {
	mu     sync.Mutex
	nextID int64
	clicks []model.ClickRecord
	hourly map[hourKey]model.HourlyStat
	daily  map[dayKey]model.DailyStat
}

func newMemStore() *memStore {
	return &memStore{
		hourly: make(map[hourKey]model.HourlyStat),
		daily:  make(map[dayKey]model.DailyStat),
	}
}

func (s *memStore) BulkInsertClicks(_ context.Context, records []*model.ClickRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.nextID++
		row := *r
		row.ID = s.nextID
		s.clicks = append(s.clicks, row)
	}
	return nil
}

func (s *memStore) rows() []model.ClickRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ClickRecord, len(s.clicks))
	copy(out, s.clicks)
	return out
}

func (s *memStore) between(link uuid.UUID, from, to time.Time) []model.ClickRecord {
	var out []model.ClickRecord
	for _, c := range s.clicks {
		if c.LinkID != link {
			continue
		}
		if !from.IsZero() && c.ClickedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !c.ClickedAt.Before(to) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *memStore) HourlyBuckets(_ context.Context, since time.Time) ([]model.HourlyStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[hourKey]int64)
	ips := make(map[hourKey]map[string]struct{})
	for _, c := range s.clicks {
		if c.ClickedAt.Before(since) {
			continue
		}
		k := hourKey{c.LinkID, model.TruncateHour(c.ClickedAt)}
		counts[k]++
		if ips[k] == nil {
			ips[k] = make(map[string]struct{})
		}
		if c.IPAddress != nil {
			ips[k][*c.IPAddress] = struct{}{}
		}
	}

	var out []model.HourlyStat
	for k, n := range counts {
		out = append(out, model.HourlyStat{LinkID: k.link, Hour: k.hour, ClickCount: n, UniqueVisitors: int64(len(ips[k]))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LinkID != out[j].LinkID {
			return out[i].LinkID.String() < out[j].LinkID.String()
		}
		return out[i].Hour.Before(out[j].Hour)
	})
	return out, nil
}

func (s *memStore) UpsertHourlyStats(_ context.Context, stats []model.HourlyStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range stats {
		s.hourly[hourKey{st.LinkID, st.Hour}] = st
	}
	return nil
}

func (s *memStore) hourlySnapshot() map[hourKey]model.HourlyStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[hourKey]model.HourlyStat, len(s.hourly))
	for k, v := range s.hourly {
		out[k] = v
	}
	return out
}

func (s *memStore) LinksWithClicksSince(_ context.Context, since time.Time) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, c := range s.clicks {
		if c.ClickedAt.Before(since) || seen[c.LinkID] {
			continue
		}
		seen[c.LinkID] = true
		out = append(out, c.LinkID)
	}
	return out, nil
}

func (s *memStore) ClickTotals(_ context.Context, link uuid.UUID, from, to time.Time) (model.ClickTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.between(link, from, to)
	ips := make(map[string]struct{})
	for _, c := range rows {
		if c.IPAddress != nil {
			ips[*c.IPAddress] = struct{}{}
		}
	}
	return model.ClickTotals{Clicks: int64(len(rows)), UniqueVisitors: int64(len(ips))}, nil
}

func (s *memStore) ranked(link uuid.UUID, from, to time.Time, limit int, key func(model.ClickRecord) string) model.RankedList {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := make(map[string]int)
	items := model.RankedList{}
	for _, c := range s.between(link, from, to) {
		k := key(c)
		if k == "" {
			continue
		}
		if i, ok := index[k]; ok {
			items[i].Count++
			continue
		}
		index[k] = len(items)
		items = append(items, model.RankedItem{Key: k, Count: 1})
	}
	if limit <= 0 {
		limit = -1
	}
	return model.TopN(items, limit)
}

func (s *memStore) ReferrerCounts(_ context.Context, link uuid.UUID, from, to time.Time, limit int) (model.RankedList, error) {
	return s.ranked(link, from, to, limit, func(c model.ClickRecord) string {
		if c.Referrer == nil {
			return ""
		}
		return *c.Referrer
	}), nil
}

func (s *memStore) CountryCounts(_ context.Context, link uuid.UUID, from, to time.Time, limit int) (model.RankedList, error) {
	return s.ranked(link, from, to, limit, func(c model.ClickRecord) string { return c.Country }), nil
}

func (s *memStore) UpsertDailyStat(_ context.Context, stat *model.DailyStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daily[dayKey{stat.LinkID, stat.Date}] = *stat
	return nil
}

func (s *memStore) SumDailyStats(_ context.Context, link uuid.UUID, since time.Time) (model.ClickTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var totals model.ClickTotals
	for k, v := range s.daily {
		if k.link != link || (!since.IsZero() && k.date.Before(model.TruncateDay(since))) {
			continue
		}
		totals.Clicks += v.ClickCount
		totals.UniqueVisitors += v.UniqueVisitors
	}
	return totals, nil
}

func (s *memStore) DailyStatsInRange(_ context.Context, link uuid.UUID, from, to time.Time) ([]model.DailyStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.DailyStat
	for k, v := range s.daily {
		if k.link == link && !k.date.Before(from) && k.date.Before(to) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *memStore) HourlyStatsInRange(_ context.Context, link uuid.UUID, from, to time.Time) ([]model.HourlyStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.HourlyStat
	for k, v := range s.hourly {
		if k.link == link && !k.hour.Before(from) && k.hour.Before(to) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour.Before(out[j].Hour) })
	return out, nil
}

var (
	_ ClickRepositoryInterface     = (*memStore)(nil)
	_ StatsRepositoryInterface     = (*memStore)(nil)
	_ AnalyticsRepositoryInterface = (*memStore)(nil)
)
