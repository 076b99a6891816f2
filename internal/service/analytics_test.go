package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkpulse/internal/mocks"
	"linkpulse/internal/model"
)

var (
	analyticsNow = time.Date(2024, 5, 31, 15, 0, 0, 0, time.UTC)
	today        = time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	tomorrow     = today.AddDate(0, 0, 1)
)

func newTestAnalytics(repo AnalyticsRepositoryInterface) *AnalyticsService {
	as := NewAnalyticsService(repo)
	as.now = func() time.Time { return analyticsNow }
	return as
}

func dailyStat(linkID uuid.UUID, date time.Time, clicks int64, referrers, countries model.RankedList) model.DailyStat {
	return *model.NewDailyStat(linkID, date, clicks, clicks, referrers, countries)
}

func TestNewAnalyticsService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAnalyticsRepositoryInterface(ctrl)
	svc := NewAnalyticsService(mockRepo)

	assert.NotNil(t, svc)
	assert.Equal(t, mockRepo, svc.repo)
}

func TestAnalyticsService_Summary(t *testing.T) {
	linkID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(*mocks.MockAnalyticsRepositoryInterface)
		want      *model.AnalyticsSummary
		expectErr bool
	}{
		{
			name: "from rollups",
			setupMock: func(repo *mocks.MockAnalyticsRepositoryInterface) {
				repo.EXPECT().SumDailyStats(gomock.Any(), linkID, time.Time{}).Return(model.ClickTotals{Clicks: 120, UniqueVisitors: 40}, nil)
				repo.EXPECT().DailyStatsInRange(gomock.Any(), linkID, today, tomorrow).Return([]model.DailyStat{{ClickCount: 8}}, nil)
				repo.EXPECT().SumDailyStats(gomock.Any(), linkID, today.AddDate(0, 0, -7)).Return(model.ClickTotals{Clicks: 30}, nil)
				repo.EXPECT().SumDailyStats(gomock.Any(), linkID, today.AddDate(0, 0, -30)).Return(model.ClickTotals{Clicks: 90}, nil)
			},
			want: &model.AnalyticsSummary{
				LinkID: linkID, TotalClicks: 120, UniqueVisitors: 40,
				ClicksToday: 8, ClicksThisWeek: 30, ClicksThisMonth: 90,
			},
		},
		{
			name: "falls back to raw clicks before the first rollup",
			setupMock: func(repo *mocks.MockAnalyticsRepositoryInterface) {
				repo.EXPECT().SumDailyStats(gomock.Any(), linkID, time.Time{}).Return(model.ClickTotals{}, nil)
				repo.EXPECT().ClickTotals(gomock.Any(), linkID, time.Time{}, time.Time{}).Return(model.ClickTotals{Clicks: 7, UniqueVisitors: 3}, nil)
				repo.EXPECT().DailyStatsInRange(gomock.Any(), linkID, today, tomorrow).Return(nil, nil)
				repo.EXPECT().ClickTotals(gomock.Any(), linkID, today, tomorrow).Return(model.ClickTotals{Clicks: 2, UniqueVisitors: 1}, nil)
				repo.EXPECT().SumDailyStats(gomock.Any(), linkID, gomock.Any()).Return(model.ClickTotals{}, nil).Times(2)
			},
			want: &model.AnalyticsSummary{
				LinkID: linkID, TotalClicks: 7, UniqueVisitors: 3, ClicksToday: 2,
			},
		},
		{
			name: "repository error",
			setupMock: func(repo *mocks.MockAnalyticsRepositoryInterface) {
				repo.EXPECT().SumDailyStats(gomock.Any(), linkID, time.Time{}).Return(model.ClickTotals{}, errors.New("db down"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockAnalyticsRepositoryInterface(ctrl)
			tt.setupMock(repo)

			got, err := newTestAnalytics(repo).Summary(context.Background(), linkID)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyticsService_Timeseries(t *testing.T) {
	linkID := uuid.New()
	may1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	may2 := may1.AddDate(0, 0, 1)
	may3 := may2.AddDate(0, 0, 1)

	t.Run("hourly covers whole days", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockAnalyticsRepositoryInterface(ctrl)
		repo.EXPECT().HourlyStatsInRange(gomock.Any(), linkID, may1, may3).Return([]model.HourlyStat{
			{LinkID: linkID, Hour: may1.Add(10 * time.Hour), ClickCount: 3, UniqueVisitors: 2},
			{LinkID: linkID, Hour: may2.Add(23 * time.Hour), ClickCount: 1, UniqueVisitors: 1},
		}, nil)

		resp, err := newTestAnalytics(repo).Timeseries(context.Background(), linkID,
			model.DateRange{Start: may1, End: may2}, model.GranularityHourly)
		require.NoError(t, err)

		assert.Equal(t, "2024-05-01", resp.StartDate)
		assert.Equal(t, "2024-05-02", resp.EndDate)
		assert.Equal(t, model.GranularityHourly, resp.Granularity)
		require.Len(t, resp.Data, 2)
		assert.Equal(t, may1.Add(10*time.Hour), resp.Data[0].Timestamp)
		assert.Equal(t, int64(3), resp.Data[0].Clicks)
	})

	t.Run("daily is the default", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockAnalyticsRepositoryInterface(ctrl)
		repo.EXPECT().DailyStatsInRange(gomock.Any(), linkID, today.AddDate(0, 0, -30), tomorrow).Return(nil, nil)

		resp, err := newTestAnalytics(repo).Timeseries(context.Background(), linkID, model.DateRange{}, "")
		require.NoError(t, err)

		assert.Equal(t, model.GranularityDaily, resp.Granularity)
		assert.Equal(t, "2024-05-01", resp.StartDate)
		assert.Equal(t, "2024-05-31", resp.EndDate)
		assert.NotNil(t, resp.Data)
		assert.Empty(t, resp.Data)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := newTestAnalytics(newMemStore()).Timeseries(context.Background(), linkID,
			model.DateRange{Start: may2, End: may1}, model.GranularityDaily)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("unknown granularity", func(t *testing.T) {
		_, err := newTestAnalytics(newMemStore()).Timeseries(context.Background(), linkID,
			model.DateRange{Start: may1, End: may2}, "weekly")
		assert.ErrorIs(t, err, ErrInvalidGranularity)
	})
}

func TestAnalyticsService_Referrers_FromRollups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	linkID := uuid.New()
	may1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	may2 := may1.AddDate(0, 0, 1)

	repo := mocks.NewMockAnalyticsRepositoryInterface(ctrl)
	repo.EXPECT().DailyStatsInRange(gomock.Any(), linkID, may1, may2.AddDate(0, 0, 1)).Return([]model.DailyStat{
		dailyStat(linkID, may1, 3, model.RankedList{{Key: "google.com", Count: 2}, {Key: "t.co", Count: 1}}, nil),
		dailyStat(linkID, may2, 3, model.RankedList{{Key: "t.co", Count: 2}, {Key: "bing.com", Count: 1}}, nil),
	}, nil)

	resp, err := newTestAnalytics(repo).Referrers(context.Background(), linkID, model.DateRange{Start: may1, End: may2}, 2)
	require.NoError(t, err)

	assert.Equal(t, "referrers", resp.Dimension)
	assert.Equal(t, int64(6), resp.TotalClicks)
	assert.Equal(t, []model.BreakdownStat{
		{Key: "t.co", Clicks: 3, Percentage: 50},
		{Key: "google.com", Clicks: 2, Percentage: 33.33},
	}, resp.Items)
}

func TestAnalyticsService_Countries_RawFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	linkID := uuid.New()
	from := today.AddDate(0, 0, -30)

	repo := mocks.NewMockAnalyticsRepositoryInterface(ctrl)
	repo.EXPECT().DailyStatsInRange(gomock.Any(), linkID, from, tomorrow).Return(nil, nil)
	repo.EXPECT().CountryCounts(gomock.Any(), linkID, from, tomorrow, 10).Return(model.RankedList{{Key: "US", Count: 2}, {Key: "DE", Count: 1}}, nil)
	repo.EXPECT().ClickTotals(gomock.Any(), linkID, from, tomorrow).Return(model.ClickTotals{Clicks: 3}, nil)

	resp, err := newTestAnalytics(repo).Countries(context.Background(), linkID, model.DateRange{}, 0)
	require.NoError(t, err)

	assert.Equal(t, "countries", resp.Dimension)
	assert.Equal(t, int64(3), resp.TotalClicks)
	assert.Equal(t, []model.BreakdownStat{
		{Key: "US", Clicks: 2, Percentage: 66.67},
		{Key: "DE", Clicks: 1, Percentage: 33.33},
	}, resp.Items)
}

func TestAnalyticsService_Breakdown_NoClicks(t *testing.T) {
	resp, err := newTestAnalytics(newMemStore()).Referrers(context.Background(), uuid.New(), model.DateRange{}, 10)
	require.NoError(t, err)

	assert.Zero(t, resp.TotalClicks)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultBreakdownLimit},
		{-3, DefaultBreakdownLimit},
		{1, 1},
		{50, 50},
		{51, MaxBreakdownLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampLimit(tt.in))
	}
}
