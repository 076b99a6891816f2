package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkpulse/internal/config"
	"linkpulse/internal/geo"
	"linkpulse/internal/model"
	"linkpulse/internal/mq"
	"linkpulse/pkg/util"
)

func TestPipeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	broker := mq.NewMemoryBroker()
	defer broker.Close()

	storage := NewClickStorage(store, geo.NewServiceWithBackend(nil, nil, 0, 0),
		config.StorageConfig{Batching: true, BatchSize: 100, FlushInterval: time.Hour}, nil)

	consumer := mq.NewConsumer(broker, "linkpulse:clicks", nil)
	consumer.RegisterHandler(storage)
	require.NoError(t, consumer.Start(ctx))

	producer := mq.NewClickProducer(broker, "linkpulse:clicks")
	linkID := uuid.New()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	clicks := []struct {
		at time.Time
		ip string
	}{
		{day.Add(10*time.Hour + 5*time.Minute), "10.0.0.1"},
		{day.Add(10*time.Hour + 10*time.Minute), "10.0.0.2"},
		{day.Add(10*time.Hour + 55*time.Minute), "10.0.0.1"},
	}
	for _, c := range clicks {
		event := &model.ClickEvent{
			LinkID:    linkID,
			ShortCode: "abc123",
			ClickedAt: model.EventTime{Time: c.at},
			IPAddress: util.StringPtr(c.ip),
			Referrer:  util.StringPtr("https://news.example.com"),
		}
		require.NoError(t, producer.PublishClick(ctx, event))
	}

	require.Eventually(t, func() bool {
		return consumer.Stats().EventsProcessed == 3
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, consumer.Stop())
	require.NoError(t, storage.Stop(ctx))

	rows := store.rows()
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, linkID, r.LinkID)
		assert.Empty(t, r.Country)
		assert.Empty(t, r.City)
	}

	agg := NewStatsAggregator(store, config.AggregatorConfig{TopN: 10}, nil)
	agg.now = func() time.Time { return day.Add(11*time.Hour + 30*time.Minute) }

	n, err := agg.AggregateHourly(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stat := store.hourly[hourKey{linkID, day.Add(10 * time.Hour)}]
	assert.Equal(t, int64(3), stat.ClickCount)
	assert.Equal(t, int64(2), stat.UniqueVisitors)

	// no new raw data, same rows
	before := store.hourlySnapshot()
	n, err = agg.AggregateHourly(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, before, store.hourlySnapshot())

	n, err = agg.AggregateDaily(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	daily := store.daily[dayKey{linkID, day}]
	assert.Equal(t, int64(3), daily.ClickCount)
	assert.Equal(t, model.RankedList{{Key: "https://news.example.com", Count: 3}}, daily.TopReferrers.Data())
	assert.Equal(t, model.RankedList{}, daily.TopCountries.Data())

	analytics := NewAnalyticsService(store)
	analytics.now = agg.now

	summary, err := analytics.Summary(ctx, linkID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalClicks)
	assert.Equal(t, int64(3), summary.ClicksToday)

	refs, err := analytics.Referrers(ctx, linkID, model.DateRange{}, 10)
	require.NoError(t, err)
	require.Len(t, refs.Items, 1)
	assert.Equal(t, 100.0, refs.Items[0].Percentage)
}

func TestPipeline_MalformedPayloadsNeverReachStorage(t *testing.T) {
	store := newMemStore()
	storage := NewClickStorage(store, nil, config.StorageConfig{Batching: false}, nil)

	consumer := mq.NewConsumer(mq.NewMemoryBroker(), "clicks", nil)
	consumer.RegisterHandler(storage)

	for _, payload := range []string{
		`not json`,
		`[1,2,3]`,
		`{"short_code":"abc"}`,
		`{"link_id":"not-a-uuid","short_code":"abc"}`,
		`{"link_id":"` + uuid.NewString() + `","short_code":"abc","ip_address":"999.1.1.1"}`,
	} {
		res := consumer.Process(context.Background(), []byte(payload))
		assert.NotEqual(t, mq.OutcomeProcessed, res.Outcome, payload)
	}

	assert.Zero(t, consumer.Stats().EventsProcessed)
	assert.Empty(t, store.rows())
}
