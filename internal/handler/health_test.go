package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkpulse/internal/mq"
	"linkpulse/internal/service"
)

type fakeConsumer struct{ stats mq.ConsumerStats }

func (f fakeConsumer) Stats() mq.ConsumerStats { return f.stats }

type fakeStorage struct{ stats service.StorageStats }

func (f fakeStorage) Stats() service.StorageStats { return f.stats }

type fakeAggregator struct{ stats service.AggregatorStats }

func (f fakeAggregator) Stats() service.AggregatorStats { return f.stats }

func newTestHealthRouter(h *HealthHandler) *gin.Engine {
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/stats", h.Stats)
	return router
}

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name    string
		running bool
		want    string
	}{
		{name: "consumer running", running: true, want: "healthy"},
		{name: "consumer stopped", running: false, want: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(fakeConsumer{mq.ConsumerStats{Running: tt.running}}, fakeStorage{}, nil, "test")
			w := doGet(newTestHealthRouter(h), "/health")

			assert.Equal(t, http.StatusOK, w.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Status)
			assert.Equal(t, "linkpulse", resp.Service)
			assert.Equal(t, tt.running, resp.ConsumerRunning)
		})
	}
}

func TestHealthHandler_Stats(t *testing.T) {
	consumer := fakeConsumer{mq.ConsumerStats{Running: true, Channel: "linkpulse:clicks", EventsReceived: 10, EventsProcessed: 9, EventsFailed: 1, Handlers: 1}}
	storage := fakeStorage{service.StorageStats{ClicksStored: 9, BatchesFlushed: 1, BufferSize: 0, BatchingEnabled: true}}

	t.Run("with aggregator", func(t *testing.T) {
		h := NewHealthHandler(consumer, storage, fakeAggregator{service.AggregatorStats{Running: true, HourlyRuns: 2}}, "1.2.0")
		w := doGet(newTestHealthRouter(h), "/stats")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp StatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1.2.0", resp.Version)
		assert.Equal(t, consumer.stats, resp.Consumer)
		assert.Equal(t, storage.stats, resp.Storage)
		require.NotNil(t, resp.Aggregator)
		assert.Equal(t, int64(2), resp.Aggregator.HourlyRuns)
	})

	t.Run("aggregator disabled", func(t *testing.T) {
		h := NewHealthHandler(consumer, storage, nil, "1.2.0")
		w := doGet(newTestHealthRouter(h), "/stats")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `"aggregator"`)
	})
}
