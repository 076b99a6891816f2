package handler

import (
	"net/http"

	"linkpulse/internal/mq"
	"linkpulse/internal/service"

	"github.com/gin-gonic/gin"
)

const serviceName = "linkpulse"

// ConsumerStatus reports the click consumer state
type ConsumerStatus interface {
	Stats() mq.ConsumerStats
}

// StorageStatus reports the click buffer state
type StorageStatus interface {
	Stats() service.StorageStats
}

// AggregatorStatus reports the rollup job state
type AggregatorStatus interface {
	Stats() service.AggregatorStats
}

// HealthHandler serves liveness and pipeline statistics
type HealthHandler struct {
	consumer   ConsumerStatus
	storage    StorageStatus
	aggregator AggregatorStatus
	version    string
}

// NewHealthHandler creates a new HealthHandler. aggregator may be nil when disabled.
func NewHealthHandler(consumer ConsumerStatus, storage StorageStatus, aggregator AggregatorStatus, version string) *HealthHandler {
	return &HealthHandler{
		consumer:   consumer,
		storage:    storage,
		aggregator: aggregator,
		version:    version,
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status          string `json:"status"`
	Service         string `json:"service"`
	ConsumerRunning bool   `json:"consumer_running"`
}

// StatsResponse is the body of GET /stats
type StatsResponse struct {
	Service    string                   `json:"service"`
	Version    string                   `json:"version"`
	Consumer   mq.ConsumerStats         `json:"consumer"`
	Storage    service.StorageStats     `json:"storage"`
	Aggregator *service.AggregatorStats `json:"aggregator,omitempty"`
}

// Health handles GET /health
// @Summary Health check
// @Description healthy while the consumer is running, degraded otherwise
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	running := h.consumer.Stats().Running

	status := "healthy"
	if !running {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:          status,
		Service:         serviceName,
		ConsumerRunning: running,
	})
}

// Stats handles GET /stats
// @Summary Pipeline statistics
// @Tags system
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /stats [get]
func (h *HealthHandler) Stats(c *gin.Context) {
	resp := StatsResponse{
		Service:  serviceName,
		Version:  h.version,
		Consumer: h.consumer.Stats(),
		Storage:  h.storage.Stats(),
	}
	if h.aggregator != nil {
		stats := h.aggregator.Stats()
		resp.Aggregator = &stats
	}

	c.JSON(http.StatusOK, resp)
}
