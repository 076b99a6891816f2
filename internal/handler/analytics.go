package handler

import (
	"errors"
	"net/http"
	"time"

	"linkpulse/internal/model"
	"linkpulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AnalyticsHandler serves the per-link analytics endpoints
type AnalyticsHandler struct {
	service service.AnalyticsServiceInterface
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(service service.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Register mounts the analytics routes on rg
func (h *AnalyticsHandler) Register(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics/:linkID")
	analytics.GET("/summary", h.Summary)
	analytics.GET("/timeseries", h.Timeseries)
	analytics.GET("/referrers", h.Referrers)
	analytics.GET("/countries", h.Countries)
}

type analyticsQuery struct {
	StartDate   time.Time `form:"start_date" time_format:"2006-01-02" time_utc:"1"`
	EndDate     time.Time `form:"end_date" time_format:"2006-01-02" time_utc:"1"`
	Granularity string    `form:"granularity" binding:"omitempty,oneof=hourly daily"`
	Limit       *int      `form:"limit" binding:"omitempty,min=1,max=50"`
}

func (q analyticsQuery) dateRange() model.DateRange {
	return model.DateRange{Start: q.StartDate, End: q.EndDate}
}

func (q analyticsQuery) limit() int {
	if q.Limit == nil {
		return service.DefaultBreakdownLimit
	}
	return *q.Limit
}

// Summary handles GET /api/v1/analytics/:linkID/summary
// @Summary Get link summary
// @Description Returns total clicks, unique visitors and recent activity for a link
// @Tags analytics
// @Produce json
// @Param linkID path string true "Link ID"
// @Success 200 {object} Response{data=model.AnalyticsSummary}
// @Router /api/v1/analytics/{linkID}/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	linkID, ok := parseLinkID(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), linkID)
	if err != nil {
		h.serviceError(c, linkID, err)
		return
	}

	success(c, http.StatusOK, summary)
}

// Timeseries handles GET /api/v1/analytics/:linkID/timeseries
// @Summary Get clicks over time
// @Tags analytics
// @Produce json
// @Param linkID path string true "Link ID"
// @Param start_date query string false "Start date (YYYY-MM-DD), default 30 days ago"
// @Param end_date query string false "End date (YYYY-MM-DD), default today"
// @Param granularity query string false "hourly or daily" default(daily)
// @Success 200 {object} Response{data=model.TimeseriesResponse}
// @Router /api/v1/analytics/{linkID}/timeseries [get]
func (h *AnalyticsHandler) Timeseries(c *gin.Context) {
	linkID, ok := parseLinkID(c)
	if !ok {
		return
	}
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.Timeseries(c.Request.Context(), linkID, q.dateRange(), q.Granularity)
	if err != nil {
		h.serviceError(c, linkID, err)
		return
	}

	success(c, http.StatusOK, resp)
}

// Referrers handles GET /api/v1/analytics/:linkID/referrers
// @Summary Get top referrers
// @Tags analytics
// @Produce json
// @Param linkID path string true "Link ID"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Max referrers (1-50)" default(10)
// @Success 200 {object} Response{data=model.BreakdownResponse}
// @Router /api/v1/analytics/{linkID}/referrers [get]
func (h *AnalyticsHandler) Referrers(c *gin.Context) {
	linkID, ok := parseLinkID(c)
	if !ok {
		return
	}
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.Referrers(c.Request.Context(), linkID, q.dateRange(), q.limit())
	if err != nil {
		h.serviceError(c, linkID, err)
		return
	}

	success(c, http.StatusOK, resp)
}

// Countries handles GET /api/v1/analytics/:linkID/countries
// @Summary Get geographic distribution
// @Tags analytics
// @Produce json
// @Param linkID path string true "Link ID"
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Max countries (1-50)" default(10)
// @Success 200 {object} Response{data=model.BreakdownResponse}
// @Router /api/v1/analytics/{linkID}/countries [get]
func (h *AnalyticsHandler) Countries(c *gin.Context) {
	linkID, ok := parseLinkID(c)
	if !ok {
		return
	}
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.Countries(c.Request.Context(), linkID, q.dateRange(), q.limit())
	if err != nil {
		h.serviceError(c, linkID, err)
		return
	}

	success(c, http.StatusOK, resp)
}

func (h *AnalyticsHandler) serviceError(c *gin.Context, linkID uuid.UUID, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRange), errors.Is(err, service.ErrInvalidGranularity):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("link_id", linkID.String()).Str("path", c.FullPath()).Msg("Analytics query failed")
		fail(c, http.StatusInternalServerError, "Failed to get analytics")
	}
}

func parseLinkID(c *gin.Context) (uuid.UUID, bool) {
	linkID, err := uuid.Parse(c.Param("linkID"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid link id")
		return uuid.Nil, false
	}
	return linkID, true
}

func bindQuery(c *gin.Context) (analyticsQuery, bool) {
	var q analyticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return q, false
	}
	return q, true
}
