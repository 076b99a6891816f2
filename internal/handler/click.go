package handler

import (
	"errors"
	"net/http"
	"time"

	"linkpulse/internal/model"
	"linkpulse/internal/mq"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ClickHandler accepts click events over HTTP and publishes them to the channel
type ClickHandler struct {
	producer mq.ProducerInterface
	now      func() time.Time
}

// NewClickHandler creates a new ClickHandler
func NewClickHandler(producer mq.ProducerInterface) *ClickHandler {
	return &ClickHandler{producer: producer, now: time.Now}
}

// Track handles POST /api/v1/clicks
// @Summary Record a click
// @Description Publishes a click event. Missing client fields are taken from the request.
// @Tags clicks
// @Accept json
// @Produce json
// @Param request body model.ClickEvent true "Click event"
// @Success 202 {object} Response
// @Router /api/v1/clicks [post]
func (h *ClickHandler) Track(c *gin.Context) {
	var event model.ClickEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if event.ClickedAt.IsZero() {
		event.ClickedAt = model.EventTime{Time: h.now().UTC()}
	}
	if event.IPAddress == nil {
		if ip := c.ClientIP(); ip != "" {
			event.IPAddress = &ip
		}
	}
	if event.UserAgent == nil {
		if ua := c.Request.UserAgent(); ua != "" {
			event.UserAgent = &ua
		}
	}
	if event.Referrer == nil {
		if ref := c.Request.Header.Get("Referer"); ref != "" {
			event.Referrer = &ref
		}
	}

	if err := event.Validate(); err != nil {
		message := err.Error()
		if errors.Is(err, model.ErrInvalidSchema) {
			message = "Invalid click event: " + message
		}
		fail(c, http.StatusBadRequest, message)
		return
	}

	h.producer.PublishClickAsync(c.Request.Context(), &event)

	log.Debug().Str("link_id", event.LinkID.String()).Str("short_code", event.ShortCode).Msg("Click accepted")

	c.JSON(http.StatusAccepted, Response{
		Code:    0,
		Message: "accepted",
	})
}
