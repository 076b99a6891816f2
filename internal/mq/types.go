package mq

import (
	"context"
	"fmt"
	"time"

	"linkpulse/internal/model"
)

// ClickHandler receives every valid click event
type ClickHandler interface {
	Name() string
	HandleClick(ctx context.Context, event *model.ClickEvent) error
}

// ClickHandlerFunc adapts a function to ClickHandler
type ClickHandlerFunc struct {
	HandlerName string
	Fn          func(ctx context.Context, event *model.ClickEvent) error
}

// Name implements ClickHandler
func (f ClickHandlerFunc) Name() string { return f.HandlerName }

// HandleClick implements ClickHandler
func (f ClickHandlerFunc) HandleClick(ctx context.Context, event *model.ClickEvent) error {
	return f.Fn(ctx, event)
}

// Outcome of processing one payload
type Outcome int

const (
	OutcomeProcessed Outcome = iota
	OutcomeInvalidJSON
	OutcomeInvalidSchema
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProcessed:
		return "processed"
	case OutcomeInvalidJSON:
		return "invalid_json"
	case OutcomeInvalidSchema:
		return "invalid_schema"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// HandlerError is the failure of one handler on one event
type HandlerError struct {
	Handler string
	Err     error
}

func (e HandlerError) Error() string {
	return fmt.Sprintf("handler %s: %v", e.Handler, e.Err)
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

// Result describes what happened to one payload
type Result struct {
	Outcome       Outcome
	Event         *model.ClickEvent
	Err           error
	HandlerErrors []HandlerError
	Duration      time.Duration
}

// ConsumerStats is a snapshot of the consumer counters
type ConsumerStats struct {
	Running         bool   `json:"running"`
	Channel         string `json:"channel"`
	EventsReceived  int64  `json:"events_received"`
	EventsProcessed int64  `json:"events_processed"`
	EventsFailed    int64  `json:"events_failed"`
	Handlers        int    `json:"handlers"`
}

// ProducerInterface publishes click events (for testing)
type ProducerInterface interface {
	PublishClick(ctx context.Context, event *model.ClickEvent) error
	PublishClickAsync(ctx context.Context, event *model.ClickEvent)
}
