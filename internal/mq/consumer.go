package mq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"linkpulse/internal/metrics"
	"linkpulse/internal/model"
	"linkpulse/pkg/util"

	"github.com/rs/zerolog/log"
)

// maxLoggedPayload bounds how much of a bad payload ends up in the logs
const maxLoggedPayload = 100

// Consumer reads click events from one channel and fans them out to handlers
type Consumer struct {
	broker  Broker
	channel string
	metrics *metrics.Metrics
	now     func() time.Time

	mu       sync.Mutex
	handlers []ClickHandler
	sub      Subscription
	cancel   context.CancelFunc
	done     chan struct{}
	err      error

	running   atomic.Bool
	received  atomic.Int64
	processed atomic.Int64
	failed    atomic.Int64
}

// NewConsumer creates a consumer for channel. m may be nil.
func NewConsumer(broker Broker, channel string, m *metrics.Metrics) *Consumer {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Consumer{
		broker:  broker,
		channel: channel,
		metrics: m,
		now:     time.Now,
	}
}

// RegisterHandler appends h. Handlers run in registration order.
func (c *Consumer) RegisterHandler(h ClickHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlers = append(c.handlers, h)
	log.Info().Str("handler", h.Name()).Str("channel", c.channel).Msg("Registered click handler")
}

// Start subscribes and starts the receive loop
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sub != nil {
		log.Warn().Str("channel", c.channel).Msg("Consumer already started")
		return nil
	}

	sub, err := c.broker.Subscribe(ctx, c.channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.channel, err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	c.sub = sub
	c.cancel = cancel
	c.done = make(chan struct{})
	c.err = nil

	c.running.Store(true)
	c.metrics.ConsumerRunning.Set(1)

	go c.run(loopCtx, sub, c.done)

	log.Info().Str("channel", c.channel).Int("handlers", len(c.handlers)).Msg("Click consumer started")

	return nil
}

// Stop ends the loop, closes the subscription and waits for the in-flight message
func (c *Consumer) Stop() error {
	c.mu.Lock()
	sub, cancel, done := c.sub, c.cancel, c.done
	c.sub = nil
	c.mu.Unlock()

	if sub == nil {
		return nil
	}

	cancel()
	err := sub.Close()
	<-done

	log.Info().
		Str("channel", c.channel).
		Int64("processed", c.processed.Load()).
		Int64("failed", c.failed.Load()).
		Msg("Click consumer stopped")

	if err != nil {
		return fmt.Errorf("failed to close subscription: %w", err)
	}
	return nil
}

// Done is closed when the receive loop exits. It is nil before Start.
func (c *Consumer) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Err returns the transport error that ended the loop, if any
func (c *Consumer) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Running reports whether the receive loop is active
func (c *Consumer) Running() bool {
	return c.running.Load()
}

func (c *Consumer) run(ctx context.Context, sub Subscription, done chan struct{}) {
	defer func() {
		c.running.Store(false)
		c.metrics.ConsumerRunning.Set(0)
		close(done)
	}()

	for {
		payload, err := sub.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if !errors.Is(err, ErrTransport) {
				err = fmt.Errorf("%w: %v", ErrTransport, err)
			}

			c.mu.Lock()
			c.err = err
			c.mu.Unlock()

			log.Error().Err(err).Str("channel", c.channel).Msg("Click consumer transport failed")
			return
		}

		result := c.Process(ctx, payload)
		for _, herr := range result.HandlerErrors {
			log.Error().
				Err(herr.Err).
				Str("handler", herr.Handler).
				Str("link_id", result.Event.LinkID.String()).
				Msg("Click handler failed")
		}
	}
}

// Process decodes one payload and runs every handler on it. Handlers see a
// context that is not cancelled by Stop so an in-flight event completes.
func (c *Consumer) Process(ctx context.Context, payload []byte) Result {
	start := time.Now()

	c.received.Add(1)
	c.metrics.EventsReceived.Inc()

	event, err := model.DecodeClickEvent(payload, c.now())
	if err != nil {
		outcome, reason := OutcomeInvalidSchema, metrics.ReasonInvalidSchema
		if errors.Is(err, model.ErrInvalidJSON) {
			outcome, reason = OutcomeInvalidJSON, metrics.ReasonInvalidJSON
		}

		c.failed.Add(1)
		c.metrics.EventsFailed.WithLabelValues(reason).Inc()

		log.Warn().
			Err(err).
			Str("reason", reason).
			Str("payload", util.Truncate(string(payload), maxLoggedPayload)).
			Msg("Dropping click event")

		return Result{Outcome: outcome, Err: err, Duration: time.Since(start)}
	}

	c.mu.Lock()
	handlers := make([]ClickHandler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	handlerCtx := context.WithoutCancel(ctx)
	result := Result{Outcome: OutcomeProcessed, Event: event}

	for _, h := range handlers {
		if err := invoke(handlerCtx, h, event); err != nil {
			result.HandlerErrors = append(result.HandlerErrors, HandlerError{Handler: h.Name(), Err: err})
			c.metrics.EventsFailed.WithLabelValues(metrics.ReasonHandlerError).Inc()
		}
	}

	c.processed.Add(1)
	c.metrics.EventsProcessed.Inc()

	result.Duration = time.Since(start)
	c.metrics.ProcessingDuration.Observe(result.Duration.Seconds())

	log.Debug().
		Str("link_id", event.LinkID.String()).
		Str("short_code", event.ShortCode).
		Dur("duration", result.Duration).
		Msg("Processed click event")

	return result
}

func invoke(ctx context.Context, h ClickHandler, event *model.ClickEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.HandleClick(ctx, event)
}

// Stats returns a snapshot of the consumer counters
func (c *Consumer) Stats() ConsumerStats {
	c.mu.Lock()
	handlers := len(c.handlers)
	c.mu.Unlock()

	return ConsumerStats{
		Running:         c.running.Load(),
		Channel:         c.channel,
		EventsReceived:  c.received.Load(),
		EventsProcessed: c.processed.Load(),
		EventsFailed:    c.failed.Load(),
		Handlers:        handlers,
	}
}
