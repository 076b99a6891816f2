package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"linkpulse/internal/model"

	"github.com/rs/zerolog/log"
)

const asyncPublishTimeout = 5 * time.Second

// ClickProducer publishes click events for the consumer side
type ClickProducer struct {
	broker  Broker
	channel string
}

// NewClickProducer creates a producer on channel
func NewClickProducer(broker Broker, channel string) *ClickProducer {
	return &ClickProducer{broker: broker, channel: channel}
}

// PublishClick encodes and publishes event
func (p *ClickProducer) PublishClick(ctx context.Context, event *model.ClickEvent) error {
	if p == nil {
		return nil // Producer disabled
	}

	bytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal click event: %w", err)
	}

	if err := p.broker.Publish(ctx, p.channel, bytes); err != nil {
		return err
	}

	log.Debug().
		Str("link_id", event.LinkID.String()).
		Str("short_code", event.ShortCode).
		Msg("Click event published")

	return nil
}

// PublishClickAsync publishes in the background. Failures are logged, never returned.
func (p *ClickProducer) PublishClickAsync(ctx context.Context, event *model.ClickEvent) {
	if p == nil {
		return
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncPublishTimeout)
		defer cancel()

		if err := p.PublishClick(pubCtx, event); err != nil {
			log.Error().
				Err(err).
				Str("short_code", event.ShortCode).
				Msg("Failed to publish click event")
		}
	}()
}

var _ ProducerInterface = (*ClickProducer)(nil)
