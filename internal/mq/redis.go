package mq

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisBroker carries click events over Redis Pub/Sub
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker creates a broker on an existing client. The client is owned by the caller.
func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

// Subscribe subscribes to channel and waits for the server confirmation
func (b *RedisBroker) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	ps := b.client.Subscribe(ctx, channel)

	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("%w: subscribe to %s: %v", ErrTransport, channel, err)
	}

	log.Info().Str("channel", channel).Msg("Subscribed to Redis channel")

	return &redisSubscription{ps: ps, channel: channel}, nil
}

// Publish publishes payload to channel
func (b *RedisBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return nil
}

// Close is a no-op, the client is closed by its owner
func (b *RedisBroker) Close() error {
	return nil
}

type redisSubscription struct {
	ps      *redis.PubSub
	channel string
}

func (s *redisSubscription) Receive(ctx context.Context) ([]byte, error) {
	msg, err := s.ps.ReceiveMessage(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, redis.ErrClosed) {
			return nil, ErrSubscriptionClosed
		}
		return nil, fmt.Errorf("%w: receive from %s: %v", ErrTransport, s.channel, err)
	}
	return []byte(msg.Payload), nil
}

func (s *redisSubscription) Close() error {
	if err := s.ps.Unsubscribe(context.Background(), s.channel); err != nil && !errors.Is(err, redis.ErrClosed) {
		log.Warn().Err(err).Str("channel", s.channel).Msg("Failed to unsubscribe")
	}
	if err := s.ps.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("failed to close subscription: %w", err)
	}
	return nil
}
