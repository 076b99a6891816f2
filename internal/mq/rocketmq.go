package mq

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/rs/zerolog/log"
)

const clickTag = "click"

// RocketMQConfig holds the connection settings of the RocketMQ broker
type RocketMQConfig struct {
	NameServer string
	Group      string
}

// RocketMQBroker carries click events over RocketMQ topics. Topics are consumed
// in broadcasting mode so every subscriber sees every message, like Pub/Sub.
type RocketMQBroker struct {
	cfg      RocketMQConfig
	producer rocketmq.Producer
}

// NewRocketMQBroker creates the broker and starts its producer
func NewRocketMQBroker(cfg RocketMQConfig) (*RocketMQBroker, error) {
	p, err := rocketmq.NewProducer(
		producer.WithNameServer([]string{cfg.NameServer}),
		producer.WithRetry(3),
		producer.WithGroupName(cfg.Group+"_producer"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create RocketMQ producer: %w", err)
	}

	if err := p.Start(); err != nil {
		return nil, fmt.Errorf("failed to start RocketMQ producer: %w", err)
	}

	log.Info().Str("nameserver", cfg.NameServer).Msg("RocketMQ producer started")

	return &RocketMQBroker{cfg: cfg, producer: p}, nil
}

// Subscribe starts a broadcasting push consumer on the channel's topic
func (b *RocketMQBroker) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	topic := topicName(channel)

	c, err := rocketmq.NewPushConsumer(
		consumer.WithNameServer([]string{b.cfg.NameServer}),
		consumer.WithConsumerModel(consumer.BroadCasting),
		consumer.WithConsumerOrder(true),
		consumer.WithGroupName(b.cfg.Group),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create RocketMQ consumer: %v", ErrTransport, err)
	}

	sub := newRocketMQSubscription(c, topic)

	if err := c.Subscribe(topic, consumer.MessageSelector{}, sub.deliver); err != nil {
		return nil, fmt.Errorf("%w: subscribe to topic %s: %v", ErrTransport, topic, err)
	}

	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("%w: start consumer: %v", ErrTransport, err)
	}

	log.Info().Str("topic", topic).Str("group", b.cfg.Group).Msg("RocketMQ consumer started")

	return sub, nil
}

// Publish sends payload to the channel's topic
func (b *RocketMQBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	m := primitive.NewMessage(topicName(channel), payload)
	m.WithTag(clickTag)

	result, err := b.producer.SendSync(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	log.Debug().Str("msg_id", result.MsgID).Msg("Click event sent to RocketMQ")

	return nil
}

// Close shuts the producer down
func (b *RocketMQBroker) Close() error {
	if b != nil && b.producer != nil {
		return b.producer.Shutdown()
	}
	return nil
}

type rocketMQSubscription struct {
	client    rocketmq.PushConsumer
	topic     string
	messages  chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newRocketMQSubscription(client rocketmq.PushConsumer, topic string) *rocketMQSubscription {
	return &rocketMQSubscription{
		client:   client,
		topic:    topic,
		messages: make(chan []byte),
		closed:   make(chan struct{}),
	}
}

// deliver hands messages to Receive one at a time. Broadcast messages are not
// redelivered, so a message arriving after Close is lost like a Pub/Sub message.
func (s *rocketMQSubscription) deliver(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
	for _, msg := range msgs {
		select {
		case s.messages <- msg.Body:
		case <-s.closed:
			return consumer.ConsumeRetryLater, ErrSubscriptionClosed
		case <-ctx.Done():
			return consumer.ConsumeRetryLater, ctx.Err()
		}
	}
	return consumer.ConsumeSuccess, nil
}

func (s *rocketMQSubscription) Receive(ctx context.Context) ([]byte, error) {
	select {
	case payload := <-s.messages:
		return payload, nil
	case <-s.closed:
		return nil, ErrSubscriptionClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *rocketMQSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.client == nil {
			return
		}
		if uerr := s.client.Unsubscribe(s.topic); uerr != nil {
			log.Warn().Err(uerr).Str("topic", s.topic).Msg("Failed to unsubscribe")
		}
		err = s.client.Shutdown()
	})
	if err != nil {
		return fmt.Errorf("failed to shut down consumer: %w", err)
	}
	return nil
}

// topicName maps a channel name onto the RocketMQ topic charset [A-Za-z0-9_-%|]
func topicName(channel string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_', r == '-', r == '%', r == '|':
			return r
		}
		return '_'
	}, channel)
}
