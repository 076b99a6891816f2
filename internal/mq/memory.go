package mq

import (
	"context"
	"sync"
)

const memoryBufferSize = 1024

// MemoryBroker is an in-process broker for single-binary deployments and tests.
// Like Pub/Sub, a publish with no subscribers is dropped.
type MemoryBroker struct {
	mu     sync.RWMutex
	subs   map[string]map[*memorySubscription]struct{}
	closed bool
}

// NewMemoryBroker creates an empty in-process broker
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[*memorySubscription]struct{})}
}

// Subscribe registers a subscriber on channel
func (b *MemoryBroker) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrSubscriptionClosed
	}

	sub := &memorySubscription{
		broker:   b,
		channel:  channel,
		messages: make(chan []byte, memoryBufferSize),
		closed:   make(chan struct{}),
	}
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*memorySubscription]struct{})
	}
	b.subs[channel][sub] = struct{}{}

	return sub, nil
}

// Publish copies payload to every subscriber of channel. It blocks while a
// subscriber's buffer is full.
func (b *MemoryBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	b.mu.RLock()
	subs := make([]*memorySubscription, 0, len(b.subs[channel]))
	for sub := range b.subs[channel] {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		msg := make([]byte, len(payload))
		copy(msg, payload)

		select {
		case sub.messages <- msg:
		case <-sub.closed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Subscribers returns the number of subscribers of channel
func (b *MemoryBroker) Subscribers(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}

// Close closes every subscription
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	var all []*memorySubscription
	for _, subs := range b.subs {
		for sub := range subs {
			all = append(all, sub)
		}
	}
	b.closed = true
	b.mu.Unlock()

	for _, sub := range all {
		_ = sub.Close()
	}
	return nil
}

func (b *MemoryBroker) remove(sub *memorySubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs[sub.channel], sub)
}

type memorySubscription struct {
	broker    *MemoryBroker
	channel   string
	messages  chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func (s *memorySubscription) Receive(ctx context.Context) ([]byte, error) {
	select {
	case <-s.closed:
		return nil, ErrSubscriptionClosed
	default:
	}

	select {
	case msg := <-s.messages:
		return msg, nil
	case <-s.closed:
		return nil, ErrSubscriptionClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *memorySubscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.broker.remove(s)
	})
	return nil
}
