package mq

import (
	"context"
	"errors"
)

var (
	// ErrTransport wraps every broker failure that ends a subscription
	ErrTransport = errors.New("broker transport error")
	// ErrSubscriptionClosed is returned by Receive after the subscription is closed
	ErrSubscriptionClosed = errors.New("subscription closed")
)

// Broker is a publish/subscribe transport for click events
type Broker interface {
	Subscribe(ctx context.Context, channel string) (Subscription, error)
	Publish(ctx context.Context, channel string, payload []byte) error
	Close() error
}

// Subscription delivers raw payloads of one channel in broker order
type Subscription interface {
	// Receive blocks until a payload arrives, ctx is done or the subscription fails
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}
