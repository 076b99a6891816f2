package mq

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBroker_FanOut(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	s1, err := b.Subscribe(ctx, testChannel)
	require.NoError(t, err)
	s2, err := b.Subscribe(ctx, testChannel)
	require.NoError(t, err)
	other, err := b.Subscribe(ctx, "other")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, testChannel, []byte("one")))
	require.NoError(t, b.Publish(ctx, testChannel, []byte("two")))

	for _, s := range []Subscription{s1, s2} {
		msg, err := s.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, "one", string(msg))
		msg, err = s.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, "two", string(msg))
	}

	shortCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = other.Receive(shortCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryBroker_PublishWithoutSubscribers(t *testing.T) {
	b := NewMemoryBroker()
	assert.NoError(t, b.Publish(context.Background(), testChannel, []byte("lost")))
	assert.Equal(t, 0, b.Subscribers(testChannel))
}

func TestMemoryBroker_PayloadIsCopied(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()
	s, err := b.Subscribe(ctx, testChannel)
	require.NoError(t, err)

	payload := []byte("abc")
	require.NoError(t, b.Publish(ctx, testChannel, payload))
	payload[0] = 'x'

	msg, err := s.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(msg))
}

func TestMemoryBroker_Close(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()
	s, err := b.Subscribe(ctx, testChannel)
	require.NoError(t, err)

	require.NoError(t, b.Close())

	_, err = s.Receive(ctx)
	assert.ErrorIs(t, err, ErrSubscriptionClosed)
	assert.Equal(t, 0, b.Subscribers(testChannel))

	_, err = b.Subscribe(ctx, testChannel)
	assert.ErrorIs(t, err, ErrSubscriptionClosed)
}

func TestMemorySubscription_CloseUnblocksReceive(t *testing.T) {
	b := NewMemoryBroker()
	s, err := b.Subscribe(context.Background(), testChannel)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Receive(context.Background())
		errCh <- err
	}()

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSubscriptionClosed)
	case <-time.After(time.Second):
		t.Fatal("Receive not unblocked by Close")
	}
}
