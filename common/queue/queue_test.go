package queue

import (
	"context"
	"testing"
	"time"

	"github.com/storeline/pos/common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_PublishSubscribe(t *testing.T) {
	q := NewMemoryQueue(8, logger.New("error", "text"))
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 1)
	err := q.Subscribe(ctx, "events", func(_ context.Context, key string, value []byte) error {
		received <- key + ":" + string(value)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, q.Publish(ctx, "events", "k1", []byte("hello")))

	select {
	case got := <-received:
		assert.Equal(t, "k1:hello", got)
	case <-time.After(2 * time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestMemoryQueue_PublishBeforeSubscribe(t *testing.T) {
	q := NewMemoryQueue(8, logger.New("error", "text"))
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Messages published before any subscriber buffer in the topic channel
	require.NoError(t, q.Publish(ctx, "events", "k1", []byte("early")))

	received := make(chan string, 1)
	require.NoError(t, q.Subscribe(ctx, "events", func(_ context.Context, _ string, value []byte) error {
		received <- string(value)
		return nil
	}))

	select {
	case got := <-received:
		assert.Equal(t, "early", got)
	case <-time.After(2 * time.Second):
		t.Fatal("buffered message was not delivered")
	}
}

func TestMemoryQueue_FullTopicDropsInsteadOfBlocking(t *testing.T) {
	q := NewMemoryQueue(1, logger.New("error", "text"))
	defer q.Close()

	ctx := context.Background()
	require.NoError(t, q.Publish(ctx, "events", "k1", []byte("a")))
	// Second publish finds the buffer full and must not block
	require.NoError(t, q.Publish(ctx, "events", "k2", []byte("b")))
}
