package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := NewHub()
	go h.Run(ctx)
	return h
}

func receive(t *testing.T, ch chan []byte) string {
	t.Helper()
	select {
	case msg := <-ch:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return ""
	}
}

func TestHub_PublishToSubscribers(t *testing.T) {
	h := startHub(t)

	a := make(chan []byte, 4)
	b := make(chan []byte, 4)
	other := make(chan []byte, 4)
	h.Subscribe(a, "strategy")
	h.Subscribe(b, "strategy")
	h.Subscribe(other, "video")

	h.PublishTopic("strategy", []byte("first"))
	h.PublishTopic("strategy", []byte("second"))

	assert.Equal(t, "first", receive(t, a))
	assert.Equal(t, "second", receive(t, a))
	assert.Equal(t, "first", receive(t, b))
	assert.Equal(t, "second", receive(t, b))

	h.PublishTopic("video", []byte("v"))
	assert.Equal(t, "v", receive(t, other))
}

func TestHub_Unsubscribe(t *testing.T) {
	h := startHub(t)

	ch := make(chan []byte, 4)
	h.Subscribe(ch, "strategy")
	h.Unsubscribe(ch, "strategy")

	// A second subscriber proves the publish was processed
	probe := make(chan []byte, 4)
	h.Subscribe(probe, "strategy")
	h.PublishTopic("strategy", []byte("after"))
	assert.Equal(t, "after", receive(t, probe))

	assert.Empty(t, ch)
}

func TestHub_DropsForSlowSubscriber(t *testing.T) {
	h := startHub(t)

	slow := make(chan []byte, 1)
	fast := make(chan []byte, 4)
	h.Subscribe(slow, "strategy")
	h.Subscribe(fast, "strategy")

	h.PublishTopic("strategy", []byte("1"))
	h.PublishTopic("strategy", []byte("2"))
	h.PublishTopic("strategy", []byte("3"))

	assert.Equal(t, "1", receive(t, fast))
	assert.Equal(t, "2", receive(t, fast))
	assert.Equal(t, "3", receive(t, fast))
	assert.Equal(t, "1", receive(t, slow))
	assert.Empty(t, slow)
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()
	go h.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		ch := make(chan []byte, 1)
		h.Subscribe(ch, "t")
		h.PublishTopic("t", []byte("x"))
		h.Unsubscribe(ch, "t")
		close(done)
	}()

	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "update", EventName([]byte(`{"type":"update","fragment":"x"}`)))
	assert.Equal(t, "message", EventName([]byte(`{"fragment":"x"}`)))
	assert.Equal(t, "message", EventName([]byte(`not json`)))
}
