package sse

import (
	"context"
	"strategist/metrics"
)

// Hub manages topic-based SSE subscribers.
//
// All access to the topic table happens inside Run, so callers on other
// goroutines never touch it directly. Each subscriber owns its channel:
// the hub sends to it but never closes it.
type Hub struct {
	topics map[string]map[chan []byte]struct{}

	subscribe   chan subscription
	unsubscribe chan subscription
	publish     chan topicMessage
	done        chan struct{}
}

type subscription struct {
	ch    chan []byte
	topic string
}

type topicMessage struct {
	topic string
	msg   []byte
}

// NewHub creates a hub. The publish channel is buffered to absorb short
// bursts, such as a fast run of fragments, without blocking publishers.
func NewHub() *Hub {
	return &Hub{
		topics:      make(map[string]map[chan []byte]struct{}),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		publish:     make(chan topicMessage, 100),
		done:        make(chan struct{}),
	}
}

// Run processes subscriptions and publishes until ctx is cancelled.
// It should be started in its own goroutine:
//
//	hub := sse.NewHub()
//	go hub.Run(ctx)
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-h.subscribe:
			subs, ok := h.topics[s.topic]
			if !ok {
				subs = make(map[chan []byte]struct{})
				h.topics[s.topic] = subs
			}
			subs[s.ch] = struct{}{}
			metrics.SSESubscribers.Inc()
		case s := <-h.unsubscribe:
			if subs, ok := h.topics[s.topic]; ok {
				if _, present := subs[s.ch]; present {
					delete(subs, s.ch)
					metrics.SSESubscribers.Dec()
				}
				if len(subs) == 0 {
					delete(h.topics, s.topic)
				}
			}
		case tm := <-h.publish:
			for ch := range h.topics[tm.topic] {
				select {
				case ch <- tm.msg:
				default:
					// drop if client not reading
					metrics.SSEDropped.Inc()
				}
			}
		}
	}
}

// PublishTopic sends msg to every subscriber of topic.
// It is a no-op once the hub has stopped.
func (h *Hub) PublishTopic(topic string, msg []byte) {
	select {
	case h.publish <- topicMessage{topic: topic, msg: msg}:
	case <-h.done:
	}
}

// Subscribe registers ch for topic. Callers should pass a buffered channel
// and Unsubscribe when done.
func (h *Hub) Subscribe(ch chan []byte, topic string) {
	select {
	case h.subscribe <- subscription{ch: ch, topic: topic}:
	case <-h.done:
	}
}

// Unsubscribe removes ch from topic
func (h *Hub) Unsubscribe(ch chan []byte, topic string) {
	select {
	case h.unsubscribe <- subscription{ch: ch, topic: topic}:
	case <-h.done:
	}
}
