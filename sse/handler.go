package sse

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Prepare sets the SSE response headers and returns the flusher.
// The second result is false when the writer cannot stream.
func Prepare(c *gin.Context) (http.Flusher, bool) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	return flusher, ok
}

// WriteEvent writes one named event and flushes it
func WriteEvent(c *gin.Context, flusher http.Flusher, event string, data []byte) error {
	if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// EventName reads the "type" field of a JSON message, falling back to "message"
func EventName(msg []byte) string {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &envelope); err != nil || envelope.Type == "" {
		return "message"
	}
	return envelope.Type
}

// Serve subscribes to topic, sends the initial event and then forwards every
// hub message until the client goes away. initial is called after the
// subscription is registered, so no published message falls between the two.
func Serve(c *gin.Context, h *Hub, topic string, initialEvent string, initial func() ([]byte, error)) {
	flusher, ok := Prepare(c)
	if !ok {
		c.String(http.StatusInternalServerError, "streaming unsupported")
		return
	}

	msgCh := make(chan []byte, 64)
	h.Subscribe(msgCh, topic)
	defer h.Unsubscribe(msgCh, topic)

	c.Status(http.StatusOK)
	fmt.Fprintf(c.Writer, ": connected\n\n")
	flusher.Flush()

	if initial != nil {
		data, err := initial()
		if err != nil {
			return
		}
		if err := WriteEvent(c, flusher, initialEvent, data); err != nil {
			return
		}
	}

	notify := c.Request.Context().Done()
	for {
		select {
		case <-notify:
			return
		case msg := <-msgCh:
			if err := WriteEvent(c, flusher, EventName(msg), msg); err != nil {
				return
			}
		}
	}
}
