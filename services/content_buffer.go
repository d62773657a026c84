package services

import (
	"strings"
	"sync"
)

// ContentBuffer accumulates streamed fragments for one session.
// It only grows between resets.
type ContentBuffer struct {
	mu  sync.RWMutex
	buf strings.Builder
}

func NewContentBuffer() *ContentBuffer {
	return &ContentBuffer{}
}

// Append adds fragment to the end and returns the new length in bytes
func (b *ContentBuffer) Append(fragment string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.WriteString(fragment)
	return b.buf.Len()
}

// Reset empties the buffer before a new session
func (b *ContentBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// Snapshot returns the full current text
func (b *ContentBuffer) Snapshot() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.buf.String()
}

func (b *ContentBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.buf.Len()
}
