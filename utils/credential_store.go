package utils

import (
	"strings"
	"sync"
	"time"
)

// CredentialStore holds the API credential shared by the generation collaborators.
// Clients are built from Current() at each call, so a key entered after a
// rejection is picked up by the next request.
type CredentialStore struct {
	key        string
	rejected   bool
	rejectedAt time.Time
	updatedAt  time.Time
	mu         sync.RWMutex
}

// CredentialStatus is a credential snapshot safe to expose to the UI
type CredentialStatus struct {
	Configured bool       `json:"configured"`
	Rejected   bool       `json:"rejected"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// NewCredentialStore creates a store seeded with key, which may be empty
func NewCredentialStore(key string) *CredentialStore {
	s := &CredentialStore{key: strings.TrimSpace(key)}
	if s.key != "" {
		s.updatedAt = time.Now()
	}
	return s
}

// Current returns the key, or false when none is configured
func (s *CredentialStore) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key, s.key != ""
}

// Configured reports whether a key is present
func (s *CredentialStore) Configured() bool {
	_, ok := s.Current()
	return ok
}

// Set replaces the key and clears any rejection
func (s *CredentialStore) Set(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = strings.TrimSpace(key)
	s.rejected = false
	s.rejectedAt = time.Time{}
	s.updatedAt = time.Now()
}

// MarkRejected records that a collaborator refused the current key.
// The key stays usable: the user decides whether to replace it.
func (s *CredentialStore) MarkRejected() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rejected = true
	s.rejectedAt = time.Now()
}

// Status returns the current credential state
func (s *CredentialStore) Status() CredentialStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := CredentialStatus{
		Configured: s.key != "",
		Rejected:   s.rejected,
	}
	if !s.rejectedAt.IsZero() {
		t := s.rejectedAt
		status.RejectedAt = &t
	}
	if !s.updatedAt.IsZero() {
		t := s.updatedAt
		status.UpdatedAt = &t
	}
	return status
}
