package models

import (
	"errors"
	"fmt"
)

var (
	ErrStreamInProgress  = errors.New("a strategy is already streaming")
	ErrMissingCredential = errors.New("API credential is not configured")
	ErrNoResultLocator   = errors.New("video generation failed to return a valid URI")
	ErrJobNotFound       = errors.New("job not found")
	ErrNotConnected      = errors.New("social account is not connected")
	ErrPublishInProgress = errors.New("a post is already being published")
	ErrInvalidState      = errors.New("invalid or expired state token")
)

// ErrorKind distinguishes collaborator failures that need different handling
type ErrorKind string

const (
	// KindCredential means the key is missing, rejected or lacks access.
	// The host should prompt for a new credential.
	KindCredential ErrorKind = "credential"
	KindQuota      ErrorKind = "quota"
	KindUpstream   ErrorKind = "upstream"
)

// GenerationError wraps a failure reported by a generation collaborator
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func NewGenerationError(kind ErrorKind, err error) *GenerationError {
	return &GenerationError{Kind: kind, Err: err}
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsCredentialError reports whether err should trigger credential re-entry
func IsCredentialError(err error) bool {
	if errors.Is(err, ErrMissingCredential) {
		return true
	}
	var genErr *GenerationError
	return errors.As(err, &genErr) && genErr.Kind == KindCredential
}
