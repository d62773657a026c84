package services

import (
	"context"
	"encoding/json"
	"log"
	"strategist/config"
	"strategist/metrics"
	"strategist/models"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StrategyTopic is the hub topic carrying strategy events
const StrategyTopic = "strategy"

// ErrorNotice is appended to the visible content when a session fails
const ErrorNotice = "\n\n[Error generating strategy. Please verify API Key and try again.]"

// Event types published on StrategyTopic
const (
	EventUpdate = "update"
	EventStatus = "status"
)

// TextStreamer opens one streamed text generation and hands every fragment
// to sink in arrival order. It returns once the stream ends or fails.
type TextStreamer interface {
	StreamText(ctx context.Context, req models.TextRequest, sink func(fragment string)) error
}

// Publisher broadcasts a message to the subscribers of a topic
type Publisher interface {
	PublishTopic(topic string, msg []byte)
}

// StrategyService runs strategy sessions.
// At most one session streams at a time; the content of the last session
// stays readable until the next one starts.
type StrategyService struct {
	streamer      TextStreamer
	publisher     Publisher
	textProcessor *TextProcessor
	buffer        *ContentBuffer
	model         string
	temperature   float32

	mu         sync.RWMutex
	sessionID  string
	status     models.StreamStatus
	lastErr    error
	startedAt  time.Time
	finishedAt time.Time
}

// NewStrategyService creates a new strategy service
func NewStrategyService(cfg *config.Config, streamer TextStreamer, publisher Publisher) *StrategyService {
	return &StrategyService{
		streamer:      streamer,
		publisher:     publisher,
		textProcessor: NewTextProcessor(),
		buffer:        NewContentBuffer(),
		model:         cfg.TextModel,
		temperature:   float32(cfg.TextTemperature),
		status:        models.StatusIdle,
	}
}

// Start begins a session and streams it in the background.
// The session outlives ctx cancellation. Returns ErrStreamInProgress, leaving
// all state untouched, when a session is already streaming.
func (s *StrategyService) Start(ctx context.Context, inputs models.MarketingInputs) (string, error) {
	sessionID, err := s.begin()
	if err != nil {
		return "", err
	}
	go s.run(context.WithoutCancel(ctx), sessionID, inputs)
	return sessionID, nil
}

// Generate runs a whole session on the calling goroutine.
// The returned error is the collaborator failure, if any.
func (s *StrategyService) Generate(ctx context.Context, inputs models.MarketingInputs) (string, error) {
	sessionID, err := s.begin()
	if err != nil {
		return "", err
	}
	return sessionID, s.run(ctx, sessionID, inputs)
}

func (s *StrategyService) begin() (string, error) {
	s.mu.Lock()
	if s.status == models.StatusStreaming {
		s.mu.Unlock()
		return "", models.ErrStreamInProgress
	}

	s.buffer.Reset()
	s.sessionID = uuid.New().String()
	s.status = models.StatusStreaming
	s.lastErr = nil
	s.startedAt = time.Now()
	s.finishedAt = time.Time{}
	sessionID := s.sessionID
	s.mu.Unlock()

	metrics.ActiveStreams.Inc()
	s.publish(models.StrategyEvent{
		Type:      EventStatus,
		SessionID: sessionID,
		Status:    models.StatusStreaming,
	})
	return sessionID, nil
}

func (s *StrategyService) run(ctx context.Context, sessionID string, inputs models.MarketingInputs) error {
	log.Printf("[Strategy %s] Starting generation with model %s", sessionID, s.model)

	req := models.TextRequest{
		Model:             s.model,
		Prompt:            BuildStrategyPrompt(inputs),
		SystemInstruction: SystemInstruction,
		Temperature:       s.temperature,
	}

	fragments := 0
	err := s.streamer.StreamText(ctx, req, func(fragment string) {
		if fragment == "" {
			return
		}
		fragments++
		s.appendAndPublish(sessionID, fragment)
		metrics.StrategyFragments.Inc()
	})

	if err != nil {
		log.Printf("[Strategy %s] Generation failed after %d fragments: %v", sessionID, fragments, err)
		s.appendAndPublish(sessionID, ErrorNotice)
		s.finish(sessionID, models.StatusError, err)
		return err
	}

	log.Printf("[Strategy %s] Generation completed: %d fragments, %d bytes", sessionID, fragments, s.buffer.Len())
	s.finish(sessionID, models.StatusCompleted, nil)
	return nil
}

func (s *StrategyService) appendAndPublish(sessionID, fragment string) {
	length := s.buffer.Append(fragment)
	s.publish(models.StrategyEvent{
		Type:      EventUpdate,
		SessionID: sessionID,
		Status:    models.StatusStreaming,
		Length:    length,
		Fragment:  fragment,
		Blocks:    RenderMarkdown(s.buffer.Snapshot()),
	})
}

func (s *StrategyService) finish(sessionID string, status models.StreamStatus, err error) {
	event := models.StrategyEvent{
		Type:      EventStatus,
		SessionID: sessionID,
		Status:    status,
	}
	if err != nil {
		event.Error = err.Error()
		event.CredentialRequired = models.IsCredentialError(err)
	}

	// Published under mu: events of the next session come after this one.
	s.mu.Lock()
	s.status = status
	s.lastErr = err
	s.finishedAt = time.Now()
	event.Length = s.buffer.Len()
	s.publish(event)
	s.mu.Unlock()

	metrics.ActiveStreams.Dec()
	outcome := metrics.OutcomeCompleted
	if status == models.StatusError {
		outcome = metrics.OutcomeError
	}
	metrics.StrategySessions.WithLabelValues(outcome).Inc()
}

func (s *StrategyService) publish(event models.StrategyEvent) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Strategy %s] Failed to encode event: %v", event.SessionID, err)
		return
	}
	s.publisher.PublishTopic(StrategyTopic, data)
}

// Status returns the current lifecycle state
func (s *StrategyService) Status() models.StreamStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Content returns the raw accumulated text
func (s *StrategyService) Content() string {
	return s.buffer.Snapshot()
}

// Snapshot returns the full current state, rendered
func (s *StrategyService) Snapshot() models.StrategySnapshot {
	s.mu.RLock()
	snap := models.StrategySnapshot{
		SessionID: s.sessionID,
		Status:    s.status,
	}
	if s.lastErr != nil {
		snap.Error = s.lastErr.Error()
		snap.CredentialRequired = models.IsCredentialError(s.lastErr)
	}
	if !s.startedAt.IsZero() {
		t := s.startedAt
		snap.StartedAt = &t
	}
	if !s.finishedAt.IsZero() {
		t := s.finishedAt
		snap.FinishedAt = &t
	}
	s.mu.RUnlock()

	snap.Content = s.buffer.Snapshot()
	snap.Blocks = []models.DisplayBlock{}
	if snap.Content != "" {
		snap.Blocks = RenderMarkdown(snap.Content)
	}
	snap.Stats = s.textProcessor.GetStats(snap.Content)
	return snap
}
