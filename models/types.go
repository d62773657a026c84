package models

import "time"

// MarketingInputs holds the four brand fields submitted by the strategy form
type MarketingInputs struct {
	Product    string `json:"product"`
	Audience   string `json:"audience"`
	LaunchGoal string `json:"launch_goal"`
	BrandTone  string `json:"brand_tone"`
}

// StreamStatus is the lifecycle state of the strategy engine
type StreamStatus string

const (
	StatusIdle      StreamStatus = "idle"
	StatusStreaming StreamStatus = "streaming"
	StatusCompleted StreamStatus = "completed"
	StatusError     StreamStatus = "error"
)

// BlockKind classifies one rendered line
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockBullet    BlockKind = "bullet"
	BlockOrdered   BlockKind = "ordered"
	BlockParagraph BlockKind = "paragraph"
	BlockSpacer    BlockKind = "spacer"
)

// Segment is a run of paragraph text, optionally bold
type Segment struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// DisplayBlock is one renderable unit derived from a single line of content.
// Level is set for headings (2, 3 or 4), Label for ordered items ("1."),
// Segments for paragraphs. Spacers carry nothing.
type DisplayBlock struct {
	Kind     BlockKind `json:"kind"`
	Level    int       `json:"level,omitempty"`
	Label    string    `json:"label,omitempty"`
	Text     string    `json:"text,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
}

// TextRequest is what the text collaborator receives for one stream
type TextRequest struct {
	Model             string
	Prompt            string
	SystemInstruction string
	Temperature       float32
}

// ContentStats summarises generated content
type ContentStats struct {
	Chars          int     `json:"chars"`
	Words          int     `json:"words"`
	Sentences      int     `json:"sentences"`
	ReadingMinutes float64 `json:"reading_minutes"`
}

// StrategySnapshot is the full current state of the strategy engine
type StrategySnapshot struct {
	SessionID          string         `json:"session_id,omitempty"`
	Status             StreamStatus   `json:"status"`
	Content            string         `json:"content"`
	Blocks             []DisplayBlock `json:"blocks"`
	Stats              ContentStats   `json:"stats"`
	Error              string         `json:"error,omitempty"`
	CredentialRequired bool           `json:"credential_required"`
	StartedAt          *time.Time     `json:"started_at,omitempty"`
	FinishedAt         *time.Time     `json:"finished_at,omitempty"`
}

// StrategyEvent is pushed to live subscribers.
// Type is "update" for a fragment and "status" for a transition. Length is
// the content length in bytes after the event, so clients can detect gaps.
type StrategyEvent struct {
	Type               string         `json:"type"`
	SessionID          string         `json:"session_id"`
	Status             StreamStatus   `json:"status"`
	Length             int            `json:"length"`
	Fragment           string         `json:"fragment,omitempty"`
	Blocks             []DisplayBlock `json:"blocks,omitempty"`
	Error              string         `json:"error,omitempty"`
	CredentialRequired bool           `json:"credential_required,omitempty"`
}

// GenerateStrategyResponse is returned when a session starts
type GenerateStrategyResponse struct {
	SessionID string       `json:"session_id"`
	Status    StreamStatus `json:"status"`
}

// RenderRequest asks for the block rendering of arbitrary text
type RenderRequest struct {
	Text string `json:"text"`
}

// CredentialRequest replaces the API credential
type CredentialRequest struct {
	APIKey string `json:"api_key"`
}
