package models

import (
	"encoding/json"
	"slices"
	"time"
)

const (
	AspectLandscape = "16:9"
	AspectPortrait  = "9:16"

	Resolution720p  = "720p"
	Resolution1080p = "1080p"
)

// VideoParams is the parameter bundle submitted by the video studio form
type VideoParams struct {
	Setting         string        `json:"setting"`
	PresenterGender string        `json:"presenter_gender"`
	PresenterAge    string        `json:"presenter_age"`
	PresenterStyle  string        `json:"presenter_style"`
	Script          string        `json:"script"`
	Refinements     RefinementSet `json:"refinements"`
	AspectRatio     string        `json:"aspect_ratio"`
	Resolution      string        `json:"resolution"`
	// ProductImage is an optional data URL ("data:image/png;base64,...")
	ProductImage string `json:"product_image,omitempty"`
}

// RefinementSet is a set of refinement phrases kept in insertion order
type RefinementSet struct {
	values []string
}

func NewRefinementSet(values ...string) RefinementSet {
	var s RefinementSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v if absent. Returns false when v was already a member.
func (s *RefinementSet) Add(v string) bool {
	if s.Contains(v) {
		return false
	}
	s.values = append(s.values, v)
	return true
}

// Remove deletes v if present
func (s *RefinementSet) Remove(v string) bool {
	i := slices.Index(s.values, v)
	if i < 0 {
		return false
	}
	s.values = slices.Delete(s.values, i, i+1)
	return true
}

// Toggle flips membership of v and reports whether v is now a member
func (s *RefinementSet) Toggle(v string) bool {
	if s.Remove(v) {
		return false
	}
	s.values = append(s.values, v)
	return true
}

func (s RefinementSet) Contains(v string) bool {
	return slices.Contains(s.values, v)
}

func (s RefinementSet) Len() int {
	return len(s.values)
}

// Values returns a copy of the members in insertion order
func (s RefinementSet) Values() []string {
	return slices.Clone(s.values)
}

func (s RefinementSet) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.values)
}

func (s *RefinementSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewRefinementSet(values...)
	return nil
}

// ToggleRefinementRequest flips one refinement in a form selection
type ToggleRefinementRequest struct {
	Refinements RefinementSet `json:"refinements"`
	Value       string        `json:"value" binding:"required"`
}

// ToggleRefinementResponse returns the selection after the toggle
type ToggleRefinementResponse struct {
	Refinements RefinementSet `json:"refinements"`
	Selected    bool          `json:"selected"`
}

// RefinementOption is one selectable refinement chip
type RefinementOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// VideoOptions lists the choices offered by the video studio form
type VideoOptions struct {
	Settings     []string           `json:"settings"`
	Genders      []string           `json:"genders"`
	Ages         []string           `json:"ages"`
	Styles       []string           `json:"styles"`
	Refinements  []RefinementOption `json:"refinements"`
	AspectRatios []string           `json:"aspect_ratios"`
	Resolutions  []string           `json:"resolutions"`
	Defaults     VideoParams        `json:"defaults"`
}

// VideoRequest is what the video collaborator receives
type VideoRequest struct {
	Model       string
	Prompt      string
	ImageBytes  []byte
	MIMEType    string
	Resolution  string
	AspectRatio string
}

// VideoOperation is a handle to an asynchronous video job owned by the collaborator.
// Handle carries the collaborator's own representation between polls.
type VideoOperation struct {
	Name      string
	Done      bool
	ResultURI string
	Handle    any
}

// VideoJob tracks one video request in memory
type VideoJob struct {
	JobID         string
	Status        string
	Message       string
	VideoPath     string
	ScriptSeconds float64
	Error         error
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// GenerateVideoResponse returns the job ID
type GenerateVideoResponse struct {
	JobID         string  `json:"job_id"`
	Status        string  `json:"status"`
	ScriptSeconds float64 `json:"script_seconds"`
}

// VideoStatusResponse returns current progress
type VideoStatusResponse struct {
	Status             string  `json:"status"` // "processing", "completed", "failed"
	Message            string  `json:"message"`
	Elapsed            string  `json:"elapsed"`
	VideoURL           *string `json:"video_url,omitempty"`
	Error              *string `json:"error,omitempty"`
	CredentialRequired bool    `json:"credential_required"`
}
