package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"path/filepath"
	"strategist/config"
	"strategist/metrics"
	"strategist/models"
	"strategist/utils"
	"strings"
	"time"
)

// VideoGenerator is the asynchronous video collaborator
type VideoGenerator interface {
	SubmitVideo(ctx context.Context, req models.VideoRequest) (*models.VideoOperation, error)
	PollVideo(ctx context.Context, op *models.VideoOperation) (*models.VideoOperation, error)
	FetchVideo(ctx context.Context, uri, destPath string) error
}

// InitialVideoStatus is reported before the operation is submitted
const InitialVideoStatus = "Initializing Video Engine..."

// pollMessages rotate while the operation is running
var pollMessages = []string{
	"Simulating camera movements...",
	"Lighting the scene...",
	"Rendering textures and reflections...",
	"Synthesizing presenter movements...",
	"Polishing the final frames...",
	"Almost ready for the premiere...",
}

var (
	videoSettings = []string{"Modern Studio", "Wine Cellar", "Lush Vineyard", "Sunset Terrace", "Minimalist Kitchen"}
	videoGenders  = []string{"Male", "Female"}
	videoAges     = []string{"21-30", "30-40", "40+"}
	videoStyles   = []string{"Professional", "Approachable", "Energetic", "Elegant", "Casual"}

	videoRefinements = []models.RefinementOption{
		{Label: "Dramatic Shadows", Value: "dramatic shadows and high contrast lighting"},
		{Label: "Setting Sun", Value: "warm golden hour lighting from a setting sun"},
		{Label: "Holding Glass", Value: "presenter naturally holding a fine wine glass"},
		{Label: "Pouring Wine", Value: "cinematic close-up of wine being poured into a glass"},
		{Label: "Micro-macro Lens", Value: "extremely shallow depth of field for professional look"},
	}
)

// VideoService drives one video operation from submission to a local asset
type VideoService struct {
	generator    VideoGenerator
	tempDir      string
	model        string
	pollInterval time.Duration
}

// NewVideoService creates a new video service
func NewVideoService(cfg *config.Config, generator VideoGenerator) *VideoService {
	return &VideoService{
		generator:    generator,
		tempDir:      cfg.TempDir,
		model:        cfg.VideoModel,
		pollInterval: cfg.VideoPollInterval,
	}
}

// DefaultVideoParams returns the parameters the video studio starts with
func DefaultVideoParams() models.VideoParams {
	return models.VideoParams{
		Setting:         videoSettings[0],
		PresenterGender: "Female",
		PresenterAge:    videoAges[0],
		PresenterStyle:  videoStyles[1],
		Script:          "Welcome to Chalice & Cru. Today we're exploring a magnificent 2015 Bordeaux.",
		Refinements:     models.NewRefinementSet(),
		AspectRatio:     models.AspectLandscape,
		Resolution:      models.Resolution720p,
	}
}

// GetVideoOptions returns the choice catalogs for the video studio form
func GetVideoOptions() models.VideoOptions {
	return models.VideoOptions{
		Settings:     append([]string(nil), videoSettings...),
		Genders:      append([]string(nil), videoGenders...),
		Ages:         append([]string(nil), videoAges...),
		Styles:       append([]string(nil), videoStyles...),
		Refinements:  append([]models.RefinementOption(nil), videoRefinements...),
		AspectRatios: []string{models.AspectLandscape, models.AspectPortrait},
		Resolutions:  []string{models.Resolution720p, models.Resolution1080p},
		Defaults:     DefaultVideoParams(),
	}
}

// ValidateVideoParams checks the enumerated fields and the reference image
func ValidateVideoParams(params models.VideoParams) error {
	switch params.AspectRatio {
	case models.AspectLandscape, models.AspectPortrait:
	default:
		return fmt.Errorf("aspect_ratio must be %s or %s", models.AspectLandscape, models.AspectPortrait)
	}

	switch params.Resolution {
	case models.Resolution720p, models.Resolution1080p:
	default:
		return fmt.Errorf("resolution must be %s or %s", models.Resolution720p, models.Resolution1080p)
	}

	if _, _, err := DecodeReferenceImage(params.ProductImage); err != nil {
		return err
	}
	return nil
}

// DecodeReferenceImage splits a data URL into raw bytes and a mime type.
// An empty input means no image. A bare base64 payload is accepted too.
func DecodeReferenceImage(dataURL string) ([]byte, string, error) {
	if dataURL == "" {
		return nil, "", nil
	}

	mimeType := "image/png"
	payload := dataURL
	if header, body, ok := strings.Cut(dataURL, ","); ok {
		payload = body
		if mt, ok := strings.CutPrefix(header, "data:"); ok {
			mt, _, _ = strings.Cut(mt, ";")
			if mt != "" {
				mimeType = mt
			}
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid product_image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", nil
	}
	return data, mimeType, nil
}

// GenerateVideo submits params, polls the operation until done and fetches
// the result into the job directory. onStatus receives cosmetic progress
// messages. Returns the local path of the asset.
func (vs *VideoService) GenerateVideo(ctx context.Context, jobID string, params models.VideoParams, onStatus func(string)) (string, error) {
	imageBytes, mimeType, err := DecodeReferenceImage(params.ProductImage)
	if err != nil {
		return "", err
	}

	onStatus(InitialVideoStatus)

	op, err := vs.generator.SubmitVideo(ctx, models.VideoRequest{
		Model:       vs.model,
		Prompt:      BuildVideoPrompt(params),
		ImageBytes:  imageBytes,
		MIMEType:    mimeType,
		Resolution:  params.Resolution,
		AspectRatio: params.AspectRatio,
	})
	if err != nil {
		return "", fmt.Errorf("failed to submit video: %w", err)
	}
	log.Printf("[Job %s] Submitted video operation %s (%d refinements)", jobID, op.Name, params.Refinements.Len())

	msgIndex := 0
	for !op.Done {
		onStatus(pollMessages[msgIndex%len(pollMessages)])
		msgIndex++

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(vs.pollInterval):
		}

		op, err = vs.generator.PollVideo(ctx, op)
		metrics.VideoPolls.Inc()
		if err != nil {
			return "", fmt.Errorf("failed to poll video operation: %w", err)
		}
	}

	if op.ResultURI == "" {
		return "", models.ErrNoResultLocator
	}

	jobDir, err := utils.CreateTempDir(vs.tempDir, jobID)
	if err != nil {
		return "", err
	}
	videoPath := filepath.Join(jobDir, "output", "video.mp4")

	if err := vs.generator.FetchVideo(ctx, op.ResultURI, videoPath); err != nil {
		return "", fmt.Errorf("failed to fetch video: %w", err)
	}

	log.Printf("[Job %s] Video saved after %d polls", jobID, msgIndex)
	return videoPath, nil
}
