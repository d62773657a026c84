package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strategist/config"
	"strategist/metrics"
	"strategist/models"
	"strategist/services"
	"strategist/utils"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Job states
const (
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// VideoHandler handles video generation requests
type VideoHandler struct {
	cfg           *config.Config
	videoService  *services.VideoService
	textProcessor *services.TextProcessor
	creds         *utils.CredentialStore
	signer        *utils.Signer

	// In-memory job tracking
	jobs    map[string]*models.VideoJob
	jobsMux sync.RWMutex
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(cfg *config.Config, videoService *services.VideoService, creds *utils.CredentialStore, signer *utils.Signer) *VideoHandler {
	return &VideoHandler{
		cfg:           cfg,
		videoService:  videoService,
		textProcessor: services.NewTextProcessor(),
		creds:         creds,
		signer:        signer,
		jobs:          make(map[string]*models.VideoJob),
	}
}

// Options handles GET /api/video/options
func (h *VideoHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, services.GetVideoOptions())
}

// ToggleRefinement handles POST /api/video/refinements/toggle
func (h *VideoHandler) ToggleRefinement(c *gin.Context) {
	var req models.ToggleRefinementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	selected := req.Refinements.Toggle(req.Value)
	c.JSON(http.StatusOK, models.ToggleRefinementResponse{
		Refinements: req.Refinements,
		Selected:    selected,
	})
}

// Generate handles POST /api/video/generate
func (h *VideoHandler) Generate(c *gin.Context) {
	// Fields missing from the body keep their defaults
	params := services.DefaultVideoParams()
	if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := services.ValidateVideoParams(params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.creds.Configured() {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":               models.ErrMissingCredential.Error(),
			"credential_required": true,
		})
		return
	}

	// Generate job ID
	jobID := uuid.New().String()
	scriptSeconds := h.textProcessor.EstimateSpeechDuration(params.Script)

	job := &models.VideoJob{
		JobID:         jobID,
		Status:        JobProcessing,
		Message:       services.InitialVideoStatus,
		ScriptSeconds: scriptSeconds,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	h.jobsMux.Lock()
	h.jobs[jobID] = job
	h.jobsMux.Unlock()

	// Start background processing
	go h.processVideoGeneration(jobID, params)

	c.JSON(http.StatusAccepted, models.GenerateVideoResponse{
		JobID:         jobID,
		Status:        JobProcessing,
		ScriptSeconds: scriptSeconds,
	})
}

// GetStatus handles GET /api/video/status/:job_id
func (h *VideoHandler) GetStatus(c *gin.Context) {
	jobID := c.Param("job_id")

	job, exists := h.getJob(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	elapsed := time.Since(job.CreatedAt)
	if job.Status != JobProcessing {
		elapsed = job.UpdatedAt.Sub(job.CreatedAt)
	}

	resp := models.VideoStatusResponse{
		Status:  job.Status,
		Message: job.Message,
		Elapsed: utils.FormatElapsed(elapsed),
	}

	if job.Status == JobCompleted && job.VideoPath != "" {
		token, err := h.signer.Sign(jobID, utils.AudienceVideoAsset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		videoURL := fmt.Sprintf("/api/video/download/%s?token=%s", jobID, url.QueryEscape(token))
		resp.VideoURL = &videoURL
	}

	if job.Error != nil {
		errMsg := job.Error.Error()
		resp.Error = &errMsg
		resp.CredentialRequired = models.IsCredentialError(job.Error)
	}

	c.JSON(http.StatusOK, resp)
}

// Download handles GET /api/video/download/:job_id
func (h *VideoHandler) Download(c *gin.Context) {
	jobID := c.Param("job_id")

	if err := h.signer.Verify(c.Query("token"), jobID, utils.AudienceVideoAsset); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired download link"})
		return
	}

	job, exists := h.getJob(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	if job.Status != JobCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job not completed yet"})
		return
	}

	if job.VideoPath == "" || !utils.FileExists(job.VideoPath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video file not found"})
		return
	}

	// Stream video file
	c.Header("Content-Type", "video/mp4")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=video_%s.mp4", jobID))
	c.File(job.VideoPath)

	// Schedule cleanup after download
	utils.ScheduleCleanup(h.cfg.TempDir, jobID, h.cfg.VideoCleanupDelay)
}

// getJob returns a copy of the job
func (h *VideoHandler) getJob(jobID string) (models.VideoJob, bool) {
	h.jobsMux.RLock()
	defer h.jobsMux.RUnlock()
	job, exists := h.jobs[jobID]
	if !exists {
		return models.VideoJob{}, false
	}
	return *job, true
}

// processVideoGeneration processes video generation in background
func (h *VideoHandler) processVideoGeneration(jobID string, params models.VideoParams) {
	// Helper function to update status
	updateStatus := func(message string) {
		h.jobsMux.Lock()
		if job, exists := h.jobs[jobID]; exists {
			job.Message = message
			job.UpdatedAt = time.Now()
		}
		h.jobsMux.Unlock()
		log.Printf("[Job %s] %s", jobID, message)
	}

	videoPath, err := h.videoService.GenerateVideo(context.Background(), jobID, params, updateStatus)
	if err != nil {
		h.markJobFailed(jobID, err)
		return
	}

	h.jobsMux.Lock()
	if job, exists := h.jobs[jobID]; exists {
		job.Status = JobCompleted
		job.Message = "Complete"
		job.VideoPath = videoPath
		job.UpdatedAt = time.Now()
	}
	h.jobsMux.Unlock()

	metrics.VideoJobs.WithLabelValues(metrics.OutcomeCompleted).Inc()
	log.Printf("[Job %s] Video generation completed successfully", jobID)
}

// markJobFailed marks a job as failed
func (h *VideoHandler) markJobFailed(jobID string, err error) {
	log.Printf("[Job %s] FAILED: %v", jobID, err)
	h.jobsMux.Lock()
	if job, exists := h.jobs[jobID]; exists {
		job.Status = JobFailed
		job.Message = "Generation Error"
		job.Error = err
		job.UpdatedAt = time.Now()
	}
	h.jobsMux.Unlock()
	metrics.VideoJobs.WithLabelValues(metrics.OutcomeFailed).Inc()
}
