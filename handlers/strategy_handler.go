package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strategist/models"
	"strategist/services"
	"strategist/sse"

	"github.com/gin-gonic/gin"
)

// StrategyHandler serves the strategy engine
type StrategyHandler struct {
	strategy *services.StrategyService
	hub      *sse.Hub
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(strategy *services.StrategyService, hub *sse.Hub) *StrategyHandler {
	return &StrategyHandler{
		strategy: strategy,
		hub:      hub,
	}
}

// Defaults handles GET /api/strategy/defaults
func (h *StrategyHandler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, services.DefaultInputs())
}

// Generate handles POST /api/strategy/generate
func (h *StrategyHandler) Generate(c *gin.Context) {
	var inputs models.MarketingInputs
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sessionID, err := h.strategy.Start(c.Request.Context(), inputs)
	if errors.Is(err, models.ErrStreamInProgress) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  err.Error(),
			"status": models.StatusStreaming,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, models.GenerateStrategyResponse{
		SessionID: sessionID,
		Status:    models.StatusStreaming,
	})
}

// Get handles GET /api/strategy
func (h *StrategyHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.strategy.Snapshot())
}

// Raw handles GET /api/strategy/raw
func (h *StrategyHandler) Raw(c *gin.Context) {
	c.String(http.StatusOK, h.strategy.Content())
}

// Events handles GET /api/strategy/events
func (h *StrategyHandler) Events(c *gin.Context) {
	sse.Serve(c, h.hub, services.StrategyTopic, "snapshot", func() ([]byte, error) {
		return json.Marshal(h.strategy.Snapshot())
	})
}

// Render handles POST /api/strategy/render
func (h *StrategyHandler) Render(c *gin.Context) {
	var req models.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": services.RenderMarkdown(req.Text)})
}
