package handlers

import (
	"errors"
	"log"
	"net/http"
	"strategist/models"
	"strategist/services"

	"github.com/gin-gonic/gin"
)

// SocialHandler serves the social studio
type SocialHandler struct {
	social *services.SocialService
}

func NewSocialHandler(social *services.SocialService) *SocialHandler {
	return &SocialHandler{social: social}
}

// GetTemplate handles GET /api/social/template
func (h *SocialHandler) GetTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, h.social.Template())
}

// UpdateTemplate handles PUT /api/social/template
func (h *SocialHandler) UpdateTemplate(c *gin.Context) {
	var data models.TemplateData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.social.UpdateTemplate(data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.social.Template())
}

// ResetTemplate handles POST /api/social/template/reset
func (h *SocialHandler) ResetTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, h.social.ResetTemplate())
}

// Colors handles GET /api/social/colors
func (h *SocialHandler) Colors(c *gin.Context) {
	c.JSON(http.StatusOK, services.ColorOptions())
}

// Status handles GET /api/social/status
func (h *SocialHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.social.Status())
}

// Connect handles POST /api/social/connect
func (h *SocialHandler) Connect(c *gin.Context) {
	result, err := h.social.Connect()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Callback handles GET /api/social/callback
func (h *SocialHandler) Callback(c *gin.Context) {
	if errMsg := c.Query("error"); errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	err := h.social.CompleteConnect(c.Request.Context(), c.Query("code"), c.Query("state"))
	if errors.Is(err, models.ErrInvalidState) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("[Social] Connect failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.social.Status())
}

// Disconnect handles POST /api/social/disconnect
func (h *SocialHandler) Disconnect(c *gin.Context) {
	c.JSON(http.StatusOK, h.social.Disconnect())
}

// Publish handles POST /api/social/publish
func (h *SocialHandler) Publish(c *gin.Context) {
	err := h.social.Publish()
	if errors.Is(err, models.ErrNotConnected) || errors.Is(err, models.ErrPublishInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, h.social.Status())
}
