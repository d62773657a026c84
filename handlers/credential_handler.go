package handlers

import (
	"net/http"
	"strategist/models"
	"strategist/utils"
	"strings"

	"github.com/gin-gonic/gin"
)

// CredentialHandler lets the UI replace the API credential
type CredentialHandler struct {
	creds *utils.CredentialStore
}

func NewCredentialHandler(creds *utils.CredentialStore) *CredentialHandler {
	return &CredentialHandler{creds: creds}
}

// Get handles GET /api/credentials
func (h *CredentialHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.creds.Status())
}

// Put handles PUT /api/credentials
func (h *CredentialHandler) Put(c *gin.Context) {
	var req models.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}

	h.creds.Set(req.APIKey)
	c.JSON(http.StatusOK, h.creds.Status())
}
