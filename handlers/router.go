package handlers

import (
	"net/http"
	"strategist/config"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the route handlers mounted by NewRouter
type Handlers struct {
	Strategy    *StrategyHandler
	Video       *VideoHandler
	Social      *SocialHandler
	Credentials *CredentialHandler
}

// NewRouter builds the gin engine with CORS, ops endpoints and API routes
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.Default()

	// Setup CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/credentials", h.Credentials.Get)
		api.PUT("/credentials", h.Credentials.Put)

		strategy := api.Group("/strategy")
		strategy.GET("", h.Strategy.Get)
		strategy.GET("/defaults", h.Strategy.Defaults)
		strategy.POST("/generate", h.Strategy.Generate)
		strategy.GET("/raw", h.Strategy.Raw)
		strategy.GET("/events", h.Strategy.Events)
		strategy.POST("/render", h.Strategy.Render)

		video := api.Group("/video")
		video.GET("/options", h.Video.Options)
		video.POST("/refinements/toggle", h.Video.ToggleRefinement)
		video.POST("/generate", h.Video.Generate)
		video.GET("/status/:job_id", h.Video.GetStatus)
		video.GET("/download/:job_id", h.Video.Download)

		social := api.Group("/social")
		social.GET("/template", h.Social.GetTemplate)
		social.PUT("/template", h.Social.UpdateTemplate)
		social.POST("/template/reset", h.Social.ResetTemplate)
		social.GET("/colors", h.Social.Colors)
		social.GET("/status", h.Social.Status)
		social.POST("/connect", h.Social.Connect)
		social.GET("/callback", h.Social.Callback)
		social.POST("/disconnect", h.Social.Disconnect)
		social.POST("/publish", h.Social.Publish)
	}

	return router
}
