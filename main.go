package main

import (
	"context"
	"fmt"
	"log"
	"strategist/config"
	"strategist/handlers"
	"strategist/services"
	"strategist/sse"
	"strategist/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Configuration loaded: %s", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := sse.NewHub()
	go hub.Run(ctx)

	signer, err := utils.NewSigner(cfg.AssetSigningSecret, cfg.AssetLinkTTL)
	if err != nil {
		log.Fatalf("Failed to create signer: %v", err)
	}

	// Collaborators
	creds := utils.NewCredentialStore(cfg.APIKey)
	gemini := services.NewGeminiClient(creds)

	strategyService := services.NewStrategyService(cfg, gemini, hub)
	videoService := services.NewVideoService(cfg, gemini)
	socialService := services.NewSocialService(cfg, signer)

	router := handlers.NewRouter(cfg, handlers.Handlers{
		Strategy:    handlers.NewStrategyHandler(strategyService, hub),
		Video:       handlers.NewVideoHandler(cfg, videoService, creds, signer),
		Social:      handlers.NewSocialHandler(socialService),
		Credentials: handlers.NewCredentialHandler(creds),
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
