package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port           string
	TempDir        string
	AllowedOrigins []string

	// Credential shared by the text and video collaborators. May be empty
	// at startup and entered later through the credentials endpoint.
	APIKey string

	// Text generation
	TextModel       string
	TextTemperature float64

	// Video generation
	VideoModel         string
	VideoPollInterval  time.Duration
	VideoCleanupDelay  time.Duration
	AssetSigningSecret string
	AssetLinkTTL       time.Duration

	// Social publishing
	MetaClientID       string
	MetaClientSecret   string
	MetaRedirectURL    string
	SocialConnectDelay time.Duration
	SocialPublishDelay time.Duration
	SocialResetDelay   time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		TempDir:        getEnv("TEMP_DIR", "./temp"),
		AllowedOrigins: parseList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),

		APIKey: getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),

		TextModel:       getEnv("TEXT_MODEL", "gemini-3-pro-preview"),
		TextTemperature: getEnvAsFloat("TEXT_TEMPERATURE", 0.7),

		VideoModel:         getEnv("VIDEO_MODEL", "veo-3.1-fast-generate-preview"),
		VideoPollInterval:  time.Duration(getEnvAsInt("VIDEO_POLL_INTERVAL_SECONDS", 10)) * time.Second,
		VideoCleanupDelay:  time.Duration(getEnvAsInt("VIDEO_CLEANUP_MINUTES", 60)) * time.Minute,
		AssetSigningSecret: getEnv("ASSET_SIGNING_SECRET", ""),
		AssetLinkTTL:       time.Duration(getEnvAsInt("ASSET_LINK_TTL_MINUTES", 60)) * time.Minute,

		MetaClientID:       getEnv("META_CLIENT_ID", ""),
		MetaClientSecret:   getEnv("META_CLIENT_SECRET", ""),
		MetaRedirectURL:    getEnv("META_REDIRECT_URL", ""),
		SocialConnectDelay: time.Duration(getEnvAsInt("SOCIAL_CONNECT_DELAY_MS", 2000)) * time.Millisecond,
		SocialPublishDelay: time.Duration(getEnvAsInt("SOCIAL_PUBLISH_DELAY_MS", 3000)) * time.Millisecond,
		SocialResetDelay:   time.Duration(getEnvAsInt("SOCIAL_RESET_DELAY_MS", 2000)) * time.Millisecond,
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if configuration is valid.
// A missing API key is not an error: it is reported per generation attempt.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.TextTemperature < 0 || c.TextTemperature > 2 {
		return errors.New("TEXT_TEMPERATURE must be between 0 and 2")
	}
	if c.VideoPollInterval <= 0 {
		return errors.New("VIDEO_POLL_INTERVAL_SECONDS must be positive")
	}
	if c.VideoCleanupDelay <= 0 {
		return errors.New("VIDEO_CLEANUP_MINUTES must be positive")
	}
	if c.AssetLinkTTL <= 0 {
		return errors.New("ASSET_LINK_TTL_MINUTES must be positive")
	}
	if c.SocialConnectDelay <= 0 || c.SocialPublishDelay <= 0 || c.SocialResetDelay <= 0 {
		return errors.New("social delays must be positive")
	}
	return nil
}

// SocialOAuthEnabled reports whether a real OAuth app is configured
func (c *Config) SocialOAuthEnabled() bool {
	return c.MetaClientID != "" && c.MetaClientSecret != "" && c.MetaRedirectURL != ""
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, TextModel: %s, VideoModel: %s, APIKey set: %t, Social OAuth: %t}",
		c.Port, c.TextModel, c.VideoModel, c.APIKey != "", c.SocialOAuthEnabled())
}
