package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:               "8080",
		TextTemperature:    0.7,
		VideoPollInterval:  10 * time.Second,
		VideoCleanupDelay:  time.Hour,
		AssetLinkTTL:       time.Hour,
		SocialConnectDelay: time.Second,
		SocialPublishDelay: time.Second,
		SocialResetDelay:   time.Second,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Valid without API key", func(c *Config) {}, false},
		{"Empty port", func(c *Config) { c.Port = "" }, true},
		{"Negative temperature", func(c *Config) { c.TextTemperature = -0.1 }, true},
		{"Temperature too high", func(c *Config) { c.TextTemperature = 2.5 }, true},
		{"Zero poll interval", func(c *Config) { c.VideoPollInterval = 0 }, true},
		{"Zero link TTL", func(c *Config) { c.AssetLinkTTL = 0 }, true},
		{"Zero publish delay", func(c *Config) { c.SocialPublishDelay = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "fallback-key")
	t.Setenv("VIDEO_POLL_INTERVAL_SECONDS", "")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "fallback-key", cfg.APIKey)
	assert.Equal(t, 10*time.Second, cfg.VideoPollInterval)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.InDelta(t, 0.7, cfg.TextTemperature, 1e-9)
}

func TestLoadConfig_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("VIDEO_POLL_INTERVAL_SECONDS", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.VideoPollInterval)
}

func TestString_RedactsKey(t *testing.T) {
	c := validConfig()
	c.APIKey = "super-secret"
	assert.NotContains(t, c.String(), "super-secret")
	assert.Contains(t, c.String(), "APIKey set: true")
}

func TestSocialOAuthEnabled(t *testing.T) {
	c := validConfig()
	assert.False(t, c.SocialOAuthEnabled())

	c.MetaClientID = "id"
	c.MetaClientSecret = "secret"
	c.MetaRedirectURL = "http://localhost:8080/api/social/callback"
	assert.True(t, c.SocialOAuthEnabled())
}
