package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strategist/config"
	"strategist/metrics"
	"strategist/models"
	"strategist/utils"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var colorOptions = []models.ColorOption{
	{Name: "Bordeaux", Hex: "#881337"},
	{Name: "Crimson", Hex: "#991b1b"},
	{Name: "Burnt Orange", Hex: "#ea580c"},
	{Name: "Amber", Hex: "#d97706"},
	{Name: "Olive", Hex: "#65a30d"},
	{Name: "Emerald", Hex: "#059669"},
	{Name: "Teal", Hex: "#0d9488"},
	{Name: "Cyan", Hex: "#0891b2"},
	{Name: "Ocean", Hex: "#0c4a6e"},
	{Name: "Indigo", Hex: "#4f46e5"},
	{Name: "Violet", Hex: "#7c3aed"},
	{Name: "Fuchsia", Hex: "#c026d3"},
	{Name: "Slate", Hex: "#475569"},
	{Name: "Black", Hex: "#171717"},
}

// DefaultTemplate returns the template the social studio starts with
func DefaultTemplate() models.TemplateData {
	return models.TemplateData{
		WineName:    "Château Margaux 2015",
		Tagline:     "Experience the elegance of Bordeaux.",
		BadgeText:   "New Arrival",
		RRPPrice:    "$1,500",
		OfferPrice:  "$1,250",
		Quote:       "An absolute masterpiece of balance and density. The finish goes on for minutes.",
		QuoteAuthor: "James Suckling",
		Score:       "99",
		Award:       "Double Gold",
		AccentColor: "#881337",
		Hashtags:    "#ChaliceAndCru #FineWine #Bordeaux #SommelierSelect",
	}
}

// ColorOptions returns the preset accent palette
func ColorOptions() []models.ColorOption {
	return append([]models.ColorOption(nil), colorOptions...)
}

// IsCustomColor reports whether hex is outside the preset palette
func IsCustomColor(hex string) bool {
	for _, c := range colorOptions {
		if strings.EqualFold(c.Hex, hex) {
			return false
		}
	}
	return true
}

// AwardIconCount returns how many medal icons an award label shows
func AwardIconCount(award string) int {
	lower := strings.ToLower(award)
	switch {
	case strings.Contains(lower, "triple") || strings.Contains(lower, "3x"):
		return 3
	case strings.Contains(lower, "double") || strings.Contains(lower, "2x"):
		return 2
	default:
		return 1
	}
}

// BuildCaption drafts the post caption from the template
func BuildCaption(t models.TemplateData) string {
	return fmt.Sprintf("%s\n\nShop our special offer: %s (RRP %s)\n\n%s", t.Tagline, t.OfferPrice, t.RRPPrice, t.Hashtags)
}

// ConnectResult tells the caller how the connect flow continues.
// AuthURL is set when the user must authorize in a browser window.
type ConnectResult struct {
	AuthURL   string `json:"auth_url,omitempty"`
	Simulated bool   `json:"simulated"`
}

// SocialService holds the social template and the publishing state
type SocialService struct {
	signer       *utils.Signer
	oauth        *oauth2.Config
	connectDelay time.Duration
	publishDelay time.Duration
	resetDelay   time.Duration

	mu         sync.RWMutex
	template   models.TemplateData
	connected  bool
	connecting bool
	stateNonce string
	token      *oauth2.Token
	postStatus models.PostStatus
}

// NewSocialService creates a new social service. Without a configured OAuth
// app the connect flow is simulated.
func NewSocialService(cfg *config.Config, signer *utils.Signer) *SocialService {
	s := &SocialService{
		signer:       signer,
		connectDelay: cfg.SocialConnectDelay,
		publishDelay: cfg.SocialPublishDelay,
		resetDelay:   cfg.SocialResetDelay,
		template:     DefaultTemplate(),
		postStatus:   models.PostIdle,
	}
	if cfg.SocialOAuthEnabled() {
		s.oauth = &oauth2.Config{
			ClientID:     cfg.MetaClientID,
			ClientSecret: cfg.MetaClientSecret,
			RedirectURL:  cfg.MetaRedirectURL,
			Scopes: []string{
				"pages_show_list",
				"pages_manage_posts",
				"instagram_content_publish",
			},
			Endpoint: facebook.Endpoint,
		}
	}
	return s
}

// Template returns the current template
func (s *SocialService) Template() models.TemplateData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// UpdateTemplate replaces the template
func (s *SocialService) UpdateTemplate(t models.TemplateData) error {
	if !hexColorRe.MatchString(t.AccentColor) {
		return fmt.Errorf("accent_color must be a #rrggbb hex color, got %q", t.AccentColor)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = t
	return nil
}

// ResetTemplate restores the default template
func (s *SocialService) ResetTemplate() models.TemplateData {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = DefaultTemplate()
	return s.template
}

// Status reports connection and publishing state with derived template fields
func (s *SocialService) Status() models.SocialStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.SocialStatus{
		Connected:      s.isConnected(),
		PostStatus:     s.postStatus,
		IsCustomColor:  IsCustomColor(s.template.AccentColor),
		AwardIconCount: AwardIconCount(s.template.Award),
		Caption:        BuildCaption(s.template),
	}
}

// Connect starts the account connection
func (s *SocialService) Connect() (ConnectResult, error) {
	if s.oauth == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.connected && !s.connecting {
			s.connecting = true
			time.AfterFunc(s.connectDelay, s.finishSimulatedConnect)
		}
		return ConnectResult{Simulated: true}, nil
	}

	nonce := uuid.New().String()
	state, err := s.signer.Sign(nonce, utils.AudienceSocialState)
	if err != nil {
		return ConnectResult{}, err
	}

	s.mu.Lock()
	s.stateNonce = nonce
	s.mu.Unlock()

	return ConnectResult{AuthURL: s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)}, nil
}

// CompleteConnect finishes the OAuth flow started by Connect
func (s *SocialService) CompleteConnect(ctx context.Context, code, state string) error {
	if s.oauth == nil {
		return fmt.Errorf("social OAuth is not configured")
	}

	s.mu.RLock()
	nonce := s.stateNonce
	s.mu.RUnlock()

	if nonce == "" {
		return models.ErrInvalidState
	}
	if err := s.signer.Verify(state, nonce, utils.AudienceSocialState); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidState, err)
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.stateNonce = ""
	s.mu.Unlock()

	s.markConnected()
	return nil
}

// Disconnect forgets the connected account and any pending OAuth state
func (s *SocialService) Disconnect() models.SocialStatus {
	s.mu.Lock()
	s.connected = false
	s.connecting = false
	s.stateNonce = ""
	s.token = nil
	s.mu.Unlock()
	log.Printf("[Social] Account disconnected")
	return s.Status()
}

// isConnected requires a live token on the OAuth path. Callers hold mu.
func (s *SocialService) isConnected() bool {
	if !s.connected {
		return false
	}
	return s.oauth == nil || s.token.Valid()
}

func (s *SocialService) markConnected() {
	s.mu.Lock()
	s.connected = true
	s.connecting = false
	s.mu.Unlock()
	log.Printf("[Social] Account connected")
}

// finishSimulatedConnect is dropped when Disconnect ran during the delay
func (s *SocialService) finishSimulatedConnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connecting {
		return
	}
	s.connected = true
	s.connecting = false
	log.Printf("[Social] Account connected")
}

// Publish posts the current template. The post moves idle → posting →
// success → idle on the configured delays.
func (s *SocialService) Publish() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isConnected() {
		return models.ErrNotConnected
	}
	if s.postStatus != models.PostIdle {
		return models.ErrPublishInProgress
	}

	s.postStatus = models.PostPosting
	log.Printf("[Social] Publishing %q", s.template.WineName)

	time.AfterFunc(s.publishDelay, func() {
		s.setPostStatus(models.PostSuccess)
		metrics.SocialPublishes.Inc()
		time.AfterFunc(s.resetDelay, func() {
			s.setPostStatus(models.PostIdle)
		})
	})
	return nil
}

func (s *SocialService) setPostStatus(status models.PostStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postStatus = status
}
