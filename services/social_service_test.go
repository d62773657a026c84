package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strategist/config"
	"strategist/models"
	"strategist/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestSocialService(t *testing.T, cfg *config.Config) *SocialService {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.SocialConnectDelay = 5 * time.Millisecond
	cfg.SocialPublishDelay = 50 * time.Millisecond
	cfg.SocialResetDelay = 5 * time.Millisecond

	signer, err := utils.NewSigner("test-secret", time.Minute)
	require.NoError(t, err)
	return NewSocialService(cfg, signer)
}

func TestAwardIconCount(t *testing.T) {
	tests := []struct {
		award string
		want  int
	}{
		{"Double Gold", 2},
		{"2x Gold", 2},
		{"TRIPLE Platinum", 3},
		{"3x Winner", 3},
		{"Gold Medal", 1},
		{"", 1},
	}

	for _, tt := range tests {
		t.Run(tt.award, func(t *testing.T) {
			assert.Equal(t, tt.want, AwardIconCount(tt.award))
		})
	}
}

func TestIsCustomColor(t *testing.T) {
	assert.False(t, IsCustomColor("#881337"))
	assert.False(t, IsCustomColor("#C026D3"))
	assert.True(t, IsCustomColor("#123456"))
	assert.Len(t, ColorOptions(), 14)
}

func TestBuildCaption(t *testing.T) {
	caption := BuildCaption(DefaultTemplate())
	assert.Equal(t,
		"Experience the elegance of Bordeaux.\n\nShop our special offer: $1,250 (RRP $1,500)\n\n#ChaliceAndCru #FineWine #Bordeaux #SommelierSelect",
		caption)
}

func TestSocialService_Template(t *testing.T) {
	svc := newTestSocialService(t, nil)

	updated := DefaultTemplate()
	updated.WineName = "Pétrus 2010"
	updated.AccentColor = "#ABCDEF"
	updated.Award = "Triple Gold"
	require.NoError(t, svc.UpdateTemplate(updated))
	assert.Equal(t, "Pétrus 2010", svc.Template().WineName)

	status := svc.Status()
	assert.True(t, status.IsCustomColor)
	assert.Equal(t, 3, status.AwardIconCount)

	bad := updated
	bad.AccentColor = "red"
	assert.Error(t, svc.UpdateTemplate(bad))
	assert.Equal(t, "#ABCDEF", svc.Template().AccentColor)

	assert.Equal(t, DefaultTemplate(), svc.ResetTemplate())
	assert.Equal(t, DefaultTemplate(), svc.Template())
}

func TestSocialService_SimulatedPublishFlow(t *testing.T) {
	svc := newTestSocialService(t, nil)

	assert.ErrorIs(t, svc.Publish(), models.ErrNotConnected)

	result, err := svc.Connect()
	require.NoError(t, err)
	assert.True(t, result.Simulated)
	assert.Empty(t, result.AuthURL)

	require.Eventually(t, func() bool { return svc.Status().Connected }, time.Second, time.Millisecond)

	require.NoError(t, svc.Publish())
	assert.Equal(t, models.PostPosting, svc.Status().PostStatus)
	assert.ErrorIs(t, svc.Publish(), models.ErrPublishInProgress)

	require.Eventually(t, func() bool {
		return svc.Status().PostStatus == models.PostIdle
	}, time.Second, time.Millisecond)

	require.NoError(t, svc.Publish())
}

func TestSocialService_OAuthConnect(t *testing.T) {
	var gotCode string
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotCode = r.Form.Get("code")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"page-token","token_type":"bearer","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	svc := newTestSocialService(t, &config.Config{
		MetaClientID:     "client",
		MetaClientSecret: "secret",
		MetaRedirectURL:  "http://localhost:8080/api/social/callback",
	})
	svc.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:  tokenServer.URL + "/dialog/oauth",
		TokenURL: tokenServer.URL + "/oauth/access_token",
	}

	result, err := svc.Connect()
	require.NoError(t, err)
	assert.False(t, result.Simulated)

	authURL, err := url.Parse(result.AuthURL)
	require.NoError(t, err)
	state := authURL.Query().Get("state")
	require.NotEmpty(t, state)
	assert.Equal(t, "client", authURL.Query().Get("client_id"))

	err = svc.CompleteConnect(context.Background(), "code-1", "tampered")
	assert.ErrorIs(t, err, models.ErrInvalidState)
	assert.False(t, svc.Status().Connected)

	require.NoError(t, svc.CompleteConnect(context.Background(), "code-1", state))
	assert.Equal(t, "code-1", gotCode)
	assert.True(t, svc.Status().Connected)

	// state is single use
	err = svc.CompleteConnect(context.Background(), "code-2", state)
	assert.ErrorIs(t, err, models.ErrInvalidState)

	svc.mu.Lock()
	svc.token.Expiry = time.Now().Add(-time.Minute)
	svc.mu.Unlock()
	assert.False(t, svc.Status().Connected)
	assert.ErrorIs(t, svc.Publish(), models.ErrNotConnected)

	result, err = svc.Connect()
	require.NoError(t, err)
	svc.Disconnect()
	authURL, err = url.Parse(result.AuthURL)
	require.NoError(t, err)
	err = svc.CompleteConnect(context.Background(), "code-3", authURL.Query().Get("state"))
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestSocialService_Disconnect(t *testing.T) {
	svc := newTestSocialService(t, nil)

	_, err := svc.Connect()
	require.NoError(t, err)
	require.Eventually(t, func() bool { return svc.Status().Connected }, time.Second, time.Millisecond)

	assert.False(t, svc.Disconnect().Connected)
	assert.ErrorIs(t, svc.Publish(), models.ErrNotConnected)

	// a pending simulated connect is dropped
	svc.connectDelay = 20 * time.Millisecond
	_, err = svc.Connect()
	require.NoError(t, err)
	svc.Disconnect()
	time.Sleep(60 * time.Millisecond)
	assert.False(t, svc.Status().Connected)

	_, err = svc.Connect()
	require.NoError(t, err)
	require.Eventually(t, func() bool { return svc.Status().Connected }, time.Second, time.Millisecond)
}
