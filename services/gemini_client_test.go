package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strategist/models"
	"strategist/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		code int
		want models.ErrorKind
	}{
		{http.StatusUnauthorized, models.KindCredential},
		{http.StatusForbidden, models.KindCredential},
		{http.StatusNotFound, models.KindCredential},
		{http.StatusTooManyRequests, models.KindQuota},
		{http.StatusInternalServerError, models.KindUpstream},
		{0, models.KindUpstream},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, kindForStatus(tt.code))
		})
	}
}

func TestClassifyError(t *testing.T) {
	t.Run("API not found marks credential rejected", func(t *testing.T) {
		creds := utils.NewCredentialStore("key")
		g := NewGeminiClient(creds)

		err := g.classifyError(genai.APIError{Code: 404, Message: "Requested entity was not found."})
		assert.True(t, models.IsCredentialError(err))
		assert.True(t, creds.Status().Rejected)
	})

	t.Run("quota is not a credential error", func(t *testing.T) {
		creds := utils.NewCredentialStore("key")
		g := NewGeminiClient(creds)

		err := g.classifyError(fmt.Errorf("stream: %w", genai.APIError{Code: 429}))
		var genErr *models.GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, models.KindQuota, genErr.Kind)
		assert.False(t, creds.Status().Rejected)
	})

	t.Run("transport failure is upstream", func(t *testing.T) {
		g := NewGeminiClient(utils.NewCredentialStore("key"))

		err := g.classifyError(errors.New("connection reset"))
		var genErr *models.GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, models.KindUpstream, genErr.Kind)
	})

	t.Run("already classified passes through", func(t *testing.T) {
		g := NewGeminiClient(utils.NewCredentialStore("key"))
		in := models.NewGenerationError(models.KindQuota, errors.New("slow down"))

		assert.Same(t, in, g.classifyError(in))
	})
}

func TestGeminiClient_MissingCredential(t *testing.T) {
	g := NewGeminiClient(utils.NewCredentialStore(""))

	err := g.StreamText(context.Background(), models.TextRequest{Prompt: "hi"}, func(string) {
		t.Fatal("sink must not be called")
	})
	assert.ErrorIs(t, err, models.ErrMissingCredential)
	assert.True(t, models.IsCredentialError(err))

	_, err = g.SubmitVideo(context.Background(), models.VideoRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, models.ErrMissingCredential)
}

func TestGeminiClient_FetchVideoAppendsKey(t *testing.T) {
	var gotKey, gotAlt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotAlt = r.URL.Query().Get("alt")
		w.Write([]byte("video-bytes"))
	}))
	defer server.Close()

	g := NewGeminiClient(utils.NewCredentialStore("secret-key"))
	dest := filepath.Join(t.TempDir(), "output", "video.mp4")

	err := g.FetchVideo(context.Background(), server.URL+"/files/abc:download?alt=media", dest)
	require.NoError(t, err)

	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "media", gotAlt)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))
}

func TestGeminiClient_FetchVideoForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	creds := utils.NewCredentialStore("expired")
	g := NewGeminiClient(creds)

	err := g.FetchVideo(context.Background(), server.URL+"/v", filepath.Join(t.TempDir(), "v.mp4"))
	require.Error(t, err)
	assert.True(t, models.IsCredentialError(err))
	assert.True(t, creds.Status().Rejected)
}

func TestToVideoOperation(t *testing.T) {
	op, err := toVideoOperation(&genai.GenerateVideosOperation{
		Name: "operations/1",
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{{Video: &genai.Video{URI: "https://example.com/v"}}},
		},
	})
	require.NoError(t, err)
	assert.True(t, op.Done)
	assert.Equal(t, "https://example.com/v", op.ResultURI)

	pending, err := toVideoOperation(&genai.GenerateVideosOperation{Name: "operations/2"})
	require.NoError(t, err)
	assert.False(t, pending.Done)
	assert.Empty(t, pending.ResultURI)

	empty, err := toVideoOperation(&genai.GenerateVideosOperation{Name: "operations/3", Done: true})
	require.NoError(t, err)
	assert.Empty(t, empty.ResultURI)

	_, err = toVideoOperation(&genai.GenerateVideosOperation{Done: true, Error: map[string]any{"message": "blocked"}})
	assert.Error(t, err)
}
