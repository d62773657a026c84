package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strategist/models"
	"strategist/utils"
	"time"

	"google.golang.org/genai"
)

// GeminiClient talks to the Gemini API for both text and video generation.
// A fresh SDK client is built from the credential store on every call, so a
// replaced key takes effect on the next request.
type GeminiClient struct {
	creds      *utils.CredentialStore
	httpClient *http.Client
}

// NewGeminiClient creates a new Gemini collaborator
func NewGeminiClient(creds *utils.CredentialStore) *GeminiClient {
	return &GeminiClient{
		creds:      creds,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (g *GeminiClient) newClient(ctx context.Context) (*genai.Client, error) {
	apiKey, ok := g.creds.Current()
	if !ok {
		return nil, models.NewGenerationError(models.KindCredential, models.ErrMissingCredential)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

// StreamText streams a text generation, calling sink once per received fragment
func (g *GeminiClient) StreamText(ctx context.Context, req models.TextRequest, sink func(string)) error {
	client, err := g.newClient(ctx)
	if err != nil {
		return err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
	}

	for resp, err := range client.Models.GenerateContentStream(ctx, req.Model, genai.Text(req.Prompt), config) {
		if err != nil {
			return g.classifyError(err)
		}
		sink(resp.Text())
	}
	return nil
}

// SubmitVideo starts an asynchronous video generation
func (g *GeminiClient) SubmitVideo(ctx context.Context, req models.VideoRequest) (*models.VideoOperation, error) {
	client, err := g.newClient(ctx)
	if err != nil {
		return nil, err
	}

	var image *genai.Image
	if len(req.ImageBytes) > 0 {
		image = &genai.Image{
			ImageBytes: req.ImageBytes,
			MIMEType:   req.MIMEType,
		}
	}

	op, err := client.Models.GenerateVideos(ctx, req.Model, req.Prompt, image, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     req.Resolution,
		AspectRatio:    req.AspectRatio,
	})
	if err != nil {
		return nil, g.classifyError(err)
	}
	return toVideoOperation(op)
}

// PollVideo refreshes an operation handle returned by SubmitVideo
func (g *GeminiClient) PollVideo(ctx context.Context, op *models.VideoOperation) (*models.VideoOperation, error) {
	handle, ok := op.Handle.(*genai.GenerateVideosOperation)
	if !ok || handle == nil {
		return nil, fmt.Errorf("operation %q has no genai handle", op.Name)
	}

	client, err := g.newClient(ctx)
	if err != nil {
		return nil, err
	}

	refreshed, err := client.Operations.GetVideosOperation(ctx, handle, nil)
	if err != nil {
		return nil, g.classifyError(err)
	}
	return toVideoOperation(refreshed)
}

// FetchVideo downloads the finished asset, appending the credential to the URI
func (g *GeminiClient) FetchVideo(ctx context.Context, uri, destPath string) error {
	apiKey, ok := g.creds.Current()
	if !ok {
		return models.NewGenerationError(models.KindCredential, models.ErrMissingCredential)
	}

	target, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("invalid video uri: %w", err)
	}
	query := target.Query()
	query.Set("key", apiKey)
	target.RawQuery = query.Encode()

	if err := utils.DownloadFile(ctx, g.httpClient, target.String(), destPath); err != nil {
		return g.classifyError(err)
	}
	return nil
}

func toVideoOperation(op *genai.GenerateVideosOperation) (*models.VideoOperation, error) {
	if op == nil {
		return nil, errors.New("empty video operation")
	}
	if op.Done && op.Error != nil {
		return nil, models.NewGenerationError(models.KindUpstream, fmt.Errorf("video operation failed: %v", op.Error))
	}

	result := &models.VideoOperation{
		Name:   op.Name,
		Done:   op.Done,
		Handle: op,
	}
	if op.Response != nil && len(op.Response.GeneratedVideos) > 0 {
		if video := op.Response.GeneratedVideos[0].Video; video != nil {
			result.ResultURI = video.URI
		}
	}
	return result, nil
}

// classifyError maps a collaborator failure to a typed GenerationError and
// records credential rejections
func (g *GeminiClient) classifyError(err error) error {
	var genErr *models.GenerationError
	if errors.As(err, &genErr) {
		return err
	}

	kind := kindForStatus(statusCode(err))
	if kind == models.KindCredential {
		g.creds.MarkRejected()
	}
	return models.NewGenerationError(kind, err)
}

func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code
	}
	var httpErr *utils.HTTPStatusError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// kindForStatus classifies an HTTP status. Not-found counts as a credential
// problem: the API reports it for keys without access to the model.
func kindForStatus(code int) models.ErrorKind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return models.KindCredential
	case http.StatusTooManyRequests:
		return models.KindQuota
	default:
		return models.KindUpstream
	}
}
