package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"drawing-tutor-backend/internal/utils"
	"drawing-tutor-backend/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// VisionModel analyzes uploaded photos to name the drawing subject.
	VisionModel = "gemini-2.0-flash-exp"
	// DefaultImageModel produces the four-panel tutorial composite.
	DefaultImageModel = "gemini-2.5-flash-image"
)

var (
	// ErrMissingAPIKey means neither the request nor the process
	// configuration provided a Gemini API key.
	ErrMissingAPIKey = errors.New("no Gemini API key configured")
	// ErrExternalService wraps transport, auth and parse failures from
	// the Gemini API.
	ErrExternalService = errors.New("generative model call failed")
)

// GeminiClient talks to the Gemini REST API. The struct is read-only after
// construction; per-request API keys and model names are passed as call
// arguments so concurrent requests with different credentials stay isolated.
type GeminiClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		APIKey:     apiKey,
		BaseURL:    defaultGeminiBaseURL,
		HTTPClient: utils.NewHTTPClient(120 * time.Second),
	}
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClient) resolveKey(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if g.APIKey != "" {
		return g.APIKey, nil
	}
	return "", ErrMissingAPIKey
}

// generateContent performs one generateContent call against the given model.
func (g *GeminiClient) generateContent(ctx context.Context, model, apiKey string, parts []geminiPart) (*geminiGenerateResponse, error) {
	payload, err := json.Marshal(geminiGenerateRequest{
		Contents: []geminiContent{{Parts: parts}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Header keeps the key out of URLs and request logs
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: api returned status %d", ErrExternalService, resp.StatusCode)
	}

	var result geminiGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return &result, nil
}

// ExtractSubject asks the vision model to name the main subject of the
// uploaded photo as a short phrase. Model output is returned as-is apart
// from whitespace trimming.
func (g *GeminiClient) ExtractSubject(ctx context.Context, imageBytes []byte, apiKeyOverride string) (string, error) {
	apiKey, err := g.resolveKey(apiKeyOverride)
	if err != nil {
		return "", err
	}

	parts := []geminiPart{
		{Text: subjectExtractionPrompt},
		{InlineData: &geminiInlineData{
			MimeType: mimetype.Detect(imageBytes).String(),
			Data:     base64.StdEncoding.EncodeToString(imageBytes),
		}},
	}

	result, err := g.generateContent(ctx, VisionModel, apiKey, parts)
	if err != nil {
		return "", err
	}

	for _, candidate := range result.Candidates {
		for _, part := range candidate.Content.Parts {
			if subject := strings.TrimSpace(part.Text); subject != "" {
				logger.Log.Info("Extracted subject", zap.String("subject", subject))
				return subject, nil
			}
		}
	}

	return "", fmt.Errorf("%w: no subject in response", ErrExternalService)
}

// GenerateTutorialImage asks the image model to render the four-panel
// tutorial into the provided grid template. When the response carries no
// inline image the grid bytes are returned unchanged, so the caller always
// receives a usable image.
func (g *GeminiClient) GenerateTutorialImage(ctx context.Context, prompt string, gridBytes []byte, model, apiKeyOverride string) ([]byte, string, error) {
	apiKey, err := g.resolveKey(apiKeyOverride)
	if err != nil {
		return nil, "", err
	}

	if model == "" {
		model = DefaultImageModel
	}

	parts := []geminiPart{
		{Text: prompt},
		{InlineData: &geminiInlineData{
			MimeType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(gridBytes),
		}},
	}

	result, err := g.generateContent(ctx, model, apiKey, parts)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("tutorial_%s.png", uuidHex())

	for _, candidate := range result.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			imageBytes, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, "", fmt.Errorf("%w: %v", ErrExternalService, err)
			}
			logger.Log.Info("Generated tutorial image",
				zap.String("model", model),
				zap.Int("bytes", len(imageBytes)),
			)
			return imageBytes, filename, nil
		}
	}

	logger.Log.Warn("No image returned from Gemini, using grid template as fallback",
		zap.String("model", model))
	return gridBytes, filename, nil
}

func uuidHex() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
