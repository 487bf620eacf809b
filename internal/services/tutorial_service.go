package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"drawing-tutor-backend/config"
	"drawing-tutor-backend/internal/database"
	"drawing-tutor-backend/internal/models"
	"drawing-tutor-backend/pkg/logger"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TutorialCacheKeyPrefix = "tutorial:id:"
	TutorialCacheDuration  = 24 * time.Hour
)

// ModelClient is the generative-model surface the orchestrator depends on.
// GeminiClient is the production implementation.
type ModelClient interface {
	ExtractSubject(ctx context.Context, imageBytes []byte, apiKeyOverride string) (string, error)
	GenerateTutorialImage(ctx context.Context, prompt string, gridBytes []byte, model, apiKeyOverride string) ([]byte, string, error)
}

// GenerateParams carries one validated generation request into the service.
// ImageBytes is the already-decoded upload; the API layer owns base64 and
// size validation.
type GenerateParams struct {
	InputType  models.InputType
	Topic      string
	ImageBytes []byte
	APIKey     string
	Model      string
}

// TutorialResult is what a generate or get call hands back to the API layer.
type TutorialResult struct {
	TutorialID       string        `json:"tutorial_id"`
	Subject          string        `json:"subject"`
	TutorialImageURL string        `json:"tutorial_image_url"`
	Steps            []models.Step `json:"steps"`
	CreatedAt        time.Time     `json:"created_at"`
}

// TutorialListEntry is one row of the paginated history.
type TutorialListEntry struct {
	TutorialID   string    `json:"tutorial_id"`
	Subject      string    `json:"subject"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type TutorialService struct {
	Store *database.Store
	Model ModelClient
	Cfg   *config.Config
}

func NewTutorialService(store *database.Store, model ModelClient, cfg *config.Config) *TutorialService {
	return &TutorialService{
		Store: store,
		Model: model,
		Cfg:   cfg,
	}
}

// Generate runs the full pipeline: resolve the subject, build the prompt,
// generate the four-panel image, persist the record. Persistence is
// best-effort; with the store degraded the tutorial is still generated and
// returned, it just never shows up in history.
func (s *TutorialService) Generate(ctx context.Context, params GenerateParams) (*TutorialResult, error) {
	if err := os.MkdirAll(s.Cfg.UploadDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.Cfg.TutorialDir, 0o755); err != nil {
		return nil, err
	}

	var subject string
	var originalImageURL *string

	if params.InputType == models.InputTypeImage {
		url, err := s.saveOriginalImage(params.ImageBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to save original image: %w", err)
		}
		originalImageURL = &url

		subject, err = s.Model.ExtractSubject(ctx, params.ImageBytes, params.APIKey)
		if err != nil {
			return nil, err
		}
	} else {
		subject = params.Topic
	}

	prompt := BuildTutorialPrompt(subject, params.InputType)

	gridBytes, err := os.ReadFile(s.Cfg.GridTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid template: %w", err)
	}

	imageBytes, filename, err := s.Model.GenerateTutorialImage(ctx, prompt, gridBytes, params.Model, params.APIKey)
	if err != nil {
		return nil, err
	}

	tutorialImageURL, err := s.saveTutorialImage(imageBytes, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save tutorial image: %w", err)
	}

	steps := StepDescriptions()
	now := time.Now().UTC()

	tutorial := models.Tutorial{
		ID:               uuid.New().String(),
		UserID:           nil, // reserved for future multi-user support
		InputType:        params.InputType,
		Subject:          subject,
		OriginalImageURL: originalImageURL,
		TutorialImageURL: tutorialImageURL,
		Prompt:           prompt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := tutorial.SetSteps(steps); err != nil {
		return nil, err
	}

	if s.Store.Available() {
		if err := s.Store.Insert(&tutorial); err != nil {
			logger.Log.Warn("Failed to persist tutorial", zap.String("id", tutorial.ID), zap.Error(err))
		}
	} else {
		logger.Log.Warn("Store not available, tutorial will not be saved to history",
			zap.String("id", tutorial.ID))
	}

	return &TutorialResult{
		TutorialID:       tutorial.ID,
		Subject:          subject,
		TutorialImageURL: tutorialImageURL,
		Steps:            steps,
		CreatedAt:        now,
	}, nil
}

// Get returns the tutorial with the given id, (nil, nil) when it does not
// exist or the store is degraded. Results are cached: records are immutable
// so cached entries never need invalidation.
func (s *TutorialService) Get(ctx context.Context, id string) (*TutorialResult, error) {
	cacheKey := TutorialCacheKeyPrefix + id

	if database.RedisClient != nil {
		if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil {
			var result TutorialResult
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return &result, nil
			}
		}
	}

	if !s.Store.Available() {
		logger.Log.Warn("Store not available, cannot retrieve tutorial", zap.String("id", id))
		return nil, nil
	}

	tutorial, err := s.Store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if tutorial == nil {
		return nil, nil
	}

	steps, err := tutorial.GetSteps()
	if err != nil {
		return nil, err
	}

	result := &TutorialResult{
		TutorialID:       tutorial.ID,
		Subject:          tutorial.Subject,
		TutorialImageURL: tutorial.TutorialImageURL,
		Steps:            steps,
		CreatedAt:        tutorial.CreatedAt,
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(result); err == nil {
			database.RedisClient.Set(ctx, cacheKey, data, TutorialCacheDuration)
		}
	}

	return result, nil
}

// List returns one page of history, newest first. Pages are 1-based. With
// the store degraded the result is an empty page with total and pages zero.
func (s *TutorialService) List(ctx context.Context, page, limit int) ([]TutorialListEntry, int64, int, error) {
	if !s.Store.Available() {
		logger.Log.Warn("Store not available, returning empty tutorial list")
		return []TutorialListEntry{}, 0, 0, nil
	}

	total, err := s.Store.Count()
	if err != nil {
		return nil, 0, 0, err
	}

	skip := (page - 1) * limit
	tutorials, err := s.Store.FindPage(skip, limit)
	if err != nil {
		return nil, 0, 0, err
	}

	entries := make([]TutorialListEntry, 0, len(tutorials))
	for _, t := range tutorials {
		entries = append(entries, TutorialListEntry{
			TutorialID:   t.ID,
			Subject:      t.Subject,
			ThumbnailURL: t.TutorialImageURL, // full image doubles as thumbnail
			CreatedAt:    t.CreatedAt,
		})
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return entries, total, pages, nil
}

// saveOriginalImage decodes the upload and re-encodes it as PNG under the
// upload directory.
func (s *TutorialService) saveOriginalImage(imageBytes []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("original_%s.png", uuidHex())
	path := filepath.Join(s.Cfg.UploadDir, filename)

	if err := imaging.Save(img, path); err != nil {
		return "", err
	}

	return "/static/uploads/" + filename, nil
}

// saveTutorialImage writes the generated bytes under the tutorial directory.
func (s *TutorialService) saveTutorialImage(imageBytes []byte, filename string) (string, error) {
	path := filepath.Join(s.Cfg.TutorialDir, filename)

	if err := os.WriteFile(path, imageBytes, 0o644); err != nil {
		return "", err
	}

	return "/static/tutorials/" + filename, nil
}
