package tutorial

import (
	"time"

	"drawing-tutor-backend/internal/models"
)

type GenerateTutorialRequest struct {
	InputType models.InputType `json:"input_type" binding:"required,oneof=image topic"`
	Topic     string           `json:"topic"`
	Image     string           `json:"image"` // base64 encoded
	APIKey    string           `json:"api_key"`
	Model     string           `json:"model"`
}

type TutorialResponse struct {
	TutorialID       string        `json:"tutorial_id"`
	Subject          string        `json:"subject"`
	TutorialImageURL string        `json:"tutorial_image_url"`
	Steps            []models.Step `json:"steps"`
	CreatedAt        time.Time     `json:"created_at"`
}

type TutorialListItem struct {
	TutorialID   string    `json:"tutorial_id"`
	Subject      string    `json:"subject"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type TutorialListResponse struct {
	Tutorials []TutorialListItem `json:"tutorials"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Pages     int                `json:"pages"`
}

type UploadImageResponse struct {
	Image string `json:"image"` // base64 encoded
}
