package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type InputType string

const (
	InputTypeImage InputType = "image"
	InputTypeTopic InputType = "topic"
)

// Step is one of the four fixed tutorial stages.
type Step struct {
	StepNumber  int    `json:"step_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Tutorial is the persisted record of one generated drawing tutorial.
// Records are insert-only: there is no update or delete path.
type Tutorial struct {
	ID               string         `gorm:"primarykey" json:"id"`
	UserID           *string        `gorm:"index" json:"user_id"`
	InputType        InputType      `gorm:"not null" json:"input_type"`
	Subject          string         `gorm:"not null" json:"subject"`
	OriginalImageURL *string        `json:"original_image_url"`
	TutorialImageURL string         `gorm:"not null" json:"tutorial_image_url"`
	Prompt           string         `json:"prompt"`
	Steps            datatypes.JSON `gorm:"not null" json:"steps"`
	CreatedAt        time.Time      `gorm:"index:idx_tutorials_created_at,sort:desc" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// SetSteps serializes the step list into the jsonb column.
func (t *Tutorial) SetSteps(steps []Step) error {
	data, err := json.Marshal(steps)
	if err != nil {
		return err
	}
	t.Steps = datatypes.JSON(data)
	return nil
}

// GetSteps deserializes the step list from the jsonb column.
func (t *Tutorial) GetSteps() ([]Step, error) {
	var steps []Step
	if err := json.Unmarshal(t.Steps, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}
