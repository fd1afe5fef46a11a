package dto

import (
	"time"

	"github.com/geoexplorer/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateLevelRequest struct {
	Name              string  `json:"name" binding:"required,min=1,max=200"`
	Description       *string `json:"description"`
	OrderIndex        int     `json:"order_index" binding:"required,min=1"`
	UnlockRequirement int     `json:"unlock_requirement" binding:"min=0"`
}

type UpdateProgressRequest struct {
	Status               *string `json:"status" binding:"omitempty,oneof=locked active completed"`
	Score                *int    `json:"score" binding:"omitempty,min=0"`
	Stars                *int    `json:"stars" binding:"omitempty,min=0,max=3"`
	CompletionPercentage *int    `json:"completion_percentage" binding:"omitempty,min=0,max=100"`
}

// Empty reports whether the update carries no fields at all.
func (r *UpdateProgressRequest) Empty() bool {
	return r.Status == nil && r.Score == nil && r.Stars == nil && r.CompletionPercentage == nil
}

// LevelProgressResponse is a level joined with the user's progress on it.
// Levels the user never touched appear as locked defaults.
type LevelProgressResponse struct {
	ID                   *uuid.UUID `json:"id"`
	UserID               uuid.UUID  `json:"user_id"`
	LevelID              uuid.UUID  `json:"level_id"`
	Status               string     `json:"status"`
	Score                int        `json:"score"`
	Stars                int        `json:"stars"`
	CompletionPercentage int        `json:"completion_percentage"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	LevelName            string     `json:"level_name"`
	LevelOrder           int        `json:"level_order"`
}

type CreateTriviaRequest struct {
	Title        string     `json:"title" binding:"required,min=1,max=200"`
	Description  *string    `json:"description"`
	ImageURL     *string    `json:"image_url"`
	Location     *string    `json:"location"`
	Region       *string    `json:"region"`
	FeaturedDate *time.Time `json:"featured_date"`
}

type CreateMistakeRequest struct {
	UserID       uuid.UUID `json:"user_id" binding:"required"`
	Title        string    `json:"title" binding:"required,min=1,max=200"`
	Question     *string   `json:"question"`
	Category     string    `json:"category" binding:"omitempty,oneof=physical human regional"`
	MasteryLevel string    `json:"mastery_level" binding:"omitempty,oneof=low medium critical"`
	ImageURL     *string   `json:"image_url"`
}

type UpdateMistakeRequest struct {
	MasteryLevel *string `json:"mastery_level" binding:"omitempty,oneof=low medium critical"`
	Question     *string `json:"question"`
}

type MistakeFilter struct {
	UserID       *uuid.UUID
	Category     string
	MasteryLevel string
}

type CreateGeoFeatureRequest struct {
	Name        string         `json:"name" binding:"required,min=1,max=200"`
	Description *string        `json:"description"`
	FeatureType *string        `json:"feature_type"`
	Latitude    *float64       `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64       `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Region      *string        `json:"region"`
	ImageURL    *string        `json:"image_url"`
	Stats       datatypes.JSON `json:"stats"`
}

type CreateARLandformRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=200"`
	Type        string  `json:"type" binding:"required,oneof=basin peak valley cliff"`
	ImageURL    *string `json:"image_url"`
	Elevation   *int    `json:"elevation"`
}

// NewMistake maps a create request to the model with defaults applied
func (r *CreateMistakeRequest) NewMistake() *model.Mistake {
	category := r.Category
	if category == "" {
		category = model.MistakeCategoryPhysical
	}
	mastery := r.MasteryLevel
	if mastery == "" {
		mastery = model.MasteryLow
	}
	return &model.Mistake{
		UserID:       r.UserID,
		Title:        r.Title,
		Question:     r.Question,
		Category:     category,
		MasteryLevel: mastery,
		ImageURL:     r.ImageURL,
	}
}
