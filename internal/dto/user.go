package dto

import "github.com/google/uuid"

type CreateUserRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	AvatarURL string `json:"avatar_url"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=100"`
	AvatarURL  *string `json:"avatar_url"`
	Level      *string `json:"level"`
	TotalStars *int    `json:"total_stars" binding:"omitempty,min=0"`
}

// UserProgressResponse is the overall learning progress summary.
type UserProgressResponse struct {
	UserID          uuid.UUID  `json:"user_id"`
	TotalStars      int        `json:"total_stars"`
	Level           string     `json:"level"`
	CompletedLevels int        `json:"completed_levels"`
	CurrentLevelID  *uuid.UUID `json:"current_level_id,omitempty"`
}
