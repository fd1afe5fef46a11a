package service

import (
	"context"
	"errors"

	"github.com/geoexplorer/backend/internal/dto"
	apperrors "github.com/geoexplorer/backend/internal/errors"
	"github.com/geoexplorer/backend/internal/model"
	"github.com/geoexplorer/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	users  *repository.UserRepository
	levels *repository.LevelRepository
}

func NewUserService(users *repository.UserRepository, levels *repository.LevelRepository) *UserService {
	return &UserService{users: users, levels: levels}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Create makes a bare display-only account with no credentials attached.
func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	user := &model.User{
		Name:  req.Name,
		Level: model.DefaultUserLevel,
	}
	if req.AvatarURL != "" {
		user.AvatarURL = &req.AvatarURL
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Level != nil {
		updates["level"] = *req.Level
	}
	if req.TotalStars != nil {
		updates["total_stars"] = *req.TotalStars
	}
	if len(updates) == 0 {
		return nil, apperrors.NewDomainError("VALIDATION_ERROR", "no fields to update")
	}

	user, err := s.users.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// GetProgress summarizes the user's overall learning state.
func (s *UserService) GetProgress(ctx context.Context, id uuid.UUID) (*dto.UserProgressResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	completed, err := s.levels.CountCompleted(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	currentLevelID, err := s.levels.ActiveLevelID(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.UserProgressResponse{
		UserID:          user.ID,
		TotalStars:      user.TotalStars,
		Level:           user.Level,
		CompletedLevels: int(completed),
		CurrentLevelID:  currentLevelID,
	}, nil
}
