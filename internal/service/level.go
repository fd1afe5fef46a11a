package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/geoexplorer/backend/internal/dto"
	apperrors "github.com/geoexplorer/backend/internal/errors"
	"github.com/geoexplorer/backend/internal/model"
	"github.com/geoexplorer/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	levelListCacheKey = "levels:list"
	levelListCacheTTL = 5 * time.Minute
)

type LevelService struct {
	levels *repository.LevelRepository
	users  *repository.UserRepository
	cache  *CacheService
}

func NewLevelService(levels *repository.LevelRepository, users *repository.UserRepository, cache *CacheService) *LevelService {
	return &LevelService{levels: levels, users: users, cache: cache}
}

// GetAll returns the level ladder ordered by index, cached briefly since the
// ladder changes rarely and every client loads it.
func (s *LevelService) GetAll(ctx context.Context) ([]model.Level, error) {
	var cached []model.Level
	if s.cache.GetJSON(ctx, levelListCacheKey, &cached) {
		return cached, nil
	}

	levels, err := s.levels.GetAll(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.SetJSON(ctx, levelListCacheKey, levels, levelListCacheTTL)
	return levels, nil
}

func (s *LevelService) GetByID(ctx context.Context, id uuid.UUID) (*model.Level, error) {
	level, err := s.levels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return level, nil
}

func (s *LevelService) Create(ctx context.Context, req *dto.CreateLevelRequest) (*model.Level, error) {
	level := &model.Level{
		Name:              req.Name,
		Description:       req.Description,
		OrderIndex:        req.OrderIndex,
		UnlockRequirement: req.UnlockRequirement,
	}
	if err := s.levels.Create(ctx, level); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, levelListCacheKey)
	return level, nil
}

// GetUserProgress joins every level with the user's progress on it, filling
// in locked defaults for levels the user never reached.
func (s *LevelService) GetUserProgress(ctx context.Context, userID uuid.UUID) ([]dto.LevelProgressResponse, error) {
	levels, err := s.levels.GetAll(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	progress, err := s.levels.GetProgressForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	progressByLevel := make(map[uuid.UUID]model.UserLevelProgress, len(progress))
	for _, p := range progress {
		progressByLevel[p.LevelID] = p
	}

	result := make([]dto.LevelProgressResponse, 0, len(levels))
	for _, level := range levels {
		entry := dto.LevelProgressResponse{
			UserID:     userID,
			LevelID:    level.ID,
			Status:     model.ProgressStatusLocked,
			LevelName:  level.Name,
			LevelOrder: level.OrderIndex,
		}
		if p, ok := progressByLevel[level.ID]; ok {
			id := p.ID
			entry.ID = &id
			entry.Status = p.Status
			entry.Score = p.Score
			entry.Stars = p.Stars
			entry.CompletionPercentage = p.CompletionPercentage
			entry.CompletedAt = p.CompletedAt
		}
		result = append(result, entry)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].LevelOrder < result[j].LevelOrder
	})
	return result, nil
}

// UpdateUserProgress upserts the user's progress for a level. Completing a
// level stamps completed_at once, and any stars change resyncs the user's
// total star count.
func (s *LevelService) UpdateUserProgress(ctx context.Context, userID, levelID uuid.UUID, req *dto.UpdateProgressRequest) (*model.UserLevelProgress, error) {
	if req.Empty() {
		return nil, apperrors.NewDomainError("VALIDATION_ERROR", "no fields to update")
	}

	existing, err := s.levels.GetProgress(ctx, userID, levelID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if existing == nil {
		record := &model.UserLevelProgress{
			UserID:  userID,
			LevelID: levelID,
			Status:  model.ProgressStatusLocked,
		}
		applyProgressUpdate(record, req)
		if record.Status == model.ProgressStatusCompleted {
			now := time.Now()
			record.CompletedAt = &now
		}
		if err := s.levels.CreateProgress(ctx, record); err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		existing = record
	} else {
		updates := map[string]any{}
		if req.Status != nil {
			updates["status"] = *req.Status
			if *req.Status == model.ProgressStatusCompleted && existing.CompletedAt == nil {
				updates["completed_at"] = time.Now()
			}
		}
		if req.Score != nil {
			updates["score"] = *req.Score
		}
		if req.Stars != nil {
			updates["stars"] = *req.Stars
		}
		if req.CompletionPercentage != nil {
			updates["completion_percentage"] = *req.CompletionPercentage
		}
		if err := s.levels.UpdateProgress(ctx, userID, levelID, updates); err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		existing, err = s.levels.GetProgress(ctx, userID, levelID)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	if req.Stars != nil {
		total, err := s.levels.SumStars(ctx, userID)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if _, err := s.users.Update(ctx, userID, map[string]any{"total_stars": total}); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	return existing, nil
}

func applyProgressUpdate(p *model.UserLevelProgress, req *dto.UpdateProgressRequest) {
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Score != nil {
		p.Score = *req.Score
	}
	if req.Stars != nil {
		p.Stars = *req.Stars
	}
	if req.CompletionPercentage != nil {
		p.CompletionPercentage = *req.CompletionPercentage
	}
}
