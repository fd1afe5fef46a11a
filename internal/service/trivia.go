package service

import (
	"context"
	"errors"
	"time"

	"github.com/geoexplorer/backend/internal/dto"
	apperrors "github.com/geoexplorer/backend/internal/errors"
	"github.com/geoexplorer/backend/internal/model"
	"github.com/geoexplorer/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	triviaTodayCacheKey = "trivia:today"
	triviaTodayCacheTTL = 10 * time.Minute
)

type TriviaService struct {
	trivia *repository.TriviaRepository
	cache  *CacheService
}

func NewTriviaService(trivia *repository.TriviaRepository, cache *CacheService) *TriviaService {
	return &TriviaService{trivia: trivia, cache: cache}
}

// GetToday returns the trivia featured today, falling back to the latest
// entry when nothing is scheduled.
func (s *TriviaService) GetToday(ctx context.Context) (*model.DailyTrivia, error) {
	var cached model.DailyTrivia
	if s.cache.GetJSON(ctx, triviaTodayCacheKey, &cached) {
		return &cached, nil
	}

	trivia, err := s.trivia.GetFeatured(ctx, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewDomainError("NOT_FOUND", "no trivia available")
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.SetJSON(ctx, triviaTodayCacheKey, trivia, triviaTodayCacheTTL)
	return trivia, nil
}

func (s *TriviaService) GetAll(ctx context.Context, limit, offset int) ([]model.DailyTrivia, error) {
	trivia, err := s.trivia.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return trivia, nil
}

func (s *TriviaService) GetByID(ctx context.Context, id uuid.UUID) (*model.DailyTrivia, error) {
	trivia, err := s.trivia.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return trivia, nil
}

func (s *TriviaService) Create(ctx context.Context, req *dto.CreateTriviaRequest) (*model.DailyTrivia, error) {
	trivia := &model.DailyTrivia{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Location:     req.Location,
		Region:       req.Region,
		FeaturedDate: req.FeaturedDate,
	}
	if err := s.trivia.Create(ctx, trivia); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, triviaTodayCacheKey)
	return trivia, nil
}
