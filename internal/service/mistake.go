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

type MistakeService struct {
	mistakes *repository.MistakeRepository
}

func NewMistakeService(mistakes *repository.MistakeRepository) *MistakeService {
	return &MistakeService{mistakes: mistakes}
}

func (s *MistakeService) GetAll(ctx context.Context, filter dto.MistakeFilter, limit, offset int) ([]model.Mistake, error) {
	mistakes, err := s.mistakes.GetAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return mistakes, nil
}

func (s *MistakeService) GetByID(ctx context.Context, id uuid.UUID) (*model.Mistake, error) {
	mistake, err := s.mistakes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return mistake, nil
}

func (s *MistakeService) Create(ctx context.Context, req *dto.CreateMistakeRequest) (*model.Mistake, error) {
	mistake := req.NewMistake()
	if err := s.mistakes.Create(ctx, mistake); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return mistake, nil
}

func (s *MistakeService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMistakeRequest) (*model.Mistake, error) {
	updates := map[string]any{}
	if req.MasteryLevel != nil {
		updates["mastery_level"] = *req.MasteryLevel
	}
	if req.Question != nil {
		updates["question"] = *req.Question
	}
	if len(updates) == 0 {
		return nil, apperrors.NewDomainError("VALIDATION_ERROR", "no fields to update")
	}

	mistake, err := s.mistakes.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return mistake, nil
}

func (s *MistakeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.mistakes.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}
