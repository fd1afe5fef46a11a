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

type ARLandformService struct {
	landforms *repository.ARLandformRepository
}

func NewARLandformService(landforms *repository.ARLandformRepository) *ARLandformService {
	return &ARLandformService{landforms: landforms}
}

func (s *ARLandformService) GetAll(ctx context.Context, landformType string) ([]model.ARLandform, error) {
	landforms, err := s.landforms.GetAll(ctx, landformType)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return landforms, nil
}

func (s *ARLandformService) GetByID(ctx context.Context, id uuid.UUID) (*model.ARLandform, error) {
	landform, err := s.landforms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return landform, nil
}

func (s *ARLandformService) Create(ctx context.Context, req *dto.CreateARLandformRequest) (*model.ARLandform, error) {
	landform := &model.ARLandform{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		ImageURL:    req.ImageURL,
		Elevation:   req.Elevation,
	}
	if err := s.landforms.Create(ctx, landform); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return landform, nil
}
