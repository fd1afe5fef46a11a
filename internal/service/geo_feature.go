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

type GeoFeatureService struct {
	features *repository.GeoFeatureRepository
}

func NewGeoFeatureService(features *repository.GeoFeatureRepository) *GeoFeatureService {
	return &GeoFeatureService{features: features}
}

func (s *GeoFeatureService) GetAll(ctx context.Context, featureType, region string, limit, offset int) ([]model.GeoFeature, error) {
	features, err := s.features.GetAll(ctx, featureType, region, limit, offset)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return features, nil
}

func (s *GeoFeatureService) GetByID(ctx context.Context, id uuid.UUID) (*model.GeoFeature, error) {
	feature, err := s.features.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return feature, nil
}

func (s *GeoFeatureService) Create(ctx context.Context, req *dto.CreateGeoFeatureRequest) (*model.GeoFeature, error) {
	feature := &model.GeoFeature{
		Name:        req.Name,
		Description: req.Description,
		FeatureType: req.FeatureType,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Region:      req.Region,
		ImageURL:    req.ImageURL,
		Stats:       req.Stats,
	}
	if err := s.features.Create(ctx, feature); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return feature, nil
}

func (s *GeoFeatureService) Search(ctx context.Context, query string, limit int) ([]model.GeoFeature, error) {
	features, err := s.features.Search(ctx, query, limit)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return features, nil
}
