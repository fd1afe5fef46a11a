package repository

import (
	"context"

	"github.com/geoexplorer/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GeoFeatureRepository struct {
	db *gorm.DB
}

func NewGeoFeatureRepository(db *gorm.DB) *GeoFeatureRepository {
	return &GeoFeatureRepository{db: db}
}

func (r *GeoFeatureRepository) GetAll(ctx context.Context, featureType, region string, limit, offset int) ([]model.GeoFeature, error) {
	query := r.db.WithContext(ctx).Model(&model.GeoFeature{})

	if featureType != "" {
		query = query.Where("feature_type = ?", featureType)
	}
	if region != "" {
		query = query.Where("region LIKE ?", "%"+region+"%")
	}

	var features []model.GeoFeature
	err := query.Order("name").Limit(limit).Offset(offset).Find(&features).Error
	return features, err
}

func (r *GeoFeatureRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.GeoFeature, error) {
	var feature model.GeoFeature
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&feature).Error; err != nil {
		return nil, err
	}
	return &feature, nil
}

func (r *GeoFeatureRepository) Create(ctx context.Context, feature *model.GeoFeature) error {
	return r.db.WithContext(ctx).Create(feature).Error
}

// Search matches name or description by substring.
func (r *GeoFeatureRepository) Search(ctx context.Context, query string, limit int) ([]model.GeoFeature, error) {
	pattern := "%" + query + "%"
	var features []model.GeoFeature
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR description LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&features).Error
	return features, err
}
