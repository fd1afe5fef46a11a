package repository

import (
	"context"

	"github.com/geoexplorer/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ARLandformRepository struct {
	db *gorm.DB
}

func NewARLandformRepository(db *gorm.DB) *ARLandformRepository {
	return &ARLandformRepository{db: db}
}

func (r *ARLandformRepository) GetAll(ctx context.Context, landformType string) ([]model.ARLandform, error) {
	query := r.db.WithContext(ctx).Model(&model.ARLandform{})
	if landformType != "" {
		query = query.Where("type = ?", landformType)
	}

	var landforms []model.ARLandform
	err := query.Order("name").Find(&landforms).Error
	return landforms, err
}

func (r *ARLandformRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ARLandform, error) {
	var landform model.ARLandform
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&landform).Error; err != nil {
		return nil, err
	}
	return &landform, nil
}

func (r *ARLandformRepository) Create(ctx context.Context, landform *model.ARLandform) error {
	return r.db.WithContext(ctx).Create(landform).Error
}
