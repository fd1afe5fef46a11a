package repository

import (
	"context"

	"github.com/geoexplorer/backend/internal/dto"
	"github.com/geoexplorer/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MistakeRepository struct {
	db *gorm.DB
}

func NewMistakeRepository(db *gorm.DB) *MistakeRepository {
	return &MistakeRepository{db: db}
}

func (r *MistakeRepository) GetAll(ctx context.Context, filter dto.MistakeFilter, limit, offset int) ([]model.Mistake, error) {
	query := r.db.WithContext(ctx).Model(&model.Mistake{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MasteryLevel != "" {
		query = query.Where("mastery_level = ?", filter.MasteryLevel)
	}

	var mistakes []model.Mistake
	err := query.Order("added_at DESC").Limit(limit).Offset(offset).Find(&mistakes).Error
	return mistakes, err
}

func (r *MistakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Mistake, error) {
	var mistake model.Mistake
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&mistake).Error; err != nil {
		return nil, err
	}
	return &mistake, nil
}

func (r *MistakeRepository) Create(ctx context.Context, mistake *model.Mistake) error {
	return r.db.WithContext(ctx).Create(mistake).Error
}

func (r *MistakeRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*model.Mistake, error) {
	result := r.db.WithContext(ctx).Model(&model.Mistake{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MistakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Mistake{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
