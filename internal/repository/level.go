package repository

import (
	"context"
	"errors"

	"github.com/geoexplorer/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LevelRepository struct {
	db *gorm.DB
}

func NewLevelRepository(db *gorm.DB) *LevelRepository {
	return &LevelRepository{db: db}
}

func (r *LevelRepository) GetAll(ctx context.Context) ([]model.Level, error) {
	var levels []model.Level
	err := r.db.WithContext(ctx).Order("order_index").Find(&levels).Error
	return levels, err
}

func (r *LevelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Level, error) {
	var level model.Level
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&level).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *LevelRepository) Create(ctx context.Context, level *model.Level) error {
	return r.db.WithContext(ctx).Create(level).Error
}

func (r *LevelRepository) GetProgressForUser(ctx context.Context, userID uuid.UUID) ([]model.UserLevelProgress, error) {
	var progress []model.UserLevelProgress
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&progress).Error
	return progress, err
}

func (r *LevelRepository) GetProgress(ctx context.Context, userID, levelID uuid.UUID) (*model.UserLevelProgress, error) {
	var progress model.UserLevelProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND level_id = ?", userID, levelID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *LevelRepository) CreateProgress(ctx context.Context, progress *model.UserLevelProgress) error {
	return r.db.WithContext(ctx).Create(progress).Error
}

func (r *LevelRepository) UpdateProgress(ctx context.Context, userID, levelID uuid.UUID, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&model.UserLevelProgress{}).
		Where("user_id = ? AND level_id = ?", userID, levelID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumStars totals the stars earned across all of a user's level progress.
func (r *LevelRepository) SumStars(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.UserLevelProgress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(stars), 0)").
		Scan(&total).Error
	return int(total), err
}

// CountCompleted counts levels the user has finished.
func (r *LevelRepository) CountCompleted(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserLevelProgress{}).
		Where("user_id = ? AND status = ?", userID, model.ProgressStatusCompleted).
		Count(&count).Error
	return count, err
}

// ActiveLevelID returns the level the user is currently playing, if any.
func (r *LevelRepository) ActiveLevelID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	var progress model.UserLevelProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.ProgressStatusActive).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress.LevelID, nil
}
