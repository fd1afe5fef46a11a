package repository

import (
	"context"
	"errors"
	"time"

	"github.com/geoexplorer/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TriviaRepository struct {
	db *gorm.DB
}

func NewTriviaRepository(db *gorm.DB) *TriviaRepository {
	return &TriviaRepository{db: db}
}

// GetFeatured returns the trivia featured on the given date, or falls back to
// the most recently created entry when none is scheduled.
func (r *TriviaRepository) GetFeatured(ctx context.Context, date time.Time) (*model.DailyTrivia, error) {
	day := date.Truncate(24 * time.Hour)

	var trivia model.DailyTrivia
	err := r.db.WithContext(ctx).
		Where("featured_date >= ? AND featured_date < ?", day, day.Add(24*time.Hour)).
		First(&trivia).Error
	if err == nil {
		return &trivia, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.WithContext(ctx).Order("created_at DESC").First(&trivia).Error
	if err != nil {
		return nil, err
	}
	return &trivia, nil
}

func (r *TriviaRepository) GetAll(ctx context.Context, limit, offset int) ([]model.DailyTrivia, error) {
	var trivia []model.DailyTrivia
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&trivia).Error
	return trivia, err
}

func (r *TriviaRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DailyTrivia, error) {
	var trivia model.DailyTrivia
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&trivia).Error; err != nil {
		return nil, err
	}
	return &trivia, nil
}

func (r *TriviaRepository) Create(ctx context.Context, trivia *model.DailyTrivia) error {
	return r.db.WithContext(ctx).Create(trivia).Error
}
